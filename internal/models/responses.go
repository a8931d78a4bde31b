package models

import (
	"encoding/json"
	"time"
)

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// VectorHealthResponse represents a vector store health check response
// @Description Vector store health check response
type VectorHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Vector store connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Health check latency
	Points    uint64        `json:"points" example:"42"`                        // Number of stored vectors
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// ErrorResponse is the uniform error payload for failed requests
// @Description Error response payload
type ErrorResponse struct {
	Error   string `json:"error" example:"Unauthorized"` // Error category description
	Details string `json:"details,omitempty" example:""` // Provider or validation detail
}

// LoginRequest represents the login request payload
// @Description Login request payload
type LoginRequest struct {
	Password string `json:"password" example:"hunter2"` // Admin password
}

// LoginResponse represents a successful login
// @Description Login response payload
type LoginResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token"` // Signed session token
}

// VerifyResponse represents a token introspection result
// @Description Token verification response
type VerifyResponse struct {
	Authenticated bool   `json:"authenticated" example:"true"`
	ID            string `json:"id" example:"admin"`
	Email         string `json:"email" example:"admin@emailogan.com"`
}

// UploadResponse represents the result of a single .eml upload
// @Description Email upload response
type UploadResponse struct {
	Success bool        `json:"success" example:"true"`
	Email   ParsedEmail `json:"email"`
}

// ProcessRequest carries a batch of emails to embed. Each element is
// either a raw email text blob (JSON string) or an already-parsed
// email object.
// @Description Email processing request payload
type ProcessRequest struct {
	Emails []json.RawMessage `json:"emails"`
}

// ProcessItemError reports a single failed item in a process batch.
type ProcessItemError struct {
	Index int    `json:"index" example:"1"`
	Error string `json:"error"`
}

// ProcessResponse reports per-item outcomes of an embedding batch.
// @Description Email processing response
type ProcessResponse struct {
	Success   bool               `json:"success" example:"true"`
	Processed int                `json:"processed" example:"3"`
	Failed    int                `json:"failed" example:"0"`
	Emails    []ParsedEmail      `json:"emails"`
	Errors    []ProcessItemError `json:"errors,omitempty"`
}

// StoreRequest carries embedded emails for upsert into the vector store.
// @Description Vector store request payload
type StoreRequest struct {
	Emails []ParsedEmail `json:"emails"`
}

// StoreResponse reports how many vectors were upserted.
// @Description Vector store response
type StoreResponse struct {
	Success bool `json:"success" example:"true"`
	Count   int  `json:"count" example:"3"`
}

// SearchRequest represents a similarity search request
// @Description Vector search request payload
type SearchRequest struct {
	Query  string            `json:"query" example:"quarterly report status"`
	TopK   int               `json:"top_k,omitempty" example:"5"`
	Filter map[string]string `json:"filter,omitempty"`
}

// SearchResponse represents a similarity search result
// @Description Vector search response
type SearchResponse struct {
	Success bool             `json:"success" example:"true"`
	Matches []RetrievalMatch `json:"matches"`
	Count   int              `json:"count" example:"5"`
}

// ListResponse enumerates the stored knowledge base
// @Description Knowledge base listing response
type ListResponse struct {
	Success   bool             `json:"success" example:"true"`
	Emails    []RetrievalMatch `json:"emails"`
	Count     int              `json:"count" example:"42"`
	Truncated bool             `json:"truncated" example:"false"` // true when the listing ceiling was hit
}

// ClearResponse acknowledges a knowledge base reset
// @Description Knowledge base clear response
type ClearResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"All vectors have been cleared from the knowledge base"`
}

// GenerateRequest asks for a reply draft to the given email text
// @Description Reply generation request payload
type GenerateRequest struct {
	Prompt           string `json:"prompt"`                            // The email text to reply to
	Style            string `json:"style,omitempty" example:"professional"`
	UseKnowledgeBase *bool  `json:"use_knowledge_base,omitempty" example:"true"`
}

// GenerateResponse carries the generated reply draft
// @Description Reply generation response
type GenerateResponse struct {
	Success      bool             `json:"success" example:"true"`
	Response     string           `json:"response"`
	Style        string           `json:"style" example:"professional"`
	SourceEmails []RetrievalMatch `json:"source_emails"`
}
