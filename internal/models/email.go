package models

import "time"

// Attachment holds attachment metadata only; attachment content is never
// stored or embedded.
type Attachment struct {
	Filename    string `json:"filename" example:"report.pdf"`
	ContentType string `json:"content_type" example:"application/pdf"`
	Size        int64  `json:"size" example:"10240"`
}

// ParsedEmail represents a structured email produced by the parser.
// The record is immutable after parsing except for Embedding, which the
// process endpoint attaches later.
type ParsedEmail struct {
	ID          string       `json:"id" example:"abc123_example_com"`
	From        string       `json:"from" example:"a@x.com"`
	To          string       `json:"to" example:"b@x.com"`
	Subject     string       `json:"subject" example:"Hi"`
	Date        time.Time    `json:"date" example:"2024-01-01T00:00:00Z"`
	Body        string       `json:"body" example:"Hello there"`
	HTML        string       `json:"html,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Embedding   []float32    `json:"embedding,omitempty"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
}

// EmailMetadata is the flat metadata bag stored alongside each vector.
// Body carries only a truncated prefix of the email body; the store
// enforces a per-entry payload ceiling.
type EmailMetadata struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Date    string `json:"date"` // ISO 8601
	Body    string `json:"body"`
}

// VectorEntry is one entry keyed by the email's derived id, ready for
// upsert into the vector store.
type VectorEntry struct {
	ID       string        `json:"id"`
	Values   []float32     `json:"values"`
	Metadata EmailMetadata `json:"metadata"`
}

// RetrievalMatch is a stored entry's metadata plus its similarity score,
// as returned by a top-K query. Higher score means more similar.
type RetrievalMatch struct {
	ID       string        `json:"id"`
	Score    float32       `json:"score"`
	Metadata EmailMetadata `json:"metadata"`
}

// GeneratedReply is the model-produced reply with the style used and the
// retrieval matches that served as style exemplars. Not persisted.
type GeneratedReply struct {
	Response     string           `json:"response"`
	Style        string           `json:"style"`
	SourceEmails []RetrievalMatch `json:"source_emails"`
}
