package vectorstore

import (
	"time"

	"emailogan/internal/emails"
	"emailogan/internal/models"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// metadataBodyLimit caps the stored body excerpt. The store enforces a
// per-entry payload ceiling, so only this prefix survives for later
// display and context use.
const metadataBodyLimit = 4000

const (
	payloadKeyEmailID = "email_id"
	payloadKeyFrom    = "from"
	payloadKeyTo      = "to"
	payloadKeySubject = "subject"
	payloadKeyDate    = "date"
	payloadKeyBody    = "body"
)

// NewEntry maps an embedded email onto a vector entry, truncating the
// body excerpt to the metadata ceiling.
func NewEntry(email *models.ParsedEmail) models.VectorEntry {
	return models.VectorEntry{
		ID:     email.ID,
		Values: email.Embedding,
		Metadata: models.EmailMetadata{
			From:    email.From,
			To:      email.To,
			Subject: email.Subject,
			Date:    email.Date.UTC().Format(time.RFC3339),
			Body:    emails.Truncate(email.Body, metadataBodyLimit),
		},
	}
}

// PointID maps a sanitized email id onto a deterministic UUID, since
// Qdrant point ids must be UUIDs or unsigned integers. The same email
// id always yields the same point id, preserving upsert-by-identity.
func PointID(emailID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(emailID)).String()
}

func payloadFromEntry(entry models.VectorEntry) map[string]any {
	return map[string]any{
		payloadKeyEmailID: entry.ID,
		payloadKeyFrom:    entry.Metadata.From,
		payloadKeyTo:      entry.Metadata.To,
		payloadKeySubject: entry.Metadata.Subject,
		payloadKeyDate:    entry.Metadata.Date,
		payloadKeyBody:    entry.Metadata.Body,
	}
}

func metadataFromPayload(payload map[string]*qdrant.Value) models.EmailMetadata {
	return models.EmailMetadata{
		From:    payloadString(payload, payloadKeyFrom),
		To:      payloadString(payload, payloadKeyTo),
		Subject: payloadString(payload, payloadKeySubject),
		Date:    payloadString(payload, payloadKeyDate),
		Body:    payloadString(payload, payloadKeyBody),
	}
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if payload == nil {
		return ""
	}
	return payload[key].GetStringValue()
}
