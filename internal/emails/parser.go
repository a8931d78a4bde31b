package emails

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"emailogan/internal/models"
)

// maxEmbeddingChars caps the canonical serialization sent to the
// embedding model, which has an input size limit.
const maxEmbeddingChars = 8000

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	idUnsafePattern   = regexp.MustCompile(`[@.]`)
)

// Parse converts a raw email text blob into a structured record.
// Headers are read up to the first blank line; each line is split at the
// first colon into a lowercase key and trimmed value, and unparseable
// lines are ignored. When no blank-line separator exists the whole
// input is treated as the body. Parse never fails: missing headers fall
// back to sentinel values and malformed input yields a best-effort
// record.
func Parse(raw string) *models.ParsedEmail {
	lines := strings.Split(raw, "\n")
	headers := make(map[string]string)
	bodyStart := 0

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			bodyStart = i + 1
			break
		}

		colonIndex := strings.Index(line, ":")
		if colonIndex > 0 {
			key := strings.ToLower(strings.TrimSpace(line[:colonIndex]))
			value := strings.TrimSpace(line[colonIndex+1:])
			headers[key] = value
		}
	}

	body := strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))

	email := &models.ParsedEmail{
		ID:      deriveID(headers["message-id"]),
		From:    headerOr(headers, "from", "Unknown"),
		To:      headerOr(headers, "to", "Unknown"),
		Subject: headerOr(headers, "subject", "No Subject"),
		Date:    parseDate(headers["date"]),
		Body:    extractText(body),
		HTML:    extractHTML(body),
	}

	return email
}

// EmbeddingText builds the canonical serialization of an email used as
// embedding input: a From/To/Subject/Date header block, a blank line,
// and the body, truncated to the embedding input ceiling.
func EmbeddingText(email *models.ParsedEmail) string {
	text := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\nDate: %s\n\n%s",
		email.From, email.To, email.Subject, email.Date.UTC().Format(time.RFC3339), email.Body)

	return Truncate(text, maxEmbeddingChars)
}

// Truncate returns at most limit characters of text. The cut is made on
// a rune boundary so the result stays valid UTF-8.
func Truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// deriveID produces a sanitized, deterministic identity from the
// Message-ID header, or a timestamp-based fallback when absent.
func deriveID(messageID string) string {
	if messageID == "" {
		messageID = fmt.Sprintf("%d", time.Now().UnixMilli())
	}

	id := strings.ReplaceAll(messageID, "<", "")
	id = strings.ReplaceAll(id, ">", "")
	return idUnsafePattern.ReplaceAllString(id, "_")
}

func headerOr(headers map[string]string, key, fallback string) string {
	if value := headers[key]; value != "" {
		return value
	}
	return fallback
}

// parseDate parses an RFC 5322 date header, falling back to the current
// time when the header is missing or unparseable.
func parseDate(value string) time.Time {
	if value != "" {
		if date, err := mail.ParseDate(value); err == nil {
			return date
		}
	}
	return time.Now()
}

// extractText strips HTML tags and collapses runs of whitespace to
// single spaces.
func extractText(body string) string {
	text := htmlTagPattern.ReplaceAllString(body, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractHTML retains the original body when it carries HTML document
// markers, so the raw variant survives alongside the stripped text.
func extractHTML(body string) string {
	if strings.Contains(body, "<html") || strings.Contains(body, "<body") {
		return body
	}
	return ""
}
