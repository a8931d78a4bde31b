package handlers

import (
	"context"
	"errors"

	"emailogan/internal/models"
)

// fakeStore is an in-memory VectorStore for handler tests.
type fakeStore struct {
	entries   []models.VectorEntry
	matches   []models.RetrievalMatch
	truncated bool
	count     uint64

	upsertErr error
	queryErr  error
	listErr   error
	deleteErr error
	healthErr error

	deleteCalls int
	listCalls   int
	lastTopK    int
	lastFilter  map[string]string
}

func (f *fakeStore) Upsert(ctx context.Context, entries []models.VectorEntry) (int, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.entries = append(f.entries, entries...)
	return len(entries), nil
}

func (f *fakeStore) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]models.RetrievalMatch, error) {
	f.lastTopK = topK
	f.lastFilter = filter
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

func (f *fakeStore) ListAll(ctx context.Context, ceiling int) ([]models.RetrievalMatch, bool, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, false, f.listErr
	}
	return f.matches, f.truncated, nil
}

func (f *fakeStore) DeleteAll(ctx context.Context) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.entries = nil
	return nil
}

func (f *fakeStore) Count(ctx context.Context) (uint64, error) {
	return f.count, nil
}

func (f *fakeStore) HealthCheck(ctx context.Context) error {
	return f.healthErr
}

// fakeEmbedder returns a fixed vector per input text.
type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
	// failTexts lists inputs that should fail individually.
	failTexts map[string]bool
}

func (f *fakeEmbedder) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if f.failTexts[text] {
			return nil, errors.New("embedding rejected")
		}
		vectors = append(vectors, f.vector)
	}
	return vectors, nil
}

// fakeCompleter records prompts and returns a canned completion.
type fakeCompleter struct {
	response     string
	err          error
	systemPrompt string
	userPrompt   string
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
