package vector

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/tripweaver/internal/db"
	"github.com/kailas-cloud/tripweaver/internal/domain"
)

type mockStore struct {
	result  *db.SearchResult
	err     error
	lastK   int
	lastIdx string
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastK = q.K
	m.lastIdx = q.IndexName
	return m.result, m.err
}

func TestQuery_MapsEntries(t *testing.T) {
	ms := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{
				Key:   "tripweaver:places:hanoi_old_quarter",
				Score: 0.92,
				Fields: map[string]string{
					"entity_id": "hanoi_old_quarter",
					"name":      "Hanoi Old Quarter",
					"type":      "attraction",
					"city":      "Hanoi",
					"tags":      "historic, walking , food",
				},
			},
			{
				Key:    "tripweaver:places:hanoi_spa_1",
				Score:  0.81,
				Fields: map[string]string{"name": "Serenity Spa"},
			},
		},
	}}
	repo := New(ms, "tripweaver:places:idx")

	matches, err := repo.Query(context.Background(), []float32{0.1, 0.2}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.lastIdx != "tripweaver:places:idx" {
		t.Errorf("unexpected index name %q", ms.lastIdx)
	}
	if ms.lastK != 5 {
		t.Errorf("expected K=5, got %d", ms.lastK)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	first := matches[0]
	if first.EntityID != "hanoi_old_quarter" || first.Score != 0.92 {
		t.Errorf("unexpected first match: %+v", first)
	}
	if len(first.Tags) != 3 || first.Tags[1] != "walking" {
		t.Errorf("expected trimmed tags, got %v", first.Tags)
	}

	// Missing entity_id falls back to the key suffix.
	if matches[1].EntityID != "hanoi_spa_1" {
		t.Errorf("expected key-suffix fallback, got %q", matches[1].EntityID)
	}
}

func TestQuery_FailureWrapsSentinel(t *testing.T) {
	ms := &mockStore{err: errors.New("connection refused")}
	repo := New(ms, "idx")

	_, err := repo.Query(context.Background(), []float32{0.1}, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrVectorSearchUnavailable) {
		t.Errorf("expected ErrVectorSearchUnavailable, got %v", err)
	}
}

func TestQuery_EmptyResult(t *testing.T) {
	ms := &mockStore{result: &db.SearchResult{}}
	repo := New(ms, "idx")

	matches, err := repo.Query(context.Background(), []float32{0.1}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}
