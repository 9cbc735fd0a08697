package knowledge

import (
	"context"
	"strings"
	"testing"
)

// fakeEmbedder maps known words onto fixed axes so similarity is exact and
// deterministic in tests.
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	vec := make([]float32, 4)
	lower := strings.ToLower(text)
	if strings.Contains(lower, "delivery") {
		vec[0] = 1
	}
	if strings.Contains(lower, "refund") {
		vec[1] = 1
	}
	if strings.Contains(lower, "allergen") {
		vec[2] = 1
	}
	if strings.Contains(lower, "payment") {
		vec[3] = 1
	}
	if vec[0] == 0 && vec[1] == 0 && vec[2] == 0 && vec[3] == 0 {
		vec[0], vec[1] = 0.1, 0.1
	}
	return vec, nil
}

func testDocs() []Document {
	return []Document{
		{ID: "kb-1", Title: "Delivery Policy", Text: "delivery within 30 minutes"},
		{ID: "kb-2", Title: "Refund Policy", Text: "refund within 24 hours"},
		{ID: "kb-3", Title: "Allergen Information", Text: "allergen notice: wheat and dairy"},
	}
}

func TestQueryRanksBySimilarityDescending(t *testing.T) {
	t.Parallel()

	ix := NewIndex(&fakeEmbedder{})
	if err := ix.Ingest(context.Background(), testDocs()...); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	results, err := ix.Query(context.Background(), "how fast is delivery", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Document.ID != "kb-1" {
		t.Fatalf("top result = %s, want kb-1", results[0].Document.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("scores not non-increasing at %d: %v then %v", i, results[i-1].Score, results[i].Score)
		}
	}
}

func TestQueryEmptyIndexFailsSoftly(t *testing.T) {
	t.Parallel()

	ix := NewIndex(&fakeEmbedder{})
	results, err := ix.Query(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func TestQueryThresholdExcludesWeakHits(t *testing.T) {
	t.Parallel()

	ix := NewIndex(&fakeEmbedder{}, WithMinScore(0.9))
	if err := ix.Ingest(context.Background(), testDocs()...); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	// A refund query is orthogonal to delivery and allergen docs; with a
	// high threshold only the refund doc survives even though k=3.
	results, err := ix.Query(context.Background(), "refund please", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Document.ID != "kb-2" {
		t.Fatalf("result = %s, want kb-2", results[0].Document.ID)
	}
}

func TestIngestSameIDReplacesNotDuplicates(t *testing.T) {
	t.Parallel()

	ix := NewIndex(&fakeEmbedder{})
	ctx := context.Background()

	if err := ix.Ingest(ctx, Document{ID: "kb-1", Text: "delivery info"}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if err := ix.Ingest(ctx, Document{ID: "kb-1", Text: "refund info"}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Len())
	}

	results, err := ix.Query(ctx, "refund", 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (replaced, not duplicated)", len(results))
	}
	if results[0].Document.Text != "refund info" {
		t.Fatalf("document text = %q, want the re-ingested text", results[0].Document.Text)
	}
}

func TestQueryTiesBreakByIngestionOrder(t *testing.T) {
	t.Parallel()

	ix := NewIndex(&fakeEmbedder{}, WithMinScore(0))
	ctx := context.Background()

	if err := ix.Ingest(ctx,
		Document{ID: "first", Text: "payment by card"},
		Document{ID: "second", Text: "payment by wallet"},
	); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	results, err := ix.Query(ctx, "payment", 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Document.ID != "first" || results[1].Document.ID != "second" {
		t.Fatalf("tie not broken by ingestion order: %s then %s", results[0].Document.ID, results[1].Document.ID)
	}
}

func TestQueryZeroKAndEmptyText(t *testing.T) {
	t.Parallel()

	ix := NewIndex(&fakeEmbedder{})
	if err := ix.Ingest(context.Background(), testDocs()...); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if results, err := ix.Query(context.Background(), "delivery", 0); err != nil || len(results) != 0 {
		t.Fatalf("Query(k=0) = %v, %v; want empty, nil", results, err)
	}
	if results, err := ix.Query(context.Background(), "   ", 3); err != nil || len(results) != 0 {
		t.Fatalf("Query(empty text) = %v, %v; want empty, nil", results, err)
	}
}
