// ABOUTME: End-to-end tests for the retrieval pipeline with a stubbed embedder
// ABOUTME: Uses a tiny in-memory corpus with hand-checkable dot products
package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mwatkins1970/leilan-portal/internal/corpus"
	"github.com/mwatkins1970/leilan-portal/internal/models"
)

type stubEmbedder struct {
	vec   []float64
	err   error
	calls int
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func pRefs(indices ...int) []models.ParentRef {
	refs := make([]models.ParentRef, len(indices))
	for i, idx := range indices {
		refs[i] = models.ParentRef{Index: idx, Valid: true}
	}
	return refs
}

// testStore builds a corpus where the query [1,0,0] produces known
// scores: dialogue chunks score 1.0 / 0.0 / 0.0, essays 0.5 / 0.25,
// interviews 0.8 / 0.2.
func testStore(t *testing.T) *corpus.Store {
	t.Helper()
	matrix := func(data []float64, rows int) *models.Matrix {
		m, err := models.NewMatrix(data, rows, 3)
		if err != nil {
			t.Fatalf("NewMatrix() error = %v", err)
		}
		return m
	}

	return &corpus.Store{
		Dialogue: corpus.CategoryData{
			Chunks: []string{"Wild gpt transmission", "Calm gpt counsel", "Opus reflection"},
			Meta: []models.ChunkMetadata{
				{Label: "gpt3_davinci", Type: models.CategoryGPT, Subtype: "davinci"},
				{Label: "gpt3_td003", Type: models.CategoryGPT, Subtype: "td003"},
				{Label: "opus_t1", Type: models.CategoryOpus, Subtype: "t1"},
			},
			Sub: corpus.SubchunkTable{
				Texts: []string{"d0", "d1", "d2", "d3"},
				Embeddings: matrix([]float64{
					1, 0, 0,
					0, 1, 0,
					0, 0, 1,
					0.9, 0.1, 0,
				}, 4),
				Parents: pRefs(0, 1, 2, 0),
			},
		},
		Essay: corpus.CategoryData{
			Chunks: []string{"Essay zero", "Essay one"},
			Sub: corpus.SubchunkTable{
				Texts: []string{"e0", "e1"},
				Embeddings: matrix([]float64{
					0.5, 0, 0,
					0.25, 0, 0,
				}, 2),
				Parents: pRefs(0, 1),
			},
		},
		Interview: corpus.CategoryData{
			Chunks: []string{"Interview zero", "Interview one"},
			Sub: corpus.SubchunkTable{
				Texts: []string{"i0", "i1"},
				Embeddings: matrix([]float64{
					0.2, 0, 0,
					0.8, 0, 0,
				}, 2),
				Parents: pRefs(1, 0),
			},
		},
	}
}

func testRetriever(t *testing.T, embedder Embedder) *Retriever {
	t.Helper()
	builder, err := NewPromptBuilder("")
	if err != nil {
		t.Fatalf("NewPromptBuilder() error = %v", err)
	}
	return NewRetriever(testStore(t), embedder, PolicyMax, models.DefaultCaps(), builder)
}

func TestRetrieveContext_AssemblesFullPrompt(t *testing.T) {
	embedder := &stubEmbedder{vec: []float64{1, 0, 0}}
	r := testRetriever(t, embedder)

	got, err := r.RetrieveContext(context.Background(), "what is love?")
	if err != nil {
		t.Fatalf("RetrieveContext() error = %v", err)
	}

	// Dialogue chunk 0 aggregates to max(1.0, 0.9) = 1.0 under max policy.
	if !strings.Contains(got, "[semantic similarity: 1.000]\nWild gpt transmission") {
		t.Error("prompt is missing the top gpt chunk with its similarity header")
	}
	if !strings.Contains(got, "Opus reflection") {
		t.Error("prompt is missing the opus chunk")
	}
	if strings.Contains(got, "[semantic similarity: 0.000]\nOpus reflection") {
		t.Error("opus chunks must not carry similarity headers")
	}

	// Essay ordering follows the ranked scores 0.5 > 0.25.
	zero := strings.Index(got, "Essay zero")
	one := strings.Index(got, "Essay one")
	if zero == -1 || one == -1 || zero > one {
		t.Errorf("essay chunks out of order: %d vs %d", zero, one)
	}

	// Interview chunk 0 scores 0.8 via its second subchunk row.
	i0 := strings.Index(got, "Interview zero")
	i1 := strings.Index(got, "Interview one")
	if i0 == -1 || i1 == -1 || i0 > i1 {
		t.Errorf("interview chunks out of order: %d vs %d", i0, i1)
	}

	for _, tag := range []string{"<gpt>", "<opus>", "<essay>", "<interview>"} {
		if strings.Contains(got, tag) {
			t.Errorf("prompt still contains placeholder %s", tag)
		}
	}
	if !strings.HasSuffix(got, "\nQUERY: what is love?") {
		t.Error("prompt does not end with the query marker")
	}
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1", embedder.calls)
	}
}

func TestRetrieveContext_RejectsBlankQuery(t *testing.T) {
	embedder := &stubEmbedder{vec: []float64{1, 0, 0}}
	r := testRetriever(t, embedder)

	for _, query := range []string{"", "   ", "\t\n"} {
		if _, err := r.RetrieveContext(context.Background(), query); err == nil {
			t.Errorf("RetrieveContext(%q) expected error, got nil", query)
		}
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for blank queries, want 0", embedder.calls)
	}
}

func TestRetrieveContext_PropagatesEmbedderError(t *testing.T) {
	wantErr := errors.New("embedding service down")
	r := testRetriever(t, &stubEmbedder{err: wantErr})

	_, err := r.RetrieveContext(context.Background(), "hello")
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("RetrieveContext() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestRetrieveContext_DimensionMismatch(t *testing.T) {
	r := testRetriever(t, &stubEmbedder{vec: []float64{1, 0}})

	_, err := r.RetrieveContext(context.Background(), "hello")
	if err == nil {
		t.Fatal("RetrieveContext() expected dimension mismatch error, got nil")
	}
	if !strings.Contains(err.Error(), "dimensions") {
		t.Errorf("RetrieveContext() error = %v, want dimension mismatch", err)
	}
}

func TestRetrieveContext_Deterministic(t *testing.T) {
	r := testRetriever(t, &stubEmbedder{vec: []float64{1, 0, 0}})

	first, err := r.RetrieveContext(context.Background(), "what is love?")
	if err != nil {
		t.Fatalf("RetrieveContext() error = %v", err)
	}
	second, err := r.RetrieveContext(context.Background(), "what is love?")
	if err != nil {
		t.Fatalf("RetrieveContext() error = %v", err)
	}
	if first != second {
		t.Error("identical query and corpus produced different prompts")
	}
}

func TestRetrieveContext_MeanPolicyChangesAggregation(t *testing.T) {
	// Dialogue chunk 0 has subchunk scores 1.0 and 0.9: max policy
	// reports 1.000, mean policy 0.950.
	builder, err := NewPromptBuilder("")
	if err != nil {
		t.Fatalf("NewPromptBuilder() error = %v", err)
	}
	r := NewRetriever(testStore(t), &stubEmbedder{vec: []float64{1, 0, 0}}, PolicyMean, models.DefaultCaps(), builder)

	got, err := r.RetrieveContext(context.Background(), "hello")
	if err != nil {
		t.Fatalf("RetrieveContext() error = %v", err)
	}
	if !strings.Contains(got, "[semantic similarity: 0.950]\nWild gpt transmission") {
		t.Error("mean policy did not average the top chunk's subchunk scores")
	}
}
