// ABOUTME: Orchestrates one retrieval: embed, score, aggregate, select, assemble
// ABOUTME: Scores the three corpus tables concurrently against the query embedding
package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mwatkins1970/leilan-portal/internal/corpus"
	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// Embedder produces a unit-length embedding for a query string.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Retriever wires the corpus, the embedder, and the prompt builder into
// one query pipeline. All fields are read-only after construction, so a
// single Retriever serves concurrent callers.
type Retriever struct {
	store    *corpus.Store
	embedder Embedder
	policy   Policy
	caps     models.CategoryCaps
	builder  *PromptBuilder
}

// NewRetriever assembles a retrieval pipeline over the given corpus.
func NewRetriever(store *corpus.Store, embedder Embedder, policy Policy, caps models.CategoryCaps, builder *PromptBuilder) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
		policy:   policy,
		caps:     caps,
		builder:  builder,
	}
}

// RetrieveContext runs the full pipeline for one query and returns the
// assembled prompt ending in the query marker line. A blank query is
// rejected before any embedding call is made.
func (r *Retriever) RetrieveContext(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}

	queryEmbedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	type scored struct {
		ranked []models.ScoredChunk
		err    error
	}
	tables := []struct {
		name string
		data *corpus.CategoryData
	}{
		{"dialogue", &r.store.Dialogue},
		{"essay", &r.store.Essay},
		{"interview", &r.store.Interview},
	}

	results := make([]scored, len(tables))
	var wg sync.WaitGroup
	for i, tbl := range tables {
		wg.Add(1)
		go func(i int, name string, data *corpus.CategoryData) {
			defer wg.Done()
			sims, err := SimilarityScores(queryEmbedding, data.Sub.Embeddings)
			if err != nil {
				results[i].err = fmt.Errorf("scoring %s subchunks: %w", name, err)
				return
			}
			byChunk := AggregateByParent(sims, data.Sub.Parents, len(data.Chunks), r.policy)
			results[i].ranked = RankChunks(byChunk)
		}(i, tbl.name, tbl.data)
	}
	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			return "", res.err
		}
	}

	dialogue := SelectDialogue(results[0].ranked, r.store.Dialogue.Chunks, r.store.Dialogue.Meta, r.caps)
	essay := SelectTopK(results[1].ranked, r.store.Essay.Chunks, r.caps.Essay)
	interview := SelectTopK(results[2].ranked, r.store.Interview.Chunks, r.caps.Interview)

	sections := Sections{
		GPT:       FormatSection(models.CategoryGPT, dialogue.GPT),
		Opus:      FormatSection(models.CategoryOpus, dialogue.Opus),
		Essay:     FormatSection(models.CategoryEssay, essay),
		Interview: FormatSection(models.CategoryInterview, interview),
	}
	return r.builder.Assemble(sections, query), nil
}
