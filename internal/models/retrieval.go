// ABOUTME: Ephemeral per-query values produced by scoring and selection
// ABOUTME: ScoredChunk ranks parent chunks, RetrievedChunk carries selected text
package models

// ScoredChunk is a parent chunk index with its aggregated similarity score.
type ScoredChunk struct {
	Index int
	Score float64
}

// RetrievedChunk is a selected chunk ready for prompt formatting.
type RetrievedChunk struct {
	Text  string
	Score float64
}
