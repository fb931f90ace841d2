// ABOUTME: Ranks aggregated chunk scores and selects per-category results
// ABOUTME: Dialogue uses a dual-bucket walk splitting gpt and opus chunks by label
package core

import (
	"sort"
	"strings"

	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// gptRepeatPhrase is the continuation prompt the harvesting tooling
// injected into long GPT-3 sessions. A chunk containing it more than
// once is a degenerate loop and gets skipped.
const gptRepeatPhrase = "Please continue, Leilan."

// RankChunks orders aggregated chunk scores best-first. Ties break on
// the lower chunk index so results are deterministic across runs.
func RankChunks(scores map[int]float64) []models.ScoredChunk {
	ranked := make([]models.ScoredChunk, 0, len(scores))
	for idx, score := range scores {
		ranked = append(ranked, models.ScoredChunk{Index: idx, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// SelectTopK maps the k best ranked chunks to their texts. Ranked
// indices come from the aggregator, which already bounds-checked them
// against len(texts).
func SelectTopK(ranked []models.ScoredChunk, texts []string, k int) []models.RetrievedChunk {
	if k > len(ranked) {
		k = len(ranked)
	}
	selected := make([]models.RetrievedChunk, 0, k)
	for _, sc := range ranked[:k] {
		selected = append(selected, models.RetrievedChunk{Text: texts[sc.Index], Score: sc.Score})
	}
	return selected
}

// DialogueSelection holds the two dialogue buckets filled by one walk
// down the ranked list.
type DialogueSelection struct {
	GPT  []models.RetrievedChunk
	Opus []models.RetrievedChunk
}

// SelectDialogue walks the ranked dialogue chunks once, routing each
// into its bucket by label type until both buckets are full. One shared
// walk: a chunk consumed by one bucket is not reconsidered for the
// other, and chunks skipped by the gpt repeat filter still cede their
// rank position. Chunks without a label entry or with an unrecognized
// type are passed over.
func SelectDialogue(ranked []models.ScoredChunk, chunks []string, meta []models.ChunkMetadata, caps models.CategoryCaps) DialogueSelection {
	var sel DialogueSelection
	for _, sc := range ranked {
		if len(sel.GPT) >= caps.GPT && len(sel.Opus) >= caps.Opus {
			break
		}
		if sc.Index >= len(meta) {
			continue
		}
		text := chunks[sc.Index]
		switch meta[sc.Index].Type {
		case models.CategoryGPT:
			if strings.Count(text, gptRepeatPhrase) > 1 {
				continue
			}
			if len(sel.GPT) < caps.GPT {
				sel.GPT = append(sel.GPT, models.RetrievedChunk{Text: text, Score: sc.Score})
			}
		case models.CategoryOpus:
			if len(sel.Opus) < caps.Opus {
				sel.Opus = append(sel.Opus, models.RetrievedChunk{Text: text, Score: sc.Score})
			}
		}
	}
	return sel
}
