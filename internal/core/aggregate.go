// ABOUTME: Rolls subchunk similarity scores up to their parent chunks
// ABOUTME: Supports max and mean aggregation; unresolvable parent refs are skipped
package core

import (
	"fmt"
	"log"

	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// Policy selects how multiple subchunk scores combine into one parent
// chunk score.
type Policy string

const (
	// PolicyMax keeps the best subchunk score per parent. This is the
	// default: one strongly matching passage should surface its chunk
	// even when the rest of the chunk is off-topic.
	PolicyMax Policy = "max"
	// PolicyMean averages subchunk scores per parent.
	PolicyMean Policy = "mean"
)

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyMax:
		return PolicyMax, nil
	case PolicyMean:
		return PolicyMean, nil
	default:
		return "", fmt.Errorf("unknown aggregation policy %q (want max or mean)", s)
	}
}

// AggregateByParent combines per-subchunk scores into per-chunk scores.
// scores[i] belongs to the parent chunk parents[i] refers to. Refs that
// failed to parse or point outside [0, chunkCount) are skipped with a
// warning rather than failing the query. Chunks with no surviving
// subchunk are absent from the result.
func AggregateByParent(scores []float64, parents []models.ParentRef, chunkCount int, policy Policy) map[int]float64 {
	sums := make(map[int]float64)
	bests := make(map[int]float64)
	counts := make(map[int]int)

	for i, score := range scores {
		if i >= len(parents) {
			break
		}
		ref := parents[i]
		if !ref.Valid {
			log.Printf("Warning: unrecognized parent ref for subchunk %d: %s", i, ref.Raw)
			continue
		}
		if ref.Index < 0 || ref.Index >= chunkCount {
			log.Printf("Warning: subchunk %d refers to chunk %d, outside 0..%d", i, ref.Index, chunkCount-1)
			continue
		}
		if counts[ref.Index] == 0 || score > bests[ref.Index] {
			bests[ref.Index] = score
		}
		sums[ref.Index] += score
		counts[ref.Index]++
	}

	result := make(map[int]float64, len(counts))
	for idx, n := range counts {
		if policy == PolicyMean {
			result[idx] = sums[idx] / float64(n)
		} else {
			result[idx] = bests[idx]
		}
	}
	return result
}
