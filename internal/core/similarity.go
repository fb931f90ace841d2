// ABOUTME: Dot-product similarity scoring of a query vector against embedding rows
// ABOUTME: Embeddings are pre-normalized, so dot product equals cosine similarity
package core

import (
	"fmt"

	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// SimilarityScores computes the dot product of query against every row
// of m. Both sides are unit vectors, which makes this a cosine
// similarity in [-1, 1]. The only error condition is a dimension
// mismatch between the query and the matrix columns.
func SimilarityScores(query []float64, m *models.Matrix) ([]float64, error) {
	if len(query) != m.Cols {
		return nil, fmt.Errorf("query has %d dimensions, embeddings have %d", len(query), m.Cols)
	}
	scores := make([]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		row := m.Row(i)
		var sum float64
		for j, q := range query {
			sum += q * row[j]
		}
		scores[i] = sum
	}
	return scores, nil
}
