// ABOUTME: Matrix is a row-major embedding matrix loaded from .npy artifacts
// ABOUTME: Rows are subchunk embedding vectors, widened to float64 on load
package models

import "fmt"

// Matrix holds embedding vectors in row-major order. It is immutable once
// loaded and safe to share across goroutines.
type Matrix struct {
	Data []float64
	Rows int
	Cols int
}

// NewMatrix validates dimensions and wraps data in a Matrix.
func NewMatrix(data []float64, rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("matrix size mismatch: %d values for %dx%d", len(data), rows, cols)
	}
	return &Matrix{Data: data, Rows: rows, Cols: cols}, nil
}

// Row returns the i-th embedding vector. The slice aliases the underlying
// data and must not be modified.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}
