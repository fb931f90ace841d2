// ABOUTME: NumPy .npy matrix reader for embedding artifacts
// ABOUTME: Accepts little-endian float32/float64 C-order 2-D arrays
package corpus

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"

	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// ReadMatrix loads a 2-D .npy file into a row-major float64 matrix.
// Float32 data is widened to float64. Fortran-order arrays, non-2D
// shapes, and non-float dtypes are rejected.
func ReadMatrix(path string) (*models.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening npy file: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: reading npy header: %w", path, err)
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("%s: expected 2-D array, got shape %v", path, shape)
	}
	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("%s: Fortran-order arrays are not supported", path)
	}

	rows, cols := shape[0], shape[1]
	n := rows * cols

	var data []float64
	switch dtype := r.Header.Descr.Type; dtype {
	case "<f8", "|f8":
		data = make([]float64, n)
		if err := r.Read(&data); err != nil {
			return nil, fmt.Errorf("%s: reading float64 data: %w", path, err)
		}
	case "<f4", "|f4":
		raw := make([]float32, n)
		if err := r.Read(&raw); err != nil {
			return nil, fmt.Errorf("%s: reading float32 data: %w", path, err)
		}
		data = make([]float64, n)
		for i, v := range raw {
			data[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %q", path, dtype)
	}

	return models.NewMatrix(data, rows, cols)
}
