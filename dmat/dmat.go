// Package dmat implements the small dense matrices needed to compare
// eigenvector blocks. Matrices are row-major float64 buffers with an
// explicit shape. The package provides just the operations the
// comparison needs, i.e. column normalization, the overlap product of
// two column ranges and singular values of small square matrices.
package dmat

import (
	"fmt"
	"math"
	"sort"
)

// Dense is a row-major rows×cols matrix of float64.
type Dense struct {
	rows, cols int
	data       []float64
}

func New(rows, cols int) *Dense {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("dmat: negative dimension %dx%d", rows, cols))
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows builds a matrix from row slices. All rows must have the same
// length.
func FromRows(rows ...[]float64) *Dense {
	if len(rows) == 0 {
		return New(0, 0)
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("dmat: row %d has %d columns, want %d", i, len(row), m.cols))
		}
		copy(m.data[i*m.cols:], row)
	}
	return m
}

func (m *Dense) Rows() int { return m.rows }

func (m *Dense) Cols() int { return m.cols }

func (m *Dense) At(i, j int) float64 { return m.data[i*m.cols+j] }

func (m *Dense) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

func (m *Dense) Clone() *Dense {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Equal reports element-wise equality. It makes Dense comparable with
// go-cmp without exporting the backing slice.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// ColNorm returns the Euclidean norm of column j.
func (m *Dense) ColNorm(j int) float64 {
	var sum float64
	for i := 0; i < m.rows; i++ {
		v := m.data[i*m.cols+j]
		sum += v * v
	}
	return math.Sqrt(sum)
}

// NormalizeCols rescales every column to unit Euclidean norm. Zero
// columns are left untouched.
func (m *Dense) NormalizeCols() {
	for j := 0; j < m.cols; j++ {
		n := m.ColNorm(j)
		if n == 0 {
			continue
		}
		for i := 0; i < m.rows; i++ {
			m.data[i*m.cols+j] /= n
		}
	}
}

// Overlap computes aᵀb restricted to the columns [lo,hi) of both
// matrices. The result is a (hi-lo)×(hi-lo) matrix whose singular
// values measure how close the two column spans are.
func Overlap(a, b *Dense, lo, hi int) *Dense {
	if a.rows != b.rows {
		panic(fmt.Sprintf("dmat: overlap of %d and %d rows", a.rows, b.rows))
	}
	k := hi - lo
	res := New(k, k)
	for p := 0; p < k; p++ {
		for q := 0; q < k; q++ {
			var sum float64
			for i := 0; i < a.rows; i++ {
				sum += a.data[i*a.cols+lo+p] * b.data[i*b.cols+lo+q]
			}
			res.data[p*k+q] = sum
		}
	}
	return res
}

const (
	svdSweeps = 30
	svdTol    = 1e-12
)

// SingularValues returns the singular values of m in descending order.
// It runs one-sided Jacobi sweeps that orthogonalize column pairs; the
// singular values are the column norms of the rotated matrix. The
// matrices here have at most a few tens of columns, so no bidiagonal
// machinery is needed.
func (m *Dense) SingularValues() []float64 {
	w := m.Clone()
	for sweep := 0; sweep < svdSweeps; sweep++ {
		rotated := false
		for p := 0; p < w.cols-1; p++ {
			for q := p + 1; q < w.cols; q++ {
				var app, aqq, apq float64
				for i := 0; i < w.rows; i++ {
					ip := w.data[i*w.cols+p]
					iq := w.data[i*w.cols+q]
					app += ip * ip
					aqq += iq * iq
					apq += ip * iq
				}
				if math.Abs(apq) <= svdTol*math.Sqrt(app*aqq) {
					continue
				}
				theta := (aqq - app) / (2 * apq)
				t := math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c := 1 / math.Sqrt(t*t+1)
				s := t * c
				for i := 0; i < w.rows; i++ {
					ip := w.data[i*w.cols+p]
					iq := w.data[i*w.cols+q]
					w.data[i*w.cols+p] = c*ip - s*iq
					w.data[i*w.cols+q] = s*ip + c*iq
				}
				rotated = true
			}
		}
		if !rotated {
			break
		}
	}
	sv := make([]float64, w.cols)
	for j := range sv {
		sv[j] = w.ColNorm(j)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sv)))
	return sv
}
