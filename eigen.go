package qcmp

import (
	"fmt"
	"strconv"

	"github.com/fractalqb/qcmp/dmat"
)

// EigenBlock is one reconstructed eigenvalue/eigenvector block. An
// output file may print an eigensystem as several blocks, each covering
// a slice of the basis.
type EigenBlock struct {
	// Values are the eigenvalues, or the integer column labels when the
	// source never printed numeric eigenvalues.
	Values []float64
	// Vectors holds the eigenvectors column by column, each rescaled to
	// unit Euclidean norm. The source program's own normalization
	// convention is not trusted.
	Vectors *dmat.Dense
	// FromStart reports that the block's first column is basis index 1,
	// ToEnd that its last column label equals the row dimension. They
	// tell the comparator which subspace edges are known.
	FromStart, ToEnd bool
}

func (b *EigenBlock) String() string {
	return fmt.Sprintf("eigenblock %dx%d", b.Vectors.Rows(), b.Vectors.Cols())
}

// eigenSession accumulates the raw rows of one eigen section. It is
// created when the mode machine enters eigen mode and consumed by
// finish when the block ends.
type eigenSession struct {
	line   int // line of the first header row
	labels []int
	values []float64
	vector []float64 // flat coefficient buffer, row-major per group
	groups []int     // column count contributed by each header row
}

func newEigenSession(line int) *eigenSession { return &eigenSession{line: line} }

// header consumes a "Root No." row. Wide blocks repeat the header for
// every column group, so labels accumulate over the session.
func (es *eigenSession) header(words []string) {
	n := 0
	for _, w := range words[2:] {
		if v, err := strconv.Atoi(w); err == nil {
			es.labels = append(es.labels, v)
			n++
		}
	}
	es.groups = append(es.groups, n)
}

// row consumes one non-header row while the block is open and reports
// whether it belonged to the block. A false return ends the block; the
// caller re-processes the row under standard rules.
func (es *eigenSession) row(words []string) bool {
	last := es.groups[len(es.groups)-1]
	switch {
	case len(words) == 0:
		return true
	case len(words) == last && len(es.values) < len(es.labels):
		// The row has eigenvalue shape, but the source sometimes
		// re-prints the label row. Only one value row is consumed.
		if es.isLabelEcho(words) {
			return true
		}
		vals := make([]float64, len(words))
		for i, w := range words {
			f, ok := ParseFloat(w)
			if !ok {
				return false
			}
			vals[i] = f
		}
		es.values = append(es.values, vals...)
		return true
	case len(words) == 2*last && isFloat(words[len(words)-2]) && !isFloat(words[len(words)-1]):
		// Symmetry annotations pair each coefficient with a group-theory
		// label. They are not verified; identifying subspace boundaries
		// from them is not worth interpreting the labels.
		return true
	case len(words) > last:
		tail := words[len(words)-last:]
		vals := make([]float64, last)
		for i, w := range tail {
			f, ok := ParseFloat(w)
			if !ok {
				return false
			}
			vals[i] = f
		}
		es.vector = append(es.vector, vals...)
		return true
	}
	return false
}

// isLabelEcho compares the row as integers against the tail of the
// accumulated labels.
func (es *eigenSession) isLabelEcho(words []string) bool {
	tail := es.labels[len(es.labels)-len(words):]
	for i, w := range words {
		v, err := strconv.Atoi(w)
		if err != nil || v != tail[i] {
			return false
		}
	}
	return true
}

// finish reassembles the accumulated rows into the block element. The
// flat buffer holds each column group row-major, so the matrix is
// rebuilt group by group at its cumulative offset.
func (es *eigenSession) finish() *Element {
	ncol := len(es.labels)
	if ncol == 0 {
		return nil
	}
	nrow := len(es.vector) / ncol
	m := dmat.New(nrow, ncol)
	offset := 0
	for _, num := range es.groups {
		for i := 0; i < nrow; i++ {
			for j := 0; j < num; j++ {
				m.Set(i, offset+j, es.vector[offset*nrow+i*num+j])
			}
		}
		offset += num
	}
	m.NormalizeCols()
	blk := &EigenBlock{
		Vectors:   m,
		FromStart: es.labels[0] == 1,
		ToEnd:     es.labels[ncol-1] == nrow,
	}
	if len(es.values) == ncol {
		blk.Values = es.values
	} else {
		blk.Values = make([]float64, ncol)
		for i, l := range es.labels {
			blk.Values[i] = float64(l)
		}
	}
	return &Element{Line: es.line, Kind: KindEigen, Eigen: blk}
}
