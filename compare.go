package qcmp

import (
	"fmt"
	"io"
	"math"

	"github.com/fractalqb/qcmp/dmat"
)

// Default comparison thresholds. Small floating-point drift across
// versions and platforms is expected; anything structural is not.
const (
	// NumericThreshold bounds the tolerated drift of bare numbers and
	// eigenvalues.
	NumericThreshold = 0.01
	// HeatThreshold bounds the tolerated drift of the final heat of
	// formation.
	HeatThreshold = 1e-3
	// DegeneracyThreshold is the eigenvalue gap below which neighboring
	// eigenvectors share a degenerate subspace.
	DegeneracyThreshold = 1e-2
	// EigvecThreshold bounds how far the singular values of a subspace
	// overlap may deviate from 1.
	EigvecThreshold = 5e-3
)

// Warning reports tolerable numeric drift between the reference and the
// candidate stream.
type Warning struct {
	Line     int
	Quantity string // "numerical", "numerical heat" or "eigenvalue"
	Ref, Out float64
}

func (w Warning) String() string {
	return fmt.Sprintf("WARNING: %s mismatch between %v and %v on output line %d",
		w.Quantity, w.Ref, w.Out, w.Line)
}

// WarnFunc is called for each non-fatal mismatch during comparison.
type WarnFunc func(Warning)

// Compare walks two element streams in lockstep and checks each pair
// under the per-type tolerance rules. A zero value is valid for use and
// applies the default thresholds. It must not be used concurrently.
type Compare struct {
	Profile Profile
	// OnWarning is called on each tolerable drift. If nil, the warning
	// is printed to standard output.
	OnWarning WarnFunc
}

func (cmpr *Compare) warn(w Warning) {
	if cmpr.OnWarning != nil {
		cmpr.OnWarning(w)
	} else {
		fmt.Println(w)
	}
}

// Files compares the candidate output file against the reference output
// file. It returns the number of warnings and the first fatal mismatch,
// if any.
func (cmpr *Compare) Files(ref, out string) (int, error) {
	rsc, err := ScanFile(ref)
	if err != nil {
		return 0, err
	}
	defer rsc.Close()
	osc, err := ScanFile(out)
	if err != nil {
		return 0, err
	}
	defer osc.Close()
	return cmpr.Streams(rsc, osc)
}

// Streams drives two scanners in lockstep. Comparison ends without
// error when either stream runs out; positional alignment of the two
// streams is assumed, not re-established.
func (cmpr *Compare) Streams(ref, out *Scanner) (warnings int, err error) {
	if err = ref.AddSkip(cmpr.Profile.Skip...); err != nil {
		return 0, err
	}
	if err = out.AddSkip(cmpr.Profile.Skip...); err != nil {
		return 0, err
	}
	for {
		rel, err := ref.Next()
		if err == io.EOF {
			return warnings, nil
		} else if err != nil {
			return warnings, err
		}
		oel, err := out.Next()
		if err == io.EOF {
			return warnings, nil
		} else if err != nil {
			return warnings, err
		}
		w, err := cmpr.pair(rel, oel)
		warnings += w
		if err != nil {
			return warnings, err
		}
	}
}

// Elements compares two already collected streams position by position.
func (cmpr *Compare) Elements(ref, out []*Element) (warnings int, err error) {
	n := len(ref)
	if len(out) < n {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		w, err := cmpr.pair(ref[i], out[i])
		warnings += w
		if err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

func (cmpr *Compare) pair(ref, out *Element) (warnings int, err error) {
	if ref.Kind != out.Kind {
		return 0, &TypeError{Line: out.Line, Ref: ref, Out: out}
	}
	switch ref.Kind {
	case KindText:
		if ref.Text != out.Text {
			return 0, &TextError{Line: out.Line, Ref: ref.Text, Out: out.Text}
		}
	case KindNumber:
		if math.Abs(ref.Num-out.Num) > cmpr.Profile.numeric() {
			cmpr.warn(Warning{out.Line, "numerical", ref.Num, out.Num})
			warnings++
		}
	case KindHeat:
		if math.Abs(ref.Num-out.Num) > cmpr.Profile.heat() {
			cmpr.warn(Warning{out.Line, "numerical heat", ref.Num, out.Num})
			warnings++
		}
	case KindEigen:
		return cmpr.eigenPair(out.Line, ref, out)
	}
	return warnings, nil
}

func (cmpr *Compare) eigenPair(line int, ref, out *Element) (warnings int, err error) {
	rb, ob := ref.Eigen, out.Eigen
	if len(rb.Values) != len(ob.Values) ||
		rb.Vectors.Rows() != ob.Vectors.Rows() ||
		rb.Vectors.Cols() != ob.Vectors.Cols() {
		return 0, &TypeError{Line: line, Ref: ref, Out: out}
	}
	for i, rv := range rb.Values {
		if math.Abs(rv-ob.Values[i]) > cmpr.Profile.numeric() {
			cmpr.warn(Warning{line, "eigenvalue", rv, ob.Values[i]})
			warnings++
		}
	}
	// Degenerate subspaces are delimited by the reference eigenvalues.
	// Within such a subspace any orthonormal rotation is physically
	// equivalent, so only the subspace overlap is verified. Subspaces
	// missing an edge because the block is a partial slice are left
	// unchecked rather than guessed at.
	edges := cmpr.subspaceEdges(rb)
	for i := 0; i+1 < len(edges); i++ {
		ov := dmat.Overlap(rb.Vectors, ob.Vectors, edges[i], edges[i+1])
		sv := ov.SingularValues()
		if len(sv) == 0 {
			continue
		}
		hi, lo := sv[0], sv[len(sv)-1]
		eps := cmpr.Profile.eigvec()
		if hi >= 1+eps || lo <= 1-eps {
			return warnings, &SubspaceError{Line: line, Min: lo, Max: hi}
		}
	}
	return warnings, nil
}

func (cmpr *Compare) subspaceEdges(ref *EigenBlock) (edges []int) {
	if ref.FromStart {
		edges = append(edges, 0)
	}
	gap := cmpr.Profile.degeneracy()
	for i := 0; i+1 < len(ref.Values); i++ {
		if math.Abs(ref.Values[i]-ref.Values[i+1]) > gap {
			edges = append(edges, i+1)
		}
	}
	if ref.ToEnd {
		edges = append(edges, len(ref.Values))
	}
	return edges
}

// TypeError is the fatal disagreement of element types at an aligned
// stream position. The two runs are not meaningfully comparable.
type TypeError struct {
	Line     int
	Ref, Out *Element
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch between %s and %s on output line %d",
		e.Ref, e.Out, e.Line)
}

// TextError is a fatal label or identifier divergence. Unlike numeric
// drift it is never tolerated.
type TextError struct {
	Line     int
	Ref, Out string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("text mismatch between %s and %s on output line %d",
		e.Ref, e.Out, e.Line)
}

// SubspaceError is a fatal divergence of degenerate-subspace content,
// detected by singular values of the overlap matrix leaving the allowed
// band around 1.
type SubspaceError struct {
	Line     int
	Min, Max float64
}

func (e *SubspaceError) Error() string {
	return fmt.Sprintf("degenerate subspace mismatch on output line %d, overlap range in [%v,%v]",
		e.Line, e.Min, e.Max)
}
