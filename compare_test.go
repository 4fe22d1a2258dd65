package qcmp

import (
	"errors"
	"os"
	"testing"

	"github.com/fractalqb/qcmp/dmat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectWarnings(cmpr *Compare) *[]Warning {
	ws := new([]Warning)
	cmpr.OnWarning = func(w Warning) { *ws = append(*ws, w) }
	return ws
}

func compareTexts(t *testing.T, cmpr *Compare, ref, out string) (int, error) {
	t.Helper()
	return cmpr.Streams(ScanString("ref", ref), ScanString("out", out))
}

func TestCompare_equalStreams(t *testing.T) {
	var cmpr Compare
	ws := collectWarnings(&cmpr)
	warnings, err := compareTexts(t, &cmpr,
		"ATOM C 1.204\nATOM H 0.889",
		"ATOM C 1.204\nATOM H 0.889")
	require.NoError(t, err)
	assert.Zero(t, warnings)
	assert.Empty(t, *ws)
}

func TestCompare_typeMismatch(t *testing.T) {
	var cmpr Compare
	cmpr.OnWarning = func(Warning) {}
	_, err := compareTexts(t, &cmpr, "ATOM BAR", "ATOM 3.14")
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "type mismatch between BAR and 3.14 on output line 1", err.Error())
}

func TestCompare_textMismatch(t *testing.T) {
	var cmpr Compare
	_, err := compareTexts(t, &cmpr, "ATOM C 1.204", "ATOM N 1.204")
	var te *TextError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "text mismatch between C and N on output line 1", err.Error())
	assert.Equal(t, 1, te.Line)
}

func TestCompare_numericDrift(t *testing.T) {
	t.Run("within threshold", func(t *testing.T) {
		var cmpr Compare
		ws := collectWarnings(&cmpr)
		warnings, err := compareTexts(t, &cmpr, "ENERGY -356.28937", "ENERGY -356.29437")
		require.NoError(t, err)
		assert.Zero(t, warnings)
		assert.Empty(t, *ws)
	})
	t.Run("beyond threshold", func(t *testing.T) {
		var cmpr Compare
		ws := collectWarnings(&cmpr)
		warnings, err := compareTexts(t, &cmpr, "ENERGY -356.28937", "ENERGY -356.31423")
		require.NoError(t, err)
		assert.Equal(t, 1, warnings)
		require.Len(t, *ws, 1)
		w := (*ws)[0]
		assert.Equal(t, Warning{Line: 1, Quantity: "numerical", Ref: -356.28937, Out: -356.31423}, w)
	})
	t.Run("profile widens threshold", func(t *testing.T) {
		cmpr := Compare{Profile: Profile{Numeric: 0.1}}
		ws := collectWarnings(&cmpr)
		warnings, err := compareTexts(t, &cmpr, "ENERGY -356.28937", "ENERGY -356.33937")
		require.NoError(t, err)
		assert.Zero(t, warnings)
		assert.Empty(t, *ws)
	})
}

func TestCompare_heatDrift(t *testing.T) {
	const refLine = " FINAL HEAT OF FORMATION =  -57.80500 KCAL/MOL"
	t.Run("within threshold", func(t *testing.T) {
		var cmpr Compare
		ws := collectWarnings(&cmpr)
		warnings, err := compareTexts(t, &cmpr, refLine,
			" FINAL HEAT OF FORMATION =  -57.80550 KCAL/MOL")
		require.NoError(t, err)
		assert.Zero(t, warnings)
		assert.Empty(t, *ws)
	})
	t.Run("beyond threshold", func(t *testing.T) {
		var cmpr Compare
		ws := collectWarnings(&cmpr)
		warnings, err := compareTexts(t, &cmpr, refLine,
			" FINAL HEAT OF FORMATION =  -57.80700 KCAL/MOL")
		require.NoError(t, err)
		assert.Equal(t, 1, warnings)
		require.Len(t, *ws, 1)
		assert.Equal(t, "numerical heat", (*ws)[0].Quantity)
		assert.Equal(t, 1, (*ws)[0].Line)
	})
}

func TestCompare_shorterStreamEndsComparison(t *testing.T) {
	var cmpr Compare
	warnings, err := compareTexts(t, &cmpr, "ATOM C 1.204\nATOM H 0.889", "ATOM C 1.204")
	require.NoError(t, err)
	assert.Zero(t, warnings)
	warnings, err = compareTexts(t, &cmpr, "ATOM C 1.204", "ATOM C 1.204\nATOM H 0.889")
	require.NoError(t, err)
	assert.Zero(t, warnings)
}

func TestCompare_profileSkip(t *testing.T) {
	cmpr := Compare{Profile: Profile{Skip: []string{`MY NOISE`}}}
	warnings, err := compareTexts(t, &cmpr,
		"ATOM C 1.204\nMY NOISE 17\nATOM H 0.889",
		"ATOM C 1.204\nMY NOISE 23\nATOM H 0.889")
	require.NoError(t, err)
	assert.Zero(t, warnings)

	cmpr = Compare{Profile: Profile{Skip: []string{`(`}}}
	_, err = compareTexts(t, &cmpr, "A", "A")
	assert.Error(t, err)
}

func eigenElement(line int, values []float64, fromStart, toEnd bool, rows ...[]float64) *Element {
	return &Element{Line: line, Kind: KindEigen, Eigen: &EigenBlock{
		Values:    values,
		Vectors:   dmat.FromRows(rows...),
		FromStart: fromStart,
		ToEnd:     toEnd,
	}}
}

func TestCompare_eigenValuesWarn(t *testing.T) {
	var cmpr Compare
	ws := collectWarnings(&cmpr)
	ref := eigenElement(3, []float64{-10.5, -9.0}, true, true,
		[]float64{1, 0}, []float64{0, 1})
	out := eigenElement(3, []float64{-10.52, -9.0}, true, true,
		[]float64{1, 0}, []float64{0, 1})
	warnings, err := cmpr.Elements([]*Element{ref}, []*Element{out})
	require.NoError(t, err)
	assert.Equal(t, 1, warnings)
	require.Len(t, *ws, 1)
	assert.Equal(t, Warning{Line: 3, Quantity: "eigenvalue", Ref: -10.5, Out: -10.52}, (*ws)[0])
}

func TestCompare_eigenShapeMismatch(t *testing.T) {
	var cmpr Compare
	ref := eigenElement(1, []float64{-10.5, -10.4}, true, true,
		[]float64{1, 0}, []float64{0, 1})
	out := eigenElement(1, []float64{-10.5}, true, false,
		[]float64{1}, []float64{0})
	_, err := cmpr.Elements([]*Element{ref}, []*Element{out})
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Line)
}

func TestCompare_degenerateRotationTolerated(t *testing.T) {
	// within a degenerate subspace any orthonormal rotation of the
	// eigenvectors is physically the same solution
	var cmpr Compare
	ws := collectWarnings(&cmpr)
	ref := eigenElement(1, []float64{-10.5, -10.5}, true, true,
		[]float64{1, 0}, []float64{0, 1})
	const c = 0.7071067811865476
	out := eigenElement(1, []float64{-10.5, -10.5}, true, true,
		[]float64{c, -c}, []float64{c, c})
	warnings, err := cmpr.Elements([]*Element{ref}, []*Element{out})
	require.NoError(t, err)
	assert.Zero(t, warnings)
	assert.Empty(t, *ws)
}

func TestCompare_nonDegenerateRotationFails(t *testing.T) {
	// the same rotation across an eigenvalue gap mixes distinct states
	var cmpr Compare
	ref := eigenElement(1, []float64{-10.5, -10.4}, true, true,
		[]float64{1, 0}, []float64{0, 1})
	const c = 0.7071067811865476
	out := eigenElement(1, []float64{-10.5, -10.4}, true, true,
		[]float64{c, -c}, []float64{c, c})
	_, err := cmpr.Elements([]*Element{ref}, []*Element{out})
	var se *SubspaceError
	require.ErrorAs(t, err, &se)
	assert.InDelta(t, c, se.Min, 1e-9)
	assert.InDelta(t, c, se.Max, 1e-9)
	assert.Equal(t, 1, se.Line)
}

func TestCompare_openEdgeLeftUnchecked(t *testing.T) {
	// a partial block does not know where its outermost subspaces end,
	// so they must not be verified against a guessed boundary
	var cmpr Compare
	ref := eigenElement(1, []float64{-10.5, -10.5}, true, false,
		[]float64{1, 0}, []float64{0, 1})
	const c = 0.7071067811865476
	out := eigenElement(1, []float64{-10.5, -10.5}, true, false,
		[]float64{c, 0}, []float64{0, c})
	warnings, err := cmpr.Elements([]*Element{ref}, []*Element{out})
	require.NoError(t, err)
	assert.Zero(t, warnings)
}

func TestCompare_subspaceEdges(t *testing.T) {
	var cmpr Compare
	blk := &EigenBlock{
		Values:    []float64{-10.5, -10.495, -9.0, -9.0, -7.0},
		FromStart: true, ToEnd: true,
	}
	assert.Equal(t, []int{0, 2, 4, 5}, cmpr.subspaceEdges(blk))
	blk.FromStart = false
	assert.Equal(t, []int{2, 4, 5}, cmpr.subspaceEdges(blk))
	blk.ToEnd = false
	assert.Equal(t, []int{2, 4}, cmpr.subspaceEdges(blk))
}

func TestCompare_missingFile(t *testing.T) {
	var cmpr Compare
	_, err := cmpr.Files("testdata/does-not-exist.out", "testdata/does-not-exist.out")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
