package qcmp

import (
	"strconv"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// Kind discriminates the element types a Scanner emits.
type Kind int

const (
	// KindText is identifier or label content, compared for exact equality.
	KindText Kind = iota
	// KindNumber is a bare numeric token, compared within NumericThreshold.
	KindNumber
	// KindHeat is the final heat-of-formation value, compared within the
	// tighter HeatThreshold.
	KindHeat
	// KindEigen is a reconstructed eigenvalue/eigenvector block.
	KindEigen
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindHeat:
		return "heat of formation"
	case KindEigen:
		return "eigenblock"
	}
	return "invalid"
}

// Element is one typed token or block parsed from an output file. Only
// the field selected by Kind is meaningful.
type Element struct {
	// Line is the 1-based source line. For eigenblocks it is the line of
	// the first header row.
	Line  int
	Kind  Kind
	Text  string
	Num   float64
	Eigen *EigenBlock

	islsNext *Element
}

func textElement(line int, s string) *Element {
	return &Element{Line: line, Kind: KindText, Text: s}
}

func numElement(line int, v float64) *Element {
	return &Element{Line: line, Kind: KindNumber, Num: v}
}

func heatElement(line int, v float64) *Element {
	return &Element{Line: line, Kind: KindHeat, Num: v}
}

func (el *Element) String() string {
	switch el.Kind {
	case KindText:
		return el.Text
	case KindNumber:
		return strconv.FormatFloat(el.Num, 'g', -1, 64)
	case KindHeat:
		return "HOF " + strconv.FormatFloat(el.Num, 'g', -1, 64)
	case KindEigen:
		return el.Eigen.String()
	}
	return "invalid element"
}

// ListNext to implement intrusive singly linked list
func (el *Element) ListNext() islist.Node { return el.islsNext }

// SetListNext to implement intrusive singly linked list
func (el *Element) SetListNext(n islist.Node) {
	if n == nil {
		el.islsNext = nil
	} else {
		el.islsNext = n.(*Element)
	}
}
