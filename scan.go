package qcmp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// mode is the section the Scanner is currently in. Exactly one mode is
// active at a time.
type mode int

const (
	mStandard mode = iota
	mDimensions
	mIteration
	mGeometry
	mLocOrbitals
	mGradient
	mVibration
	mEigen
)

// Marker phrases that switch sections on and off.
const (
	hdrDimensions = "MOLECULAR DIMENSIONS (Angstroms)"
	endDimensions = "SCF CALCULATIONS"
	hdrGeometry   = "ATOM    CHEMICAL      BOND LENGTH      BOND ANGLE     TWIST ANGLE"
	hdrLocOrbs    = "NUMBER OF CENTERS  LMO ENERGY     COMPOSITION OF ORBITALS"
	endLocOrbs    = "LOCALIZED ORBITALS"
	hdrGradient   = "LARGEST ATOMIC GRADIENTS"
	hdrVibration  = "DESCRIPTION OF VIBRATIONS"
	endVibration1 = "FORCE CONSTANT IN INTERNAL COORDINATES"
	endVibration2 = "SYMMETRY NUMBER FOR POINT-GROUP"

	heatMarker = "FINAL HEAT OF FORMATION ="
	// heatWord is the position of the heat value on its report line.
	heatWord = 5
	// gradientBlanks many blank lines end the gradient table.
	gradientBlanks = 3
)

var hdrIteration = []string{
	"RHF CALCULATION",
	"UHF CALCULATION",
	"Geometry optimization using BFGS",
}

var endIteration = []string{
	"SCF FIELD WAS ACHIEVED",
	"THERE IS NOT ENOUGH TIME FOR ANOTHER CYCLE",
}

// skipPattern matches lines that are discarded in any mode: time
// stamps, clock/time/seconds counters, version strings, iteration and
// SCF-cycle banners and a few named diagnostic banners. None of them
// carry reproducible numeric content.
var skipPattern = regexp.MustCompile(
	`([A-Z][a-z][a-z] [A-Z][a-z][a-z] [ 0-9][0-9] [0-9][0-9]:[0-9][0-9]:[0-9][0-9] [0-9][0-9][0-9][0-9])` +
		`|(CLOCK)|(TIME)|(SECONDS)|(Version)|(THE VIBRATIONAL FREQUENCY)|(ITERATION)|(SCF CALCULATIONS)|(Stewart)` +
		`|(remaining)|(\*  ISOTOPE)|(\*  DENOUT)|(\*  OLDENS)|(\*  SETUP)`)

// eigenPattern matches the header row of an eigenvector block.
var eigenPattern = regexp.MustCompile(`(Root No\.)|(ROOT NO\.)`)

// Scanner reduces an output file to its stream of typed elements. Use
// Next to read elements in order of appearance, or All to collect the
// remaining ones. A Scanner must not be used concurrently.
type Scanner struct {
	name   string
	scn    *bufio.Scanner
	cls    io.Closer
	lno    int
	mode   mode
	blanks int // blank lines seen in the gradient table
	eigen  *eigenSession
	skip   []*regexp.Regexp
	out    *islist.List
	eof    bool
	err    error
}

func NewScanner(name string, rd io.Reader) *Scanner {
	return &Scanner{name: name, scn: bufio.NewScanner(rd)}
}

func ScanString(name, text string) *Scanner {
	return NewScanner(name, strings.NewReader(text))
}

func ScanFile(path string) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	sc := NewScanner(path, f)
	sc.cls = f
	return sc, nil
}

func (sc *Scanner) Close() error {
	if sc.cls == nil {
		return nil
	}
	return sc.cls.Close()
}

func (sc *Scanner) Name() string { return sc.name }

// Line returns the 1-based number of the most recently read line.
func (sc *Scanner) Line() int { return sc.lno }

// AddSkip compiles additional noise patterns. Matching lines are
// discarded like the built-in skip pattern.
func (sc *Scanner) AddSkip(patterns ...string) error {
	for _, p := range patterns {
		rgx, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("skip pattern '%s': %w", p, err)
		}
		sc.skip = append(sc.skip, rgx)
	}
	return nil
}

// Next returns the next element of the file or io.EOF after the last
// one. An eigenblock still open when the file ends is emitted as if the
// block had been terminated.
func (sc *Scanner) Next() (*Element, error) {
	for sc.out == nil || sc.out.Len() == 0 {
		if sc.err != nil {
			return nil, sc.err
		}
		if sc.eof {
			return nil, io.EOF
		}
		if !sc.scn.Scan() {
			sc.eof = true
			if err := sc.scn.Err(); err != nil {
				sc.err = &ScanError{Name: sc.name, Line: sc.lno, err: err}
				return nil, sc.err
			}
			if sc.mode == mEigen {
				sc.flushEigen()
			}
			continue
		}
		sc.lno++
		sc.step(sc.scn.Text())
	}
	el := sc.out.Front().(*Element)
	sc.out.Drop(1)
	el.islsNext = nil
	return el, nil
}

// All collects the remaining elements of the file.
func (sc *Scanner) All() ([]*Element, error) {
	var els []*Element
	for {
		el, err := sc.Next()
		switch {
		case err == io.EOF:
			return els, nil
		case err != nil:
			return els, err
		}
		els = append(els, el)
	}
}

func (sc *Scanner) emit(el *Element) {
	if sc.out == nil {
		sc.out = islist.New(el)
	} else {
		sc.out.PushBack(el)
	}
}

func (sc *Scanner) flushEigen() {
	if sc.eigen == nil {
		return
	}
	if el := sc.eigen.finish(); el != nil {
		sc.emit(el)
	}
	sc.eigen = nil
}

// step runs one line through the section filters, in their fixed order,
// and tokenizes it when standard mode applies to it.
func (sc *Scanner) step(line string) {
	words := splitWords(line)

	// Eigen headers take precedence over every section filter so that a
	// block starting inside another section is still caught. Header
	// lines are never tokenized as standard content.
	if eigenPattern.MatchString(line) {
		if sc.mode != mEigen {
			sc.mode = mEigen
			sc.eigen = newEigenSession(sc.lno)
		}
		sc.eigen.header(words)
		return
	}

	// Molecular dimensions block: discarded without trace. The trailer
	// line itself dies in the skip pattern below.
	if strings.Contains(line, hdrDimensions) {
		sc.mode = mDimensions
		return
	} else if sc.mode == mDimensions {
		if !strings.Contains(line, endDimensions) {
			return
		}
		sc.mode = mStandard
	}

	// Convergence loops: iteration counts are not reproducible across
	// versions or hardware.
	if containsAny(line, hdrIteration) {
		sc.mode = mIteration
		return
	} else if sc.mode == mIteration {
		if !containsAny(line, endIteration) {
			return
		}
		sc.mode = mStandard
	}

	if sc.skipLine(line) {
		return
	}

	// Geometry table: formatting is redundant with numeric data reported
	// elsewhere. Ends on the first blank line.
	if strings.Contains(line, hdrGeometry) {
		sc.mode = mGeometry
	} else if sc.mode == mGeometry {
		if len(words) > 0 {
			return
		}
		sc.mode = mStandard
	}

	// Localized orbitals table. The trailer line falls through to
	// standard tokenizing.
	if strings.Contains(line, hdrLocOrbs) {
		sc.mode = mLocOrbitals
	} else if sc.mode == mLocOrbitals {
		if !strings.Contains(line, endLocOrbs) {
			return
		}
		sc.mode = mStandard
	}

	// Gradient table: no trailer phrase, ends after a fixed count of
	// blank lines.
	if strings.Contains(line, hdrGradient) {
		sc.mode = mGradient
		sc.blanks = 0
	} else if sc.mode == mGradient {
		if len(words) == 0 {
			sc.blanks++
		}
		if sc.blanks < gradientBlanks {
			return
		}
		sc.mode = mStandard
	}

	// Vibration report, ends on either of two trailer phrases that fall
	// through to standard tokenizing.
	if strings.Contains(line, hdrVibration) {
		sc.mode = mVibration
	} else if sc.mode == mVibration {
		if !strings.Contains(line, endVibration1) && !strings.Contains(line, endVibration2) {
			return
		}
		sc.mode = mStandard
	}

	// Eigen rows. A row matching none of the eigen row shapes ends the
	// block and is re-processed as standard content below.
	if sc.mode == mEigen {
		if sc.eigen.row(words) {
			return
		}
		sc.mode = mStandard
		sc.flushEigen()
	}

	if sc.mode != mStandard {
		return
	}
	heatLine := strings.Contains(line, heatMarker)
	for i, word := range words {
		if f, ok := ParseFloat(word); ok {
			if heatLine && i == heatWord {
				sc.emit(heatElement(sc.lno, f))
			} else {
				sc.emit(numElement(sc.lno, f))
			}
		} else {
			sc.emit(textElement(sc.lno, word))
		}
	}
}

func (sc *Scanner) skipLine(line string) bool {
	if skipPattern.MatchString(line) {
		return true
	}
	for _, rgx := range sc.skip {
		if rgx.MatchString(line) {
			return true
		}
	}
	return false
}

func containsAny(line string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// ScanError reports an I/O failure while reading an output file.
type ScanError struct {
	Name string
	Line int
	err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.err)
}

func (e *ScanError) Unwrap() error { return e.err }
