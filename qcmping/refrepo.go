// Package qcmping supports the use of qcmp in your Go tests. Reference
// output files live in the package's testdata directory and are
// addressed by test name:
//
//	func TestWater(t *testing.T) {
//		out := runChemistry(t) // io.Reader with the program's output
//		qcmping.Fatal(t, "", out)
//	}
//
// reads the reference from testdata/TestWater.out. Numeric drift within
// the tolerances is logged; structural mismatches fail the test.
package qcmping

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fractalqb/qcmp"
)

// When this environment variable is set to a regexp and the name of the
// current test matches, calls to Error or Fatal will record the subject
// as new reference data instead of comparing it. E.g.
//
//	QCMPING_RECORD=TestWater go test .
const RecordEnv = "QCMPING_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see
// go help test).
const GoTestdataDir = "testdata"

func Error(t *testing.T, hint string, subj io.Reader) error {
	return defaultConfig.Error(t, hint, subj)
}

func Fatal(t *testing.T, hint string, subj io.Reader) {
	defaultConfig.Fatal(t, hint, subj)
}

func Record(t *testing.T, hint string, subj io.Reader) {
	defaultConfig.Record(t, hint, subj)
}

// RefRepo maps test names to reference output files.
type RefRepo struct {
	Dir    string
	Suffix string
}

const (
	StdSuffix = ".out"
	NoSuffix  = "\x00"
)

func (rr RefRepo) Filename(t *testing.T, hint string) string {
	suffix := rr.Suffix
	switch suffix {
	case "":
		suffix = StdSuffix
	case NoSuffix:
		suffix = ""
	}
	if hint == "" {
		return filepath.Join(rr.Dir, t.Name()+suffix)
	}
	if suffix == "" || strings.HasSuffix(hint, suffix) {
		return filepath.Join(rr.Dir, t.Name(), hint)
	}
	return filepath.Join(rr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	RefFileName func(t *testing.T, hint string) string
	// Profile sets the comparison tolerances; the zero value applies the
	// defaults.
	Profile qcmp.Profile
	// WarningLimit many warnings fail the test. 0 means warnings are
	// only logged.
	WarningLimit    int
	RecordOverwrite bool
}

var defaultConfig = Config{
	RefFileName: RefRepo{Dir: GoTestdataDir}.Filename,
}

func (cfg Config) Error(t *testing.T, hint string, subj io.Reader) error {
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return nil
	}
	err := cfg.compare(t, hint, subj)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, subj io.Reader) {
	if recordTest(t) {
		cfg.Record(t, hint, subj)
	} else if err := cfg.compare(t, hint, subj); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("qcmping: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg Config) compare(t *testing.T, hint string, subj io.Reader) error {
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); os.IsNotExist(err) {
		t.Logf("to record a reference file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return fmt.Errorf("reference output file %s does not exist", reffile)
	}
	ref, err := qcmp.ScanFile(reffile)
	if err != nil {
		return err
	}
	defer ref.Close()
	if hint == "" {
		hint = "subject"
	}
	cmpr := qcmp.Compare{
		Profile: cfg.Profile,
		OnWarning: func(w qcmp.Warning) {
			t.Logf("%s: %s", hint, w)
		},
	}
	warnings, err := cmpr.Streams(ref, qcmp.NewScanner(hint, subj))
	if err != nil {
		return err
	}
	if cfg.WarningLimit > 0 && warnings >= cfg.WarningLimit {
		return fmt.Errorf("%s: %d warnings reach limit %d", hint, warnings, cfg.WarningLimit)
	}
	return nil
}

// Record writes the subject verbatim as new reference data. It fails
// the test so that recording runs cannot silently pass as green.
func (cfg Config) Record(t *testing.T, hint string, subj io.Reader) {
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("record: reference file '%s' already exists", reffile)
	}
	dir := filepath.Dir(reffile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	wr, err := os.Create(reffile)
	if err != nil {
		t.Fatal(err)
	}
	defer wr.Close()
	if _, err = io.Copy(wr, subj); err != nil {
		t.Error(err)
	}
	t.Errorf("qcmp test-recorder wrote: %s", reffile)
}
