package qcmp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Job describes one regression run against a fixture directory. The
// directory holds the input file, its auxiliary data files and the
// reference output recorded by an earlier program version. The target
// program itself is an external collaborator; Exe is carried for
// interface completeness but never invoked here.
type Job struct {
	Dir   string   // fixture directory
	Exe   string   // program executable, recorded only
	Input string   // input file name, e.g. "benzene.mop"
	Data  []string // auxiliary files staged next to the input
}

// Stage copies the job's input and data files from the fixture
// directory into dir, where the target program is expected to run.
func (j Job) Stage(dir string) error {
	files := append([]string{j.Input}, j.Data...)
	for _, f := range files {
		if err := copyFile(filepath.Join(j.Dir, f), filepath.Join(dir, f)); err != nil {
			return fmt.Errorf("stage %s: %w", f, err)
		}
	}
	return nil
}

// OutName derives the output file name from the input stem. Both the
// reference in the fixture directory and the freshly produced candidate
// use this name.
func (j Job) OutName() string {
	return strings.TrimSuffix(j.Input, filepath.Ext(j.Input)) + ".out"
}

// Compare checks the candidate output in dir against the fixture's
// reference output.
func (j Job) Compare(cmpr *Compare, dir string) (int, error) {
	return cmpr.Files(
		filepath.Join(j.Dir, j.OutName()),
		filepath.Join(dir, j.OutName()),
	)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
