// A command line tool to check quantum-chemistry output files for
// numerical regressions against reference outputs.
package main

import (
	"log"

	"github.com/fractalqb/qcmp"
	"github.com/spf13/cobra"
)

var rootCmd = struct {
	cobra.Command
	profile string
}{
	Command: cobra.Command{
		Use:   "qcmp",
		Short: "Check chemistry output files for numerical regressions",
		Long: `qcmp compares the plain-text output of a quantum-chemistry program
against a reference output from an earlier program version. Timing,
version and iteration output is ignored, numbers may drift within a
tolerance, and eigenvectors are compared up to rotation within
degenerate subspaces. Structural differences are fatal.`,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmd.profile, "profile", "p", "",
		"Load tolerances and extra skip patterns from a YAML file")
}

func profile() qcmp.Profile {
	if rootCmd.profile == "" {
		return qcmp.Profile{}
	}
	p, err := qcmp.LoadProfile(rootCmd.profile)
	if err != nil {
		log.Fatal(err)
	}
	return p
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
