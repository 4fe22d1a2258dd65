package main

import (
	"log"
	"os"

	"github.com/fractalqb/qcmp"
	"github.com/spf13/cobra"
)

func init() {
	runCmd.Run = runJob
	runCmd.Flags().StringVarP(&runCmd.fixtures, "fixtures", "d", "",
		"Set fixture directory with input, data and reference output")
	runCmd.MarkFlagRequired("fixtures")
	runCmd.Flags().StringVarP(&runCmd.exe, "exe", "x", "",
		"Set the program executable (recorded, not invoked)")
	rootCmd.AddCommand(&runCmd.Command)
}

var runCmd = struct {
	cobra.Command
	fixtures string
	exe      string
}{
	Command: cobra.Command{
		Use:   "run <input file> [data file...]",
		Short: "Stage a fixture's files and compare the produced output",
		Long: `run copies the input and data files of a fixture into the current
directory and compares the output file the program produced there
against the fixture's reference output. Invoking the program itself is
left to the caller.`,
		Args: cobra.MinimumNArgs(1),
	},
}

func runJob(cmd *cobra.Command, args []string) {
	job := qcmp.Job{
		Dir:   runCmd.fixtures,
		Exe:   runCmd.exe,
		Input: args[0],
		Data:  args[1:],
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	if err := job.Stage(wd); err != nil {
		log.Fatal(err)
	}
	cmpr := qcmp.Compare{Profile: profile()}
	warnings, err := job.Compare(&cmpr, wd)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%s: %d warnings", job.OutName(), warnings)
}
