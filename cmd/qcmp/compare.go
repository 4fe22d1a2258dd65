package main

import (
	"log"

	"github.com/fractalqb/qcmp"
	"github.com/spf13/cobra"
)

func init() {
	compareCmd.Run = compareFiles
	compareCmd.Flags().StringVarP(&compareCmd.reffile, "reference", "r", "",
		"Set reference output file name")
	compareCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(&compareCmd.Command)
}

var compareCmd = struct {
	cobra.Command
	reffile string
}{
	Command: cobra.Command{
		Use:   "compare <output file>...",
		Short: "Compare candidate output files to a reference output",
		Args:  cobra.MinimumNArgs(1),
	},
}

func compareFiles(cmd *cobra.Command, files []string) {
	prof := profile()
	for _, f := range files {
		cmpr := qcmp.Compare{Profile: prof}
		warnings, err := cmpr.Files(compareCmd.reffile, f)
		if err != nil {
			log.Fatalf("%s: %s", f, err)
		}
		log.Printf("%s: %d warnings", f, warnings)
	}
}
