package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/diff"
	"github.com/nullbyte-labs/httpforge/pkg/response"
)

var diffFlags struct {
	fileA string
	fileB string
	mode  string
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff two captured raw HTTP responses",
	Example: "httpforge diff --a resp-baseline.bin --b resp-variant.bin --mode header",
	RunE: func(cmd *cobra.Command, args []string) error {
		rawA, err := os.ReadFile(diffFlags.fileA)
		if err != nil {
			return fmt.Errorf("read %s: %w", diffFlags.fileA, err)
		}
		rawB, err := os.ReadFile(diffFlags.fileB)
		if err != nil {
			return fmt.Errorf("read %s: %w", diffFlags.fileB, err)
		}

		respA := response.Parse(rawA)
		respB := response.Parse(rawB)

		switch diffFlags.mode {
		case "header":
			fields := diff.HeaderDiff(respA.Headers, respB.Headers)
			for _, f := range fields {
				fmt.Printf("%-8s %-30s old=%q new=%q\n", f.Status, f.Name, f.Old, f.New)
			}
			s := diff.Summarize(fields)
			fmt.Printf("total=%d unchanged=%d added=%d removed=%d changed=%d\n",
				s.TotalFields, s.Unchanged, s.Added, s.Removed, s.Changed)
		case "raw":
			for _, l := range diff.RawLineDiff(rawA, rawB) {
				fmt.Println(l.Text)
			}
		case "char":
			for _, c := range diff.CharLevelDiff(respA.RawString(), respB.RawString()) {
				fmt.Printf("pos=%d old=%q new=%q\n", c.Position, c.Old, c.New)
			}
		case "identity":
			fmt.Println(diff.IsIdentical(rawA, rawB))
		default:
			return fmt.Errorf("unknown --mode %q (want header|raw|char|identity)", diffFlags.mode)
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffFlags.fileA, "a", "", "first captured response file")
	diffCmd.Flags().StringVar(&diffFlags.fileB, "b", "", "second captured response file")
	diffCmd.Flags().StringVar(&diffFlags.mode, "mode", "header", "header|raw|char|identity")
	_ = diffCmd.MarkFlagRequired("a")
	_ = diffCmd.MarkFlagRequired("b")
	rootCmd.AddCommand(diffCmd)
}
