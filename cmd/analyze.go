package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/menu"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/utils"
)

var (
	anaOutputPath string
	anaFormat     string
	anaSampleRows int
	anaDelimiter  string
	anaSheetName  string
	anaSheetIndex int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Summarize a CSV/XLSX production file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := dataset.Options{SheetName: anaSheetName, SheetIndex: anaSheetIndex}
		switch anaDelimiter {
		case "":
		case ",":
			opt.Delimiter = ','
		case "\t", "tab":
			opt.Delimiter = '\t'
		case ";":
			opt.Delimiter = ';'
		default:
			return fmt.Errorf("unsupported --delimiter: %s", anaDelimiter)
		}
		t, err := dataset.LoadFile(args[0], opt)
		if err != nil {
			return err
		}
		rep := analysis.Summarize(t, anaSampleRows)

		var out bytes.Buffer
		switch strings.ToLower(anaFormat) {
		case "table":
			menu.RenderReport(&out, rep)
		case "markdown", "md":
			out.WriteString(rep.Markdown())
		case "csv":
			w := csv.NewWriter(&out)
			if err := w.WriteAll(rep.Records()); err != nil {
				return fmt.Errorf("encode csv: %w", err)
			}
		case "json":
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
			out.Write(b)
			out.WriteByte('\n')
		default:
			return fmt.Errorf("unsupported --format: %s (use table, markdown, csv or json)", anaFormat)
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the summary")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "table", "output format: table | markdown | csv | json")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows in markdown output")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
