package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/richat-staffing/internal/extraction"
	"github.com/jonathan/richat-staffing/internal/ingestion"
	"github.com/jonathan/richat-staffing/internal/types"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

var extractCVCmd = &cobra.Command{
	Use:   "extract-cv <file>",
	Short: "Extract a structured profile from a CV",
	Long:  "Read a PDF, DOCX, DOC or TXT CV and output the extracted profile as JSON, with quality and format compliance scores.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractCV,
}

var (
	extractOut  string
	extractMeta string
)

func init() {
	extractCVCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file (default: stdout)")
	extractCVCmd.Flags().StringVar(&extractMeta, "meta", "", "Also write acquisition metadata (method, hash, pages) to this file")
	rootCmd.AddCommand(extractCVCmd)
}

func runExtractCV(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), seeds{}, func(a *app) error {
		p, meta, err := extractCV(args[0])
		if err != nil {
			return err
		}
		if extractMeta != "" {
			data, err := meta.ToJSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(extractMeta, data, 0644); err != nil {
				return fmt.Errorf("failed to write metadata: %w", err)
			}
		}
		if a.printer != nil {
			a.printer.PrintProfile(p)
			a.printer.PrintWarnings(p.Errors)
		}
		return a.emit(extractOut, schemafiles.Profile, p)
	})
}

// extractCV acquires the text of a CV file and extracts its profile
func extractCV(path string) (*types.Profile, *ingestion.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CV: %w", err)
	}
	upload := ingestion.Upload{Filename: filepath.Base(path), Data: data}
	res, err := ingestion.Acquire(upload)
	if err != nil {
		return nil, nil, err
	}
	p := extraction.New(nil).Extract(res.Text)
	if !p.Success {
		return nil, nil, types.NewError(types.CodeDecodeFailed, "no text to extract", nil)
	}
	return p, ingestion.NewMetadata(upload, res, time.Now()), nil
}
