package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/richat-staffing/internal/ingestion"
	"github.com/jonathan/richat-staffing/internal/pipeline"
)

var standardizeCVCmd = &cobra.Command{
	Use:   "standardize-cv <file>...",
	Short: "Render CVs in the Richat canonical format",
	Long: `Extract each CV, render it as a canonical Richat PDF stored under
<storage_root>/standardized_cvs/ and persist the extracted profile.

The consultant ID defaults to the file name without its extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStandardizeCV,
}

var (
	standardizeConsultantID string
	standardizeConcurrency  int
	standardizeOut          string
)

func init() {
	standardizeCVCmd.Flags().StringVar(&standardizeConsultantID, "consultant-id", "", "Consultant ID (single file only)")
	standardizeCVCmd.Flags().IntVarP(&standardizeConcurrency, "concurrency", "j", 4, "Number of CVs processed in parallel")
	standardizeCVCmd.Flags().StringVarP(&standardizeOut, "out", "o", "", "Output file for the JSON report (default: stdout)")
	rootCmd.AddCommand(standardizeCVCmd)
}

// standardizeReport is one line of the standardize-cv output
type standardizeReport struct {
	File   string                  `json:"file"`
	Result *pipeline.ProcessResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func runStandardizeCV(cmd *cobra.Command, args []string) error {
	if standardizeConsultantID != "" && len(args) > 1 {
		return fmt.Errorf("--consultant-id can only be used with a single file")
	}
	return withApp(cmd.Context(), cmd.OutOrStdout(), seeds{}, func(a *app) error {
		reports, err := standardize(cmd.Context(), a, args, standardizeConsultantID, standardizeConcurrency)
		if err != nil {
			return err
		}
		failed := 0
		for _, r := range reports {
			if r.Error != "" {
				failed++
			}
		}
		if err := a.emit(standardizeOut, "", reports); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d CVs could not be standardized", failed, len(reports))
		}
		return nil
	})
}

func standardize(ctx context.Context, a *app, files []string, consultantID string, concurrency int) ([]standardizeReport, error) {
	svc := pipeline.NewService(pipeline.Options{
		Files:    a.files,
		Profiles: a.store,
		Logger:   a.logger,
		OnProgress: func(ev pipeline.ProgressEvent) {
			if a.printer != nil {
				a.printer.PrintStep(ev.Step, ev.ConsultantID+": "+ev.Message)
			}
		},
	})

	items := make([]pipeline.BatchItem, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read CV: %w", err)
		}
		id := consultantID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		items = append(items, pipeline.BatchItem{
			Upload:       ingestion.Upload{Filename: filepath.Base(path), Data: data},
			ConsultantID: id,
		})
	}

	results, err := svc.ProcessBatch(ctx, items, concurrency)
	if err != nil {
		return nil, err
	}

	reports := make([]standardizeReport, len(results))
	for i, r := range results {
		reports[i] = standardizeReport{File: files[i], Result: r.Result}
		if r.Err != nil {
			reports[i].Error = r.Err.Error()
			a.logger.Warn("CV standardization failed", zap.String("file", files[i]), zap.Error(r.Err))
			continue
		}
		if a.printer != nil {
			a.printer.PrintProfile(r.Result.Profile)
		}
	}
	return reports, nil
}

var latestCVCmd = &cobra.Command{
	Use:   "latest-cv <consultant-id>",
	Short: "Print or copy the most recent standardized CV of a consultant",
	Args:  cobra.ExactArgs(1),
	RunE:  runLatestCV,
}

var latestCVCopy string

func init() {
	latestCVCmd.Flags().StringVar(&latestCVCopy, "copy-to", "", "Copy the PDF to this path")
	rootCmd.AddCommand(latestCVCmd)
}

func runLatestCV(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), seeds{}, func(a *app) error {
		path, err := latestCV(a, args[0], latestCVCopy)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, path) //nolint:errcheck
		return nil
	})
}

// latestCV resolves the newest standardized CV of a consultant and optionally
// copies it out of the store
func latestCV(a *app, consultantID, copyTo string) (string, error) {
	path, err := a.files.Latest(consultantID)
	if err != nil {
		return "", err
	}
	if copyTo == "" {
		return path, nil
	}
	data, err := a.files.Open(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(copyTo, data, 0644); err != nil {
		return "", fmt.Errorf("failed to copy CV: %w", err)
	}
	return path, nil
}
