package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/richat-staffing/internal/types"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank consultants against a tender",
	Long: `Score every consultant of --consultants against the tender of --tender and
print the ranked results. Nothing is persisted; use generate to store results.`,
	RunE: runMatch,
}

var (
	matchTenderFile      string
	matchConsultantsFile string
	matchOut             string
	matchAll             bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchTenderFile, "tender", "t", "", "Tender JSON file (required)")
	matchCmd.Flags().StringVarP(&matchConsultantsFile, "consultants", "c", "", "Consultants JSON file (required)")
	matchCmd.Flags().StringVarP(&matchOut, "out", "o", "", "Output file (default: stdout)")
	matchCmd.Flags().BoolVar(&matchAll, "all", false, "Include unvalidated consultants and incomplete availability")

	_ = matchCmd.MarkFlagRequired("tender")
	_ = matchCmd.MarkFlagRequired("consultants")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), seeds{}, func(a *app) error {
		results, err := match(cmd.Context(), a, matchTenderFile, matchConsultantsFile, matchAll)
		if err != nil {
			return err
		}
		if a.printer != nil {
			a.printer.PrintMatchResults(results)
		}
		return a.emit(matchOut, schemafiles.MatchResults, results)
	})
}

func match(ctx context.Context, a *app, tenderFile, consultantsFile string, all bool) (*types.MatchResults, error) {
	var tenders []types.Tender
	if err := readJSON(tenderFile, schemafiles.Tender, &tenders); err != nil {
		return nil, err
	}
	if len(tenders) != 1 {
		return nil, fmt.Errorf("%s must hold exactly one tender, found %d", tenderFile, len(tenders))
	}
	tender := &tenders[0]
	if err := tender.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tender: %w", err)
	}

	var consultants []types.Consultant
	if err := readJSON(consultantsFile, schemafiles.Consultant, &consultants); err != nil {
		return nil, err
	}
	eligible := make([]types.Consultant, 0, len(consultants))
	for _, c := range consultants {
		c.SetSkillLevels(c.SkillLevels)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid consultant %q: %w", c.ID, err)
		}
		if all || (c.Validated && c.Availability.Complete()) {
			eligible = append(eligible, c)
		}
	}

	return &types.MatchResults{
		TenderID: tender.ID,
		Results:  a.engine.Match(ctx, tender, eligible),
	}, nil
}
