package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/richat-staffing/internal/types"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

var generateCmd = &cobra.Command{
	Use:   "generate <tender-id>",
	Short: "Recompute and store the match results of a tender",
	Long: `Delete the stored results of the tender, flush the score cache and rank
every validated consultant with a complete availability window. A failed run
may leave partial results and should be rerun.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var resultsCmd = &cobra.Command{
	Use:   "results <tender-id>",
	Short: "Show the stored match results of a tender",
	Args:  cobra.ExactArgs(1),
	RunE:  runResults,
}

var (
	generateSeeds seeds
	generateOut   string
)

func init() {
	for _, c := range []*cobra.Command{generateCmd, resultsCmd} {
		c.Flags().StringVar(&generateSeeds.consultants, "consultants", "", "Consultants JSON file to load first")
		c.Flags().StringVar(&generateSeeds.tenders, "tenders", "", "Tenders JSON file to load first")
		c.Flags().StringVarP(&generateOut, "out", "o", "", "Output file (default: stdout)")
		rootCmd.AddCommand(c)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), generateSeeds, func(a *app) error {
		results, err := a.engine.Generate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return a.showResults(results)
	})
}

func runResults(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), generateSeeds, func(a *app) error {
		if _, err := a.store.GetTender(cmd.Context(), args[0]); err != nil {
			return err
		}
		stored, err := a.store.ListMatchResults(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return a.showResults(&types.MatchResults{TenderID: args[0], Results: stored})
	})
}

func (a *app) showResults(results *types.MatchResults) error {
	if a.printer != nil {
		a.printer.PrintMatchResults(results)
	}
	return a.emit(generateOut, schemafiles.MatchResults, results)
}
