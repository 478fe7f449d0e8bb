package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var toggleValidationCmd = &cobra.Command{
	Use:   "toggle-validation <result-id>",
	Short: "Flip the validated flag of a match result",
	Long: `Flip the validated flag of a stored match result. Validating a result
notifies the consultant by email when SMTP is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggleValidation,
}

var toggleSet string

func init() {
	toggleValidationCmd.Flags().StringVar(&toggleSet, "set", "", "Set the flag to true or false instead of flipping it")
	rootCmd.AddCommand(toggleValidationCmd)
}

func runToggleValidation(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid result id %q: %w", args[0], err)
	}
	return withApp(cmd.Context(), cmd.OutOrStdout(), seeds{}, func(a *app) error {
		var validated bool
		switch toggleSet {
		case "":
			validated, err = a.engine.ToggleValidation(cmd.Context(), id)
		case "true", "false":
			validated, err = a.engine.SetValidated(cmd.Context(), id, toggleSet == "true")
		default:
			return fmt.Errorf("--set must be true or false")
		}
		if err != nil {
			return err
		}
		return a.emit("", "", map[string]any{"id": id, "is_validated": validated})
	})
}
