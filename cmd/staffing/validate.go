package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/richat-staffing/internal/schemas"
	schemafiles "github.com/jonathan/richat-staffing/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema> <file>",
	Short: "Validate a JSON document against a schema",
	Long: fmt.Sprintf("Validate a JSON file against one of the built-in schemas: %s.\nThe \".schema.json\" suffix may be omitted.",
		strings.Join(schemafiles.All, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !strings.HasSuffix(name, ".schema.json") {
		name += ".schema.json"
	}
	if err := schemas.ValidateFile(name, args[1]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is valid against %s\n", args[1], name)
	return err
}
