package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/richat-staffing/internal/worker"
)

var enrichSkillsCmd = &cobra.Command{
	Use:   "enrich-skills <consultant-id> <cv-file>",
	Short: "Add the skills found in a CV to a consultant",
	Long: `Extract the skills of a CV and add the ones the consultant does not have yet
at the default skill level. Existing levels are kept and cached scores of the
consultant are invalidated.`,
	Args: cobra.ExactArgs(2),
	RunE: runEnrichSkills,
}

var setSkillsCmd = &cobra.Command{
	Use:   "set-skills <consultant-id> <skill=level>...",
	Short: "Replace the skill levels of a consultant",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSetSkills,
}

var setCriteriaCmd = &cobra.Command{
	Use:   "set-criteria <tender-id> <skill=weight>...",
	Short: "Replace the weighted criteria of a tender",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSetCriteria,
}

var (
	skillSeeds       seeds
	enrichBackground bool
)

func init() {
	for _, c := range []*cobra.Command{enrichSkillsCmd, setSkillsCmd, setCriteriaCmd} {
		c.Flags().StringVar(&skillSeeds.consultants, "consultants", "", "Consultants JSON file to load first")
		c.Flags().StringVar(&skillSeeds.tenders, "tenders", "", "Tenders JSON file to load first")
		rootCmd.AddCommand(c)
	}
	enrichSkillsCmd.Flags().BoolVar(&enrichBackground, "queue", false, "Run through the background queue, as after a registration")
}

func runEnrichSkills(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), skillSeeds, func(a *app) error {
		q := worker.NewQueue(a.store, worker.Options{
			Size:         a.cfg.QueueSize,
			DefaultLevel: a.cfg.DefaultSkillLevel,
			Cache:        a.cache,
			Logger:       a.logger,
		})
		job := worker.Job{ConsultantID: args[0], CVPath: args[1]}

		if enrichBackground {
			if err := q.Start(cmd.Context()); err != nil {
				return err
			}
			if err := q.Enqueue(job); err != nil {
				_ = q.Stop()
				return err
			}
			if err := q.Stop(); err != nil {
				return err
			}
		} else if _, err := q.Process(cmd.Context(), job); err != nil {
			return err
		}

		c, err := a.store.GetConsultant(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if a.printer != nil {
			a.printer.PrintConsultant(c)
		}
		return a.emit("", "", c)
	})
}

func runSetSkills(cmd *cobra.Command, args []string) error {
	levels, err := parseAssignments(args[1:], func(s string) (int, error) { return strconv.Atoi(s) })
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), cmd.OutOrStdout(), skillSeeds, func(a *app) error {
		c, err := a.engine.UpdateConsultantSkills(cmd.Context(), args[0], levels)
		if err != nil {
			return err
		}
		if a.printer != nil {
			a.printer.PrintConsultant(c)
		}
		return a.emit("", "", c)
	})
}

func runSetCriteria(cmd *cobra.Command, args []string) error {
	criteria, err := parseAssignments(args[1:], func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), cmd.OutOrStdout(), skillSeeds, func(a *app) error {
		t, err := a.engine.UpdateTenderCriteria(cmd.Context(), args[0], criteria)
		if err != nil {
			return err
		}
		return a.emit("", "", t)
	})
}

// parseAssignments parses "name=value" arguments. A name given twice is an error.
func parseAssignments[T any](args []string, parse func(string) (T, error)) (map[string]T, error) {
	out := make(map[string]T, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 || i == len(arg)-1 {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		name := strings.TrimSpace(arg[:i])
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("%q is given more than once", name)
		}
		v, err := parse(strings.TrimSpace(arg[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", arg, err)
		}
		out[name] = v
	}
	return out, nil
}
