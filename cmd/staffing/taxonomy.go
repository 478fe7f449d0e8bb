package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/richat-staffing/internal/taxonomy"
	"github.com/jonathan/richat-staffing/internal/types"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy [term]...",
	Short: "List canonical skills or resolve terms",
	Long: `Without arguments, list the canonical skills of every domain (or of --domain).
With arguments, resolve each term to its canonical skill and domain.`,
	RunE: runTaxonomy,
}

var taxonomyDomain string

func init() {
	taxonomyCmd.Flags().StringVarP(&taxonomyDomain, "domain", "d", "", "Only list this domain (DIGITAL, FINANCE, ENERGIE, INDUSTRIE)")
	rootCmd.AddCommand(taxonomyCmd)
}

// resolvedTerm is one line of the taxonomy resolution output
type resolvedTerm struct {
	Term      string       `json:"term"`
	Canonical string       `json:"canonical_name,omitempty"`
	Domain    types.Domain `json:"domain,omitempty"`
	Known     bool         `json:"known"`
}

// taxonomyListing is the taxonomy listing output
type taxonomyListing struct {
	Version string                    `json:"version"`
	Size    int                       `json:"size"`
	Domains map[types.Domain][]string `json:"domains"`
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), cmd.OutOrStdout(), seeds{}, func(a *app) error {
		out, err := describeTaxonomy(taxonomy.Default(), taxonomyDomain, args)
		if err != nil {
			return err
		}
		return a.emit("", "", out)
	})
}

func describeTaxonomy(tax *taxonomy.Taxonomy, domain string, terms []string) (any, error) {
	if len(terms) > 0 {
		out := make([]resolvedTerm, 0, len(terms))
		for _, term := range terms {
			r := resolvedTerm{Term: term}
			if s, ok := tax.Canonicalize(term); ok {
				r.Canonical, r.Domain, r.Known = s.CanonicalName, s.Domain, true
			}
			out = append(out, r)
		}
		return out, nil
	}

	domains := types.AllDomains
	if domain != "" {
		d, ok := types.ParseDomain(domain)
		if !ok {
			return nil, fmt.Errorf("unknown domain %q", domain)
		}
		domains = []types.Domain{d}
	}
	listing := taxonomyListing{Version: taxonomy.Version, Size: tax.Size(), Domains: map[types.Domain][]string{}}
	for _, d := range domains {
		listing.Domains[d] = tax.SkillsIn(d)
	}
	return listing, nil
}
