// Package taxonomy provides the read-only skill registry shared by CV extraction
// and tender matching: canonical skill names partitioned by domain, an alias
// table for acronyms and spelling variants, and a graded similarity measure.
package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

// Skill is a canonical skill entry
type Skill struct {
	CanonicalName string       `json:"canonical_name"`
	Aliases       []string     `json:"aliases"`
	Domain        types.Domain `json:"domain"`
}

// Taxonomy is an immutable skill registry. It is safe for concurrent use.
type Taxonomy struct {
	byDomain map[types.Domain][]string
	skills   map[string]*Skill // normalized canonical name -> skill
	aliases  map[string]string // normalized alias -> normalized canonical name
	related  map[string]float64
	terms    []lookupTerm
}

// lookupTerm is a normalized phrase searched for in free text
type lookupTerm struct {
	phrase    string
	canonical string
}

// ambiguousTerms are normalized phrases too common in ordinary prose to be
// taken as skill mentions during free-text lookup.
var ambiguousTerms = map[string]bool{
	"net":  true,
	"node": true,
	"tax":  true,
	"lean": true,
	"vue":  true,
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the taxonomy built from the built-in catalog
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := build(defaultCatalog, defaultEdges)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in skill catalog: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

func build(catalog map[types.Domain][]entry, edges []edge) (*Taxonomy, error) {
	t := &Taxonomy{
		byDomain: make(map[types.Domain][]string),
		skills:   make(map[string]*Skill),
		aliases:  make(map[string]string),
		related:  make(map[string]float64),
	}

	for _, domain := range types.AllDomains {
		for _, e := range catalog[domain] {
			key := nlp.NormalizeTerm(e.name)
			if key == "" {
				return nil, fmt.Errorf("empty canonical name in domain %s", domain)
			}
			if _, exists := t.skills[key]; exists {
				return nil, fmt.Errorf("duplicate canonical skill %q", e.name)
			}
			skill := &Skill{CanonicalName: e.name, Domain: domain}
			for _, a := range e.aliases {
				skill.Aliases = append(skill.Aliases, strings.ToLower(a))
			}
			t.skills[key] = skill
			t.byDomain[domain] = append(t.byDomain[domain], e.name)
		}
	}

	// Aliases are registered after every canonical name so that an alias can
	// never shadow a canonical entry.
	for key, skill := range t.skills {
		for _, a := range skill.Aliases {
			aliasKey := nlp.NormalizeTerm(a)
			if aliasKey == "" || aliasKey == key {
				continue
			}
			if _, clash := t.skills[aliasKey]; clash {
				return nil, fmt.Errorf("alias %q of %q collides with a canonical skill", a, skill.CanonicalName)
			}
			if existing, clash := t.aliases[aliasKey]; clash && existing != key {
				return nil, fmt.Errorf("alias %q maps to both %q and %q", a, t.skills[existing].CanonicalName, skill.CanonicalName)
			}
			t.aliases[aliasKey] = key
		}
	}

	for _, e := range edges {
		ka, kb := nlp.NormalizeTerm(e.a), nlp.NormalizeTerm(e.b)
		if t.skills[ka] == nil || t.skills[kb] == nil {
			return nil, fmt.Errorf("related edge %q - %q references an unknown skill", e.a, e.b)
		}
		if e.weight < 0.5 || e.weight > 0.9 {
			return nil, fmt.Errorf("related edge %q - %q has weight %.2f outside [0.5, 0.9]", e.a, e.b, e.weight)
		}
		t.related[pairKey(ka, kb)] = e.weight
	}

	for key := range t.skills {
		t.terms = append(t.terms, lookupTerm{phrase: key, canonical: key})
	}
	for alias, key := range t.aliases {
		t.terms = append(t.terms, lookupTerm{phrase: alias, canonical: key})
	}
	// Longest phrases first keeps lookups deterministic
	sort.Slice(t.terms, func(i, j int) bool {
		if len(t.terms[i].phrase) != len(t.terms[j].phrase) {
			return len(t.terms[i].phrase) > len(t.terms[j].phrase)
		}
		return t.terms[i].phrase < t.terms[j].phrase
	})

	return t, nil
}

var reTrailingVersion = regexp.MustCompile(`(\s+\d+)+$`)

// stripVersion removes a trailing version suffix from a normalized term
// ("python 3 10" -> "python")
func stripVersion(normalized string) string {
	return strings.TrimSpace(reTrailingVersion.ReplaceAllString(normalized, ""))
}

// Canonicalize resolves a free-form term to its canonical skill
func (t *Taxonomy) Canonicalize(term string) (*Skill, bool) {
	key := nlp.NormalizeTerm(term)
	if key == "" {
		return nil, false
	}
	if s, ok := t.resolve(key); ok {
		return s, true
	}
	if stripped := stripVersion(key); stripped != key && stripped != "" {
		return t.resolve(stripped)
	}
	return nil, false
}

func (t *Taxonomy) resolve(key string) (*Skill, bool) {
	if s, ok := t.skills[key]; ok {
		return s, true
	}
	if canonical, ok := t.aliases[key]; ok {
		return t.skills[canonical], true
	}
	return nil, false
}

// CanonicalName returns the canonical name for term, or "" if unknown
func (t *Taxonomy) CanonicalName(term string) string {
	if s, ok := t.Canonicalize(term); ok {
		return s.CanonicalName
	}
	return ""
}

// SkillsIn returns the ordered canonical skills of a domain
func (t *Taxonomy) SkillsIn(domain types.Domain) []string {
	names := t.byDomain[domain]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// DomainOf returns the domain tag of a skill
func (t *Taxonomy) DomainOf(skill string) (types.Domain, bool) {
	s, ok := t.Canonicalize(skill)
	if !ok {
		return types.DomainUndefined, false
	}
	return s.Domain, true
}

// Lookup returns the canonical skills mentioned as whole words in text,
// sorted alphabetically.
func (t *Taxonomy) Lookup(text string) []string {
	normalized := nlp.NormalizeTerm(text)
	if normalized == "" {
		return []string{}
	}
	found := make(map[string]bool)
	for _, term := range t.terms {
		if len(term.phrase) <= 2 || ambiguousTerms[term.phrase] || found[term.canonical] {
			continue
		}
		if nlp.ContainsPhrase(normalized, term.phrase) {
			found[term.canonical] = true
		}
	}
	out := make([]string, 0, len(found))
	for key := range found {
		out = append(out, t.skills[key].CanonicalName)
	}
	sort.Strings(out)
	return out
}

// DominantDomain returns the domain holding most of the given skills and the
// share of skills it holds. Ties resolve in types.AllDomains order.
func (t *Taxonomy) DominantDomain(skills []string) (types.Domain, float64) {
	counts := make(map[types.Domain]int)
	total := 0
	for _, s := range skills {
		if d, ok := t.DomainOf(s); ok {
			counts[d]++
			total++
		}
	}
	if total == 0 {
		return types.DomainUndefined, 0
	}
	best := types.DomainUndefined
	for _, d := range types.AllDomains {
		if best == types.DomainUndefined || counts[d] > counts[best] {
			best = d
		}
	}
	return best, float64(counts[best]) / float64(total)
}

// Size returns the number of canonical skills
func (t *Taxonomy) Size() int {
	return len(t.skills)
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}
