package taxonomy

import (
	"testing"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuildsEveryDomain(t *testing.T) {
	tax := Default()
	require.NotNil(t, tax)
	for _, d := range types.AllDomains {
		assert.NotEmpty(t, tax.SkillsIn(d), "domain %s has no skills", d)
	}
	assert.Same(t, tax, Default())
}

func TestSkillsIn_PreservesCatalogOrder(t *testing.T) {
	skills := Default().SkillsIn(types.DomainDigital)
	require.GreaterOrEqual(t, len(skills), 3)
	assert.Equal(t, []string{"Python", "Django", "Flask"}, skills[:3])

	// callers must not be able to mutate the registry
	skills[0] = "Cobol"
	assert.Equal(t, "Python", Default().SkillsIn(types.DomainDigital)[0])
}

func TestCanonicalize_Aliases(t *testing.T) {
	tax := Default()
	tests := map[string]string{
		"js":                  "JavaScript",
		"JS":                  "JavaScript",
		"py":                  "Python",
		"ReactJS":             "React",
		"amazon web services": "AWS",
		"ml":                  "Machine Learning",
		"Node.js":             "Node.js",
		"nodejs":              "Node.js",
		"Python 3.10":         "Python",
		"k8s":                 "Kubernetes",
		"comptabilite":        "Comptabilité",
	}
	for in, want := range tests {
		s, ok := tax.Canonicalize(in)
		require.True(t, ok, "expected %q to resolve", in)
		assert.Equal(t, want, s.CanonicalName, "input %q", in)
	}

	_, ok := tax.Canonicalize("underwater basket weaving")
	assert.False(t, ok)
	_, ok = tax.Canonicalize("   ")
	assert.False(t, ok)
}

func TestDomainOf(t *testing.T) {
	tax := Default()

	d, ok := tax.DomainOf("django")
	require.True(t, ok)
	assert.Equal(t, types.DomainDigital, d)

	d, ok = tax.DomainOf("IFRS")
	require.True(t, ok)
	assert.Equal(t, types.DomainFinance, d)

	d, ok = tax.DomainOf("solar")
	require.True(t, ok)
	assert.Equal(t, types.DomainEnergy, d)

	d, ok = tax.DomainOf("AutoCAD")
	require.True(t, ok)
	assert.Equal(t, types.DomainIndustry, d)

	_, ok = tax.DomainOf("Quenya")
	assert.False(t, ok)
}

func TestSimilarity_Rules(t *testing.T) {
	tax := Default()
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "Python", "python", 1.0},
		{"alias", "js", "JavaScript", 0.95},
		{"alias react", "react", "reactjs", 0.95},
		{"related html", "html", "html5", 0.9},
		{"related react", "JavaScript", "React", 0.7},
		{"related angular", "javascript", "angular", 0.5},
		{"version stripped", "Terraform 1.5", "terraform 1", 0.95},
		{"substring", "spark", "spark streaming", 0.85 * 5.0 / 15.0},
		{"jaccard", "data engineering", "data warehouse", 0.7 / 3.0},
		{"levenshtein long", "kafka", "kafak", 0.7 * (1 - 2.0/5.0)},
		{"levenshtein short", "abc", "abd", 0.6 * (1 - 1.0/3.0)},
		{"levenshtein counts runes", "برمجة", "برمجه", 0.7 * (1 - 1.0/5.0)},
		{"unrelated", "cobol", "excel", 0},
		{"empty", "", "python", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tax.Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	tax := Default()
	pairs := [][2]string{
		{"html", "html5"},
		{"spark", "spark streaming"},
		{"kafka", "kafak"},
		{"Comptabilité", "Audit"},
	}
	for _, p := range pairs {
		assert.Equal(t, tax.Similarity(p[0], p[1]), tax.Similarity(p[1], p[0]), "%v", p)
	}
}

func TestLookup_FindsWholeWords(t *testing.T) {
	tax := Default()
	got := tax.Lookup("Développeur Python/Django, utilise Docker et PostgreSQL sur AWS.")
	assert.Equal(t, []string{"AWS", "Django", "Docker", "PostgreSQL", "Python"}, got)

	// "net" and two-letter acronyms are too ambiguous in prose
	assert.Empty(t, tax.Lookup("Il est net que ce projet ia bien marché"))
	assert.Empty(t, tax.Lookup(""))
}

func TestDominantDomain(t *testing.T) {
	tax := Default()

	d, share := tax.DominantDomain([]string{"Python", "Django", "Comptabilité"})
	assert.Equal(t, types.DomainDigital, d)
	assert.InDelta(t, 2.0/3.0, share, 1e-9)

	d, share = tax.DominantDomain([]string{"Audit", "Solaire photovoltaïque"})
	assert.Equal(t, types.DomainFinance, d, "ties resolve in domain order")
	assert.InDelta(t, 0.5, share, 1e-9)

	d, share = tax.DominantDomain([]string{"Quenya"})
	assert.Equal(t, types.DomainUndefined, d)
	assert.Zero(t, share)
}

func TestBuild_RejectsConflictingAliases(t *testing.T) {
	catalog := map[types.Domain][]entry{
		types.DomainDigital: {
			{"Go", []string{"golang"}},
			{"Rust", []string{"golang"}},
		},
	}
	_, err := build(catalog, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "golang")
}

func TestBuild_ToleratesDuplicateAliasForSameSkill(t *testing.T) {
	catalog := map[types.Domain][]entry{
		types.DomainDigital: {
			{"Go", []string{"golang", "GoLang"}},
		},
	}
	tax, err := build(catalog, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go", tax.CanonicalName("golang"))
}

func TestBuild_RejectsBadEdges(t *testing.T) {
	catalog := map[types.Domain][]entry{
		types.DomainDigital: {{"Go", nil}, {"Rust", nil}},
	}
	_, err := build(catalog, []edge{{"Go", "Rust", 0.95}})
	assert.Error(t, err)

	_, err = build(catalog, []edge{{"Go", "Zig", 0.6}})
	assert.Error(t, err)
}
