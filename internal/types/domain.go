// Package types provides type definitions for structured data used throughout the staffing system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Domain is a business domain tag from the closed taxonomy set
type Domain string

const (
	DomainDigital   Domain = "DIGITAL"
	DomainFinance   Domain = "FINANCE"
	DomainEnergy    Domain = "ENERGIE"
	DomainIndustry  Domain = "INDUSTRIE"
	DomainUndefined Domain = ""
)

// AllDomains lists the domain tags in their canonical order.
// The order is used as the tie-break when inferring a domain.
var AllDomains = []Domain{DomainDigital, DomainFinance, DomainEnergy, DomainIndustry}

// ParseDomain maps a free-form tag (including the English spellings) to a Domain
func ParseDomain(s string) (Domain, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DIGITAL", "NUMERIQUE", "NUMÉRIQUE":
		return DomainDigital, true
	case "FINANCE":
		return DomainFinance, true
	case "ENERGIE", "ÉNERGIE", "ENERGY":
		return DomainEnergy, true
	case "INDUSTRIE", "INDUSTRY":
		return DomainIndustry, true
	default:
		return DomainUndefined, false
	}
}

// ExpertiseTier classifies a consultant by breadth of skills
type ExpertiseTier string

const (
	TierBeginner     ExpertiseTier = "Beginner"
	TierIntermediate ExpertiseTier = "Intermediate"
	TierExpert       ExpertiseTier = "Expert"
)

// TierForSkillCount derives the expertise tier from the number of skills:
// 10 or more is Expert, 5 or more is Intermediate, anything else Beginner.
func TierForSkillCount(n int) ExpertiseTier {
	switch {
	case n >= 10:
		return TierExpert
	case n >= 5:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// LanguageLevel is the normalized proficiency vocabulary used in profiles
type LanguageLevel string

const (
	LevelNative       LanguageLevel = "Native speaker"
	LevelFluent       LanguageLevel = "Fluent"
	LevelGood         LanguageLevel = "Good"
	LevelFair         LanguageLevel = "Fair"
	LevelIntermediate LanguageLevel = "Intermediate"
)

// Format identifies the CV layout family detected in an uploaded document
type Format string

const (
	FormatRichatStandard     Format = "richat_standard"
	FormatProfessionalModern Format = "professional_modern"
	FormatAcademic           Format = "academic"
	FormatTraditional        Format = "traditional"
	FormatGeneric            Format = "generic"
)
