package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/richat-staffing/internal/nlp"
	"github.com/jonathan/richat-staffing/internal/types"
)

type projectField int

const (
	projName projectField = iota + 1
	projDate
	projCompany
	projRole
	projLocation
	projClient
	projDescription
	projActivities
)

// projectLabels maps normalized block labels to project fields
var projectLabels = map[string]projectField{
	"nom du projet":          projName,
	"projet":                 projName,
	"project name":           projName,
	"project":                projName,
	"date":                   projDate,
	"dates":                  projDate,
	"periode":                projDate,
	"societe":                projCompany,
	"entreprise":             projCompany,
	"company":                projCompany,
	"poste occupe":           projRole,
	"poste":                  projRole,
	"position held":          projRole,
	"position":               projRole,
	"lieu":                   projLocation,
	"location":               projLocation,
	"client":                 projClient,
	"breve description":      projDescription,
	"description":            projDescription,
	"description du projet":  projDescription,
	"brief description":      projDescription,
	"activites":              projActivities,
	"activites realisees":    projActivities,
	"activites menees":       projActivities,
	"activities":             projActivities,
	"activities performed":   projActivities,
	"principales activites":  projActivities,
	"taches":                 projActivities,
	"description des taches": projActivities,
}

// maxLabelRunes bounds the label part of a "Label : value" row
const maxLabelRunes = 40

// projectLabel recognizes "Label : value", "Label | value" and bare label rows
func projectLabel(line string) (projectField, string, bool) {
	label, value := line, ""
	if i := strings.IndexAny(line, ":|"); i >= 0 {
		label, value = line[:i], strings.TrimSpace(strings.Trim(line[i+1:], " :|"))
	}
	if utf8.RuneCountInString(label) > maxLabelRunes {
		return 0, "", false
	}
	field, ok := projectLabels[nlp.NormalizeTerm(label)]
	return field, value, ok
}

// extractProjects reads the labeled project blocks of the mission-fit
// section. Each project name label opens a new block; unlabeled lines extend
// the last multi-line field (description or activities).
func extractProjects(lines []string) []types.Project {
	out := []types.Project{}
	var (
		cur        *types.Project
		activities []string
		open       projectField
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Activities = ExtractBullets(strings.Join(activities, "\n"))
		cur.Description = nlp.CollapseSpaces(cur.Description)
		if cur.Name != "" || cur.Description != "" || len(cur.Activities) > 0 {
			out = append(out, *cur)
		}
		cur, activities, open = nil, nil, 0
	}

	for _, line := range lines {
		field, value, ok := projectLabel(line)
		if !ok {
			if cur == nil {
				continue
			}
			switch open {
			case projDescription:
				cur.Description += " " + line
			case projActivities:
				activities = append(activities, line)
			}
			continue
		}
		if cur == nil || (field == projName && cur.Name != "") {
			flush()
			cur = &types.Project{}
		}
		open = field
		switch field {
		case projName:
			cur.Name = value
		case projDate:
			cur.Date = value
		case projCompany:
			cur.Company = value
		case projRole:
			cur.Role = value
		case projLocation:
			cur.Location = value
		case projClient:
			cur.Client = value
		case projDescription:
			cur.Description = value
		case projActivities:
			if value != "" {
				activities = append(activities, value)
			}
		}
	}
	flush()
	return out
}
