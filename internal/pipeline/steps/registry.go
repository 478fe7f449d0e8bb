// Package steps provides step definitions and dependency validation for the
// CV standardization pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names
const (
	AcquireText    = "acquire_text"
	ExtractProfile = "extract_profile"
	RenderPDF      = "render_pdf"
	StorePDF       = "store_pdf"
	PersistProfile = "persist_profile"
)

// Step categories
const (
	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryRendering  = "rendering"
	CategoryStorage    = "storage"
)

// Status is the outcome of a step
type Status string

// Step statuses
const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Order        int
	Dependencies []string
	Optional     []string
}

// StepResult represents the result of executing a step
type StepResult struct {
	Step     string `json:"step"`
	Status   Status `json:"status"`
	Duration int64  `json:"duration_ms"`
	Error    string `json:"error,omitempty"`
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	AcquireText: {
		Name:         AcquireText,
		Category:     CategoryIngestion,
		Order:        1,
		Dependencies: []string{},
	},
	ExtractProfile: {
		Name:         ExtractProfile,
		Category:     CategoryExtraction,
		Order:        2,
		Dependencies: []string{AcquireText},
	},
	RenderPDF: {
		Name:         RenderPDF,
		Category:     CategoryRendering,
		Order:        3,
		Dependencies: []string{ExtractProfile},
	},
	StorePDF: {
		Name:         StorePDF,
		Category:     CategoryStorage,
		Order:        4,
		Dependencies: []string{RenderPDF},
	},
	PersistProfile: {
		Name:         PersistProfile,
		Category:     CategoryStorage,
		Order:        5,
		Dependencies: []string{ExtractProfile},
		Optional:     []string{StorePDF},
	},
}

// Ordered returns the step names in execution order
func Ordered() []string {
	names := make([]string, 0, len(StepRegistry))
	for name := range StepRegistry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return StepRegistry[names[i]].Order < StepRegistry[names[j]].Order
	})
	return names
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every required dependency of a step has
// completed, given the statuses recorded so far
func ValidateDependencies(statuses map[string]Status, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if statuses[dep] != StatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// BlockedSteps returns the steps not yet run whose dependencies are not met,
// in execution order
func BlockedSteps(statuses map[string]Status) []string {
	var blocked []string
	for _, name := range Ordered() {
		if _, done := statuses[name]; done {
			continue
		}
		if err := ValidateDependencies(statuses, name); err != nil {
			blocked = append(blocked, name)
		}
	}
	return blocked
}
