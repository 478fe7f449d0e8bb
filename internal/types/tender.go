package types

import "github.com/go-playground/validator/v10"

// Tender is a request for services that consultants are matched against
type Tender struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Client      string  `json:"client,omitempty"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget,omitempty" validate:"gte=0"`
	Window      Window  `json:"window"`
	Status      string  `json:"status,omitempty"`
	// Criteria maps a skill to a positive weight. Weights need not sum to
	// anything in particular; they are normalized at scoring time.
	Criteria map[string]float64 `json:"criteria,omitempty" validate:"dive,keys,required,endkeys,gt=0"`
}

// Validate validates the Tender using the validator.
func (t *Tender) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}

// HasCriteria reports whether explicit weighted criteria are defined
func (t *Tender) HasCriteria() bool {
	return len(t.Criteria) > 0
}
