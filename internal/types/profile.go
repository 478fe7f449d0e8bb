package types

// PersonalInfo holds the identity block of a CV
type PersonalInfo struct {
	Title             string `json:"titre"`
	ExpertName        string `json:"nom_expert"`
	BirthDate         string `json:"date_naissance"` // DD-MM-YYYY or empty
	ResidenceCountry  string `json:"pays_residence"`
	Email             string `json:"email"`
	Phone             string `json:"telephone"` // "NN NN NN NN" or empty
	ProfessionalTitle string `json:"titre_professionnel"`
}

// PresentFields counts the non-empty identity fields
func (p PersonalInfo) PresentFields() int {
	n := 0
	for _, v := range []string{p.Title, p.ExpertName, p.BirthDate, p.ResidenceCountry, p.Email, p.Phone, p.ProfessionalTitle} {
		if v != "" {
			n++
		}
	}
	return n
}

// Education is a single education entry
type Education struct {
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Degree      string `json:"degree"`
	Description string `json:"description,omitempty"`
}

// Experience is a single professional experience entry
type Experience struct {
	Period   string   `json:"period"`
	Employer string   `json:"employer"`
	Country  string   `json:"country"`
	Role     string   `json:"role"`
	Bullets  []string `json:"bullets"`
	Summary  string   `json:"summary"`
}

// Language is a spoken language with per-skill proficiency
type Language struct {
	Language string        `json:"language"`
	Speaking LanguageLevel `json:"speaking"`
	Reading  LanguageLevel `json:"reading"`
	Writing  LanguageLevel `json:"writing"`
	Level    LanguageLevel `json:"level"`
}

// Project is a mission-fit reference project
type Project struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Location    string   `json:"location"`
	Client      string   `json:"client"`
	Description string   `json:"description"`
	Activities  []string `json:"activities"`
}

// MissionAdequacy groups the mission-fit projects
type MissionAdequacy struct {
	Projects []Project `json:"projects"`
}

// Profile is the structured representation of a CV.
// A Profile is never mutated after extraction; a new upload yields a new Profile.
type Profile struct {
	PersonalInfo             PersonalInfo    `json:"personal_info"`
	ProfileSummary           string          `json:"profile_summary"`
	Education                []Education     `json:"education"`
	Experience               []Experience    `json:"experience"`
	Skills                   []string        `json:"skills"`
	Languages                []Language      `json:"languages"`
	Certifications           []string        `json:"certifications"`
	ProfessionalAssociations string          `json:"professional_associations"`
	MissionAdequacy          MissionAdequacy `json:"mission_adequacy"`

	QualityScore             int `json:"quality_score"`
	ComplianceScore          int `json:"format_compliance_score"`
	RichatCompatibilityScore int `json:"richat_compatibility_score"`
	TaxonomyAffinityScore    int `json:"taxonomy_affinity_score"`

	PrimaryDomain    Domain          `json:"primary_domain,omitempty"`
	DetectedFormat   Format          `json:"detected_format"`
	ProcessingMethod string          `json:"processing_method"`
	SectionsFound    map[string]bool `json:"sections_found"`
	MissingSections  []string        `json:"missing_sections"`
	Recommendations  []string        `json:"recommendations"`
	Errors           []string        `json:"errors"`
	Success          bool            `json:"success"`
}

// NewProfile returns a Profile with all collections initialized so that
// JSON output never contains null arrays.
func NewProfile() *Profile {
	return &Profile{
		Education:       []Education{},
		Experience:      []Experience{},
		Skills:          []string{},
		Languages:       []Language{},
		Certifications:  []string{},
		MissionAdequacy: MissionAdequacy{Projects: []Project{}},
		SectionsFound:   map[string]bool{},
		MissingSections: []string{},
		Recommendations: []string{},
		Errors:          []string{},
	}
}

// Warn records a non-fatal section parse warning
func (p *Profile) Warn(msg string) {
	p.Errors = append(p.Errors, string(CodeSectionParseWarning)+": "+msg)
}
