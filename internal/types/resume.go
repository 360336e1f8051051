// Package types defines the resume record and its section shapes.
package types

import (
	"time"

	"github.com/google/uuid"
)

// ProfileInfo holds the identity block shown in the resume header.
type ProfileInfo struct {
	ProfileImg        string `json:"profileImg"`
	ProfilePreviewURL string `json:"profilePreviewUrl"`
	FullName          string `json:"fullName"`
	Designation       string `json:"designation"`
	Summary           string `json:"summary"`
}

// ContactInfo holds the contact channels. All fields are optional.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

// WorkExperience is one employment entry.
type WorkExperience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is one education entry.
type Education struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	GPA          string `json:"gpa"`
}

// SkillGroup is a named category with its list of skills.
type SkillGroup struct {
	Category   string   `json:"category"`
	SkillsList []string `json:"skillsList"`
}

// Project is one project entry.
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// Certification is one certification entry.
type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issueDate"`
	ExpiryDate   string `json:"expiryDate"`
	CredentialID string `json:"credentialId"`
}

// Language proficiency levels.
const (
	ProficiencyNative       = "Native"
	ProficiencyFluent       = "Fluent"
	ProficiencyProficient   = "Proficient"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyBasic        = "Basic"
)

// Language is one spoken-language entry. Proficiency may be unset.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Template records the selected visual template and its color palette.
type Template struct {
	Theme        string   `json:"theme"`
	ColorPalette []string `json:"colorPalette"`
}

// Resume is the root record. A resume belongs to exactly one user; UserID
// never changes after creation. Date fields are free-form strings; no
// calendar validation is enforced.
type Resume struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Title          string           `json:"title"`
	ThumbnailLink  string           `json:"thumbnailLink"`
	Template       Template         `json:"template"`
	ProfileInfo    ProfileInfo      `json:"profileInfo"`
	ContactInfo    ContactInfo      `json:"contactInfo"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []SkillGroup     `json:"skills"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	Languages      []Language       `json:"languages"`
	Interests      []string         `json:"interests"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// DefaultResume returns the empty-section skeleton every new resume starts
// from: one blank template entry per array section so the editor has a row to
// fill in.
func DefaultResume(title string) *Resume {
	return &Resume{
		Title:          title,
		Template:       Template{Theme: DefaultTemplateTheme, ColorPalette: []string{}},
		WorkExperience: []WorkExperience{{}},
		Education:      []Education{{}},
		Skills:         []SkillGroup{{SkillsList: []string{}}},
		Projects:       []Project{{}},
		Certifications: []Certification{{}},
		Languages:      []Language{{}},
		Interests:      []string{""},
	}
}

// DefaultTemplateTheme is the theme applied when none is chosen.
const DefaultTemplateTheme = "modern"

// Normalize replaces nil array sections with empty slices so persisted and
// serialized records never carry null sections.
func (r *Resume) Normalize() {
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []SkillGroup{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.Interests == nil {
		r.Interests = []string{}
	}
	if r.Template.ColorPalette == nil {
		r.Template.ColorPalette = []string{}
	}
}
