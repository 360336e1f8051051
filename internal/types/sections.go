package types

import (
	"encoding/json"
	"fmt"
)

// Section names a mergeable top-level part of a resume. Updates replace the
// named section wholesale: a supplied array fully replaces the prior array,
// there is no element-wise merge.
type Section string

// The enumerated set of mergeable sections. Anything outside this set is
// rejected rather than silently merged.
const (
	SectionTitle          Section = "title"
	SectionThumbnailLink  Section = "thumbnailLink"
	SectionTemplate       Section = "template"
	SectionProfileInfo    Section = "profileInfo"
	SectionContactInfo    Section = "contactInfo"
	SectionWorkExperience Section = "workExperience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
	SectionInterests      Section = "interests"
)

// Sections lists every mergeable section key.
var Sections = []Section{
	SectionTitle,
	SectionThumbnailLink,
	SectionTemplate,
	SectionProfileInfo,
	SectionContactInfo,
	SectionWorkExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionInterests,
}

// ErrUnknownSection is returned when a caller names a section outside the
// enumerated set.
type ErrUnknownSection struct {
	Section Section
}

func (e *ErrUnknownSection) Error() string {
	return fmt.Sprintf("unknown resume section: %q", e.Section)
}

// ApplySection decodes raw JSON into the named section of r, replacing that
// section only. Identity and timestamp fields are not reachable through this
// path.
func ApplySection(r *Resume, section Section, raw json.RawMessage) error {
	var err error
	switch section {
	case SectionTitle:
		err = json.Unmarshal(raw, &r.Title)
	case SectionThumbnailLink:
		err = json.Unmarshal(raw, &r.ThumbnailLink)
	case SectionTemplate:
		err = json.Unmarshal(raw, &r.Template)
	case SectionProfileInfo:
		err = json.Unmarshal(raw, &r.ProfileInfo)
	case SectionContactInfo:
		err = json.Unmarshal(raw, &r.ContactInfo)
	case SectionWorkExperience:
		err = json.Unmarshal(raw, &r.WorkExperience)
	case SectionEducation:
		err = json.Unmarshal(raw, &r.Education)
	case SectionSkills:
		err = json.Unmarshal(raw, &r.Skills)
	case SectionProjects:
		err = json.Unmarshal(raw, &r.Projects)
	case SectionCertifications:
		err = json.Unmarshal(raw, &r.Certifications)
	case SectionLanguages:
		err = json.Unmarshal(raw, &r.Languages)
	case SectionInterests:
		err = json.Unmarshal(raw, &r.Interests)
	default:
		return &ErrUnknownSection{Section: section}
	}
	if err != nil {
		return fmt.Errorf("failed to decode section %q: %w", section, err)
	}
	r.Normalize()
	return nil
}
