// Package rendering produces the HTML preview document for a resume. The
// preview is what the editor shows live and what the export pipeline captures.
package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// renderData is the view model handed to the preview template. Section
// visibility is decided here, not in the template.
type renderData struct {
	Resume    *types.Resume
	Style     Style
	Primary   string
	Secondary string
	Accent    string

	WorkExperience []types.WorkExperience
	Education      []types.Education
	Skills         []types.SkillGroup
	Projects       []types.Project
	Certifications []types.Certification
	Languages      []types.Language
	Interests      []string
}

// Render produces the full preview document for a resume under the named
// template. Unknown template IDs render with the modern style.
func Render(resume *types.Resume, templateID string) (string, error) {
	tmpl, err := template.New("preview").Parse(previewTemplate)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse preview template", Cause: err}
	}

	data := buildRenderData(resume, templateID)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &RenderError{Message: "failed to execute preview template", Cause: err}
	}
	return result.String(), nil
}

func buildRenderData(resume *types.Resume, templateID string) *renderData {
	style := StyleFor(templateID)
	data := &renderData{
		Resume:    resume,
		Style:     style,
		Primary:   paletteColor(resume, 0, style.Primary),
		Secondary: paletteColor(resume, 1, style.Secondary),
		Accent:    paletteColor(resume, 2, style.Accent),
	}

	for _, e := range resume.WorkExperience {
		if e.Company != "" || e.Role != "" {
			data.WorkExperience = append(data.WorkExperience, e)
		}
	}
	for _, e := range resume.Education {
		if e.Degree != "" || e.Institution != "" {
			data.Education = append(data.Education, e)
		}
	}
	for _, e := range resume.Skills {
		if e.Category != "" || len(e.SkillsList) > 0 {
			data.Skills = append(data.Skills, e)
		}
	}
	for _, e := range resume.Projects {
		if e.Name != "" {
			data.Projects = append(data.Projects, e)
		}
	}
	for _, e := range resume.Certifications {
		if e.Name != "" {
			data.Certifications = append(data.Certifications, e)
		}
	}
	for _, e := range resume.Languages {
		if e.Language != "" {
			data.Languages = append(data.Languages, e)
		}
	}
	for _, e := range resume.Interests {
		if strings.TrimSpace(e) != "" {
			data.Interests = append(data.Interests, e)
		}
	}
	return data
}

// paletteColor returns the resume's palette slot when set, otherwise the
// style default. Slots are [primary, secondary, accent].
func paletteColor(resume *types.Resume, slot int, fallback string) string {
	palette := resume.Template.ColorPalette
	if slot < len(palette) && palette[slot] != "" {
		return palette[slot]
	}
	return fallback
}
