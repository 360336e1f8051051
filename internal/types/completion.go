package types

import (
	"math"
	"strings"
)

// CompletionScore computes how complete a resume is as an integer percentage
// in [0, 100]. Each section contributes a fixed number of expected fields per
// entry; a field counts when it is non-empty. A resume with zero sections and
// zero interests scores 0 rather than dividing by zero.
func CompletionScore(r *Resume) int {
	completed := 0
	total := 0

	total += 3
	if r.ProfileInfo.FullName != "" {
		completed++
	}
	if r.ProfileInfo.Designation != "" {
		completed++
	}
	if r.ProfileInfo.Summary != "" {
		completed++
	}

	total += 2
	if r.ContactInfo.Email != "" {
		completed++
	}
	if r.ContactInfo.Phone != "" {
		completed++
	}

	for _, exp := range r.WorkExperience {
		total += 5
		completed += countFilled(exp.Company, exp.Role, exp.StartDate, exp.EndDate, exp.Description)
	}

	for _, edu := range r.Education {
		total += 4
		completed += countFilled(edu.Degree, edu.Institution, edu.StartDate, edu.EndDate)
	}

	for _, group := range r.Skills {
		total += 2
		if group.Category != "" {
			completed++
		}
		if len(group.SkillsList) > 0 {
			completed++
		}
	}

	for _, proj := range r.Projects {
		total += 4
		completed += countFilled(proj.Name, proj.Description, proj.Technologies, proj.Link)
	}

	for _, cert := range r.Certifications {
		total += 3
		completed += countFilled(cert.Name, cert.Issuer, cert.IssueDate)
	}

	for _, lang := range r.Languages {
		total += 2
		completed += countFilled(lang.Language, lang.Proficiency)
	}

	total += len(r.Interests)
	for _, interest := range r.Interests {
		if strings.TrimSpace(interest) != "" {
			completed++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func countFilled(fields ...string) int {
	n := 0
	for _, f := range fields {
		if f != "" {
			n++
		}
	}
	return n
}
