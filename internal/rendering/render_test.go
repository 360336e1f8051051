package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func sampleResume() *types.Resume {
	r := types.DefaultResume("Sample Resume")
	r.ProfileInfo.FullName = "Ada Lovelace"
	r.ProfileInfo.Designation = "Software Engineer"
	r.ContactInfo.Email = "ada@example.com"
	r.WorkExperience = []types.WorkExperience{
		{Company: "Analytical Engines Ltd", Role: "Lead Engineer", StartDate: "2021", EndDate: "Present"},
	}
	return r
}

func TestStyleFor_KnownTemplates(t *testing.T) {
	for _, id := range TemplateIDs {
		style := StyleFor(id)
		assert.Equal(t, id, style.ID)
		assert.NotEmpty(t, style.FontFamily, "template %s", id)
		assert.NotEmpty(t, style.Primary, "template %s", id)
	}
}

func TestStyleFor_UnknownFallsBackToModern(t *testing.T) {
	style := StyleFor("vaporwave")
	assert.Equal(t, "modern", style.ID)
}

func TestRender_IncludesHeaderAndContact(t *testing.T) {
	html, err := Render(sampleResume(), "modern")
	require.NoError(t, err)

	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "Software Engineer")
	assert.Contains(t, html, "ada@example.com")
	assert.Contains(t, html, "Analytical Engines Ltd")
}

func TestRender_SkipsEmptySections(t *testing.T) {
	r := types.DefaultResume("Empty Resume")

	html, err := Render(r, "modern")
	require.NoError(t, err)

	assert.NotContains(t, html, "Work Experience")
	assert.NotContains(t, html, "Education")
	assert.NotContains(t, html, "Projects")
	assert.NotContains(t, html, "Certifications")
	assert.NotContains(t, html, "Languages")
	assert.NotContains(t, html, "Interests")
}

func TestRender_SectionVisibleWithOneMeaningfulField(t *testing.T) {
	r := types.DefaultResume("Partial Resume")
	r.WorkExperience = []types.WorkExperience{{Role: "Engineer"}}
	r.Skills = []types.SkillGroup{{SkillsList: []string{"Go"}}}
	r.Interests = []string{"   ", "chess"}

	html, err := Render(r, "classic")
	require.NoError(t, err)

	assert.Contains(t, html, "Work Experience")
	assert.Contains(t, html, "Skills")
	assert.Contains(t, html, "Interests")
	assert.Contains(t, html, "chess")
}

func TestRender_BlankInterestsOnlyHidesSection(t *testing.T) {
	r := types.DefaultResume("Blank Interests")
	r.Interests = []string{"", "   "}

	html, err := Render(r, "modern")
	require.NoError(t, err)

	assert.NotContains(t, html, "Interests")
}

func TestRender_ExportControlsAreMarked(t *testing.T) {
	html, err := Render(sampleResume(), "modern")
	require.NoError(t, err)

	assert.Contains(t, html, `data-export="exclude"`)
	assert.Contains(t, html, "print:hidden")
}

func TestRender_PaletteOverridesStyleColors(t *testing.T) {
	r := sampleResume()
	r.Template.ColorPalette = []string{"#ff0000", "#00ff00", "#0000ff"}

	html, err := Render(r, "modern")
	require.NoError(t, err)

	assert.Contains(t, html, "#ff0000")
	assert.NotContains(t, html, Registry["modern"].Primary)
}

func TestRender_UnknownTemplateUsesModernStyle(t *testing.T) {
	html, err := Render(sampleResume(), "does-not-exist")
	require.NoError(t, err)

	assert.Contains(t, html, Registry["modern"].Primary)
}

func TestRender_EscapesUserContent(t *testing.T) {
	r := sampleResume()
	r.ProfileInfo.FullName = `<script>alert("x")</script>`

	html, err := Render(r, "modern")
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}
