package rendering

// Style bundles the visual parameters a template contributes to the preview:
// layout, typography, and the color roles the palette slots map onto.
type Style struct {
	ID                 string
	Name               string
	HeaderLayout       string // "banner", "centered", "sidebar", "compact"
	FontFamily         string
	Primary            string
	Secondary          string
	Accent             string
	SectionTitleAccent string // "underline", "bar", "plain"
}

// TemplateIDs lists every selectable template, in display order.
var TemplateIDs = []string{"modern", "classic", "creative", "professional", "minimal"}

// Registry maps template IDs to their style bundles.
var Registry = map[string]Style{
	"modern": {
		ID:                 "modern",
		Name:               "Modern",
		HeaderLayout:       "banner",
		FontFamily:         "'Helvetica Neue', Arial, sans-serif",
		Primary:            "#2563eb",
		Secondary:          "#1e293b",
		Accent:             "#3b82f6",
		SectionTitleAccent: "bar",
	},
	"classic": {
		ID:                 "classic",
		Name:               "Classic",
		HeaderLayout:       "centered",
		FontFamily:         "Georgia, 'Times New Roman', serif",
		Primary:            "#1f2937",
		Secondary:          "#4b5563",
		Accent:             "#6b7280",
		SectionTitleAccent: "underline",
	},
	"creative": {
		ID:                 "creative",
		Name:               "Creative",
		HeaderLayout:       "sidebar",
		FontFamily:         "'Trebuchet MS', Verdana, sans-serif",
		Primary:            "#7c3aed",
		Secondary:          "#312e81",
		Accent:             "#a78bfa",
		SectionTitleAccent: "bar",
	},
	"professional": {
		ID:                 "professional",
		Name:               "Professional",
		HeaderLayout:       "banner",
		FontFamily:         "Calibri, 'Segoe UI', sans-serif",
		Primary:            "#0f766e",
		Secondary:          "#134e4a",
		Accent:             "#14b8a6",
		SectionTitleAccent: "underline",
	},
	"minimal": {
		ID:                 "minimal",
		Name:               "Minimal",
		HeaderLayout:       "compact",
		FontFamily:         "'Helvetica Neue', Arial, sans-serif",
		Primary:            "#111827",
		Secondary:          "#6b7280",
		Accent:             "#111827",
		SectionTitleAccent: "plain",
	},
}

// StyleFor resolves a template ID to its style bundle. Unknown IDs fall back
// to modern rather than failing the preview.
func StyleFor(id string) Style {
	if s, ok := Registry[id]; ok {
		return s
	}
	return Registry["modern"]
}
