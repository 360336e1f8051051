package rendering

// previewTemplate is the single preview document every template ID renders
// through; the style bundle drives layout and color differences. Elements
// marked data-export="exclude" (and the print:hidden class) are editor
// controls: the export pipeline removes them and print CSS hides them.
const previewTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Resume.Title}}</title>
<style>
  body { margin: 0; background: #e5e7eb; font-family: {{.Style.FontFamily}}; color: {{.Secondary}}; }
  .page { width: 794px; min-height: 1123px; margin: 24px auto; background: #fff; padding: 48px 56px; box-sizing: border-box; }
  .header { margin-bottom: 24px; }
  .header.banner { background: {{.Primary}}; color: #fff; margin: -48px -56px 24px; padding: 40px 56px; }
  .header.centered { text-align: center; border-bottom: 2px solid {{.Primary}}; padding-bottom: 16px; }
  .header.sidebar { border-left: 8px solid {{.Primary}}; padding-left: 20px; }
  .header.compact { padding-bottom: 8px; }
  .name { font-size: 28px; font-weight: 700; margin: 0; }
  .designation { font-size: 15px; margin: 4px 0 0; opacity: 0.85; }
  .contact { font-size: 12px; margin-top: 10px; }
  .contact span { margin-right: 14px; }
  .section { margin-bottom: 20px; }
  .section-title { font-size: 14px; font-weight: 700; text-transform: uppercase; letter-spacing: 1px; color: {{.Primary}}; margin: 0 0 10px; }
  .section-title.underline { border-bottom: 1px solid {{.Accent}}; padding-bottom: 4px; }
  .section-title.bar { border-left: 4px solid {{.Accent}}; padding-left: 8px; }
  .entry { margin-bottom: 12px; }
  .entry-head { display: flex; justify-content: space-between; font-size: 13px; }
  .entry-title { font-weight: 600; }
  .entry-dates { color: {{.Accent}}; font-size: 12px; }
  .entry-sub { font-size: 12px; color: {{.Accent}}; }
  .entry-body { font-size: 12px; margin-top: 4px; line-height: 1.5; }
  .pill { display: inline-block; font-size: 11px; background: #f3f4f6; border-radius: 10px; padding: 2px 10px; margin: 0 6px 6px 0; }
  .toolbar { position: sticky; top: 0; background: #fff; border-bottom: 1px solid #d1d5db; padding: 10px 16px; text-align: right; z-index: 10; }
  .toolbar button { margin-left: 8px; padding: 6px 14px; font-size: 13px; cursor: pointer; }
  @media print {
    body { background: #fff; }
    .page { margin: 0; width: auto; min-height: 0; }
    .print\:hidden { display: none !important; }
  }
</style>
</head>
<body>
<div class="toolbar print:hidden" data-export="exclude">
  <button type="button">Change Template</button>
  <button type="button">Download PDF</button>
</div>
<div class="page" id="resume-preview">
  <div class="header {{.Style.HeaderLayout}}">
    {{if .Resume.ProfileInfo.FullName}}<h1 class="name">{{.Resume.ProfileInfo.FullName}}</h1>{{end}}
    {{if .Resume.ProfileInfo.Designation}}<p class="designation">{{.Resume.ProfileInfo.Designation}}</p>{{end}}
    <div class="contact">
      {{with .Resume.ContactInfo}}
      {{if .Email}}<span>{{.Email}}</span>{{end}}
      {{if .Phone}}<span>{{.Phone}}</span>{{end}}
      {{if .Location}}<span>{{.Location}}</span>{{end}}
      {{if .LinkedIn}}<span>{{.LinkedIn}}</span>{{end}}
      {{if .GitHub}}<span>{{.GitHub}}</span>{{end}}
      {{if .Website}}<span>{{.Website}}</span>{{end}}
      {{end}}
    </div>
  </div>

  {{if .Resume.ProfileInfo.Summary}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Summary</h2>
    <p class="entry-body">{{.Resume.ProfileInfo.Summary}}</p>
  </div>
  {{end}}

  {{if .WorkExperience}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Work Experience</h2>
    {{range .WorkExperience}}
    <div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{.Role}}</span>
        <span class="entry-dates">{{.StartDate}}{{if .EndDate}} - {{.EndDate}}{{end}}</span>
      </div>
      <div class="entry-sub">{{.Company}}</div>
      {{if .Description}}<div class="entry-body">{{.Description}}</div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Education}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Education</h2>
    {{range .Education}}
    <div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{.Degree}}</span>
        <span class="entry-dates">{{.StartDate}}{{if .EndDate}} - {{.EndDate}}{{end}}</span>
      </div>
      <div class="entry-sub">{{.Institution}}{{if .FieldOfStudy}} &middot; {{.FieldOfStudy}}{{end}}{{if .GPA}} &middot; GPA {{.GPA}}{{end}}</div>
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Skills}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Skills</h2>
    {{range .Skills}}
    <div class="entry">
      {{if .Category}}<div class="entry-title">{{.Category}}</div>{{end}}
      <div>{{range .SkillsList}}<span class="pill">{{.}}</span>{{end}}</div>
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Projects}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Projects</h2>
    {{range .Projects}}
    <div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{.Name}}</span>
        <span class="entry-dates">{{.StartDate}}{{if .EndDate}} - {{.EndDate}}{{end}}</span>
      </div>
      {{if .Link}}<div class="entry-sub">{{.Link}}</div>{{end}}
      {{if .Description}}<div class="entry-body">{{.Description}}</div>{{end}}
      {{if .Technologies}}<div class="entry-sub">{{.Technologies}}</div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Certifications}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Certifications</h2>
    {{range .Certifications}}
    <div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{.Name}}</span>
        <span class="entry-dates">{{.IssueDate}}</span>
      </div>
      <div class="entry-sub">{{.Issuer}}{{if .CredentialID}} &middot; {{.CredentialID}}{{end}}</div>
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Languages}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Languages</h2>
    <div>{{range .Languages}}<span class="pill">{{.Language}}{{if .Proficiency}} ({{.Proficiency}}){{end}}</span>{{end}}</div>
  </div>
  {{end}}

  {{if .Interests}}
  <div class="section">
    <h2 class="section-title {{.Style.SectionTitleAccent}}">Interests</h2>
    <div>{{range .Interests}}<span class="pill">{{.}}</span>{{end}}</div>
  </div>
  {{end}}
</div>
</body>
</html>
`
