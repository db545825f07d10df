package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/farcloser/tidewrack"
)

//nolint:gochecknoglobals // parsed once
var (
	htmlIndexTmpl = template.Must(template.New("index").Parse(htmlIndexSource))
	htmlPageTmpl  = template.Must(template.New("page").Parse(htmlPageSource))
)

type htmlIndexData struct {
	Generated string
	Tool      string
	BuildDir  string
	Config    string
	Checks    string
	Exclude   []string

	FilesAnalyzed int
	FilesTotal    int
	FilesExcluded int

	Total      int
	Errors     int
	Warnings   int
	Notes      int
	Duplicates int

	ChecksTable []checkSummary
	Files       []fileSummary

	Paginated bool
	Inline    []htmlFileBlock
}

type htmlFileBlock struct {
	Display  string
	Findings []*tidewrack.Diagnostic
}

type htmlPageData struct {
	Display  string
	Findings []*tidewrack.Diagnostic
}

// WriteHTML renders the report into dir as report.html. Above the inline
// limit each file's findings move to a linked file-NNN.html page.
func (r *Report) WriteHTML(dir string) error {
	summaries := r.fileSummaries()
	paginate := r.Collection.Len() > inlineLimit

	severities := r.severityCounts()

	data := htmlIndexData{
		Generated: r.GeneratedAt.Format("2006-01-02 15:04:05"),
		Tool:      r.ToolVersion,
		BuildDir:  r.BuildDir,
		Config:    r.ConfigFile,
		Checks:    r.Checks,
		Exclude:   r.ExcludePatterns,

		FilesAnalyzed: r.FilesAnalyzed,
		FilesTotal:    r.FilesTotal,
		FilesExcluded: r.FilesExcluded,

		Total:      r.Collection.Len(),
		Errors:     severities["error"],
		Warnings:   severities["warning"],
		Notes:      severities["note"],
		Duplicates: r.DuplicateFindings,

		ChecksTable: r.checkSummaries(),
		Paginated:   paginate,
	}

	byFile := r.Collection.ByFile()

	if paginate {
		for i := range summaries {
			summaries[i].Page = pageName(i, "html")

			page := htmlPageData{
				Display:  summaries[i].Display,
				Findings: sortedDiagnostics(byFile[summaries[i].File]),
			}

			if err := writeHTMLFile(filepath.Join(dir, summaries[i].Page), htmlPageTmpl, page); err != nil {
				return err
			}
		}
	} else {
		for _, summary := range summaries {
			data.Inline = append(data.Inline, htmlFileBlock{
				Display:  summary.Display,
				Findings: sortedDiagnostics(byFile[summary.File]),
			})
		}
	}

	data.Files = summaries

	return writeHTMLFile(filepath.Join(dir, "report.html"), htmlIndexTmpl, data)
}

func writeHTMLFile(path string, tmpl *template.Template, data any) error {
	out, err := os.Create(path) //nolint:gosec // report output
	if err != nil {
		return fmt.Errorf("creating HTML report: %w", err)
	}
	defer out.Close()

	if err = tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("writing HTML report: %w", err)
	}

	return nil
}

const htmlStyle = `
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 72rem; padding: 0 1rem; color: #1c1e21; }
  h1, h2 { border-bottom: 1px solid #e4e6eb; padding-bottom: .3rem; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { border: 1px solid #e4e6eb; padding: .4rem .6rem; text-align: left; font-size: .9rem; }
  th { background: #f5f6f7; }
  code { background: #f5f6f7; padding: .1rem .3rem; border-radius: 3px; }
  .cards { display: flex; gap: 1rem; flex-wrap: wrap; margin: 1rem 0; }
  .card { border: 1px solid #e4e6eb; border-radius: 6px; padding: .8rem 1.2rem; min-width: 8rem; }
  .card .num { font-size: 1.6rem; font-weight: 700; }
  .sev-error { color: #c0392b; font-weight: 600; }
  .sev-warning { color: #b9770e; font-weight: 600; }
  .sev-note { color: #5d6d7e; }
`

const htmlIndexSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>clang-tidy report</title>
<style>` + htmlStyle + `</style>
</head>
<body>
<h1>clang-tidy report</h1>
<p>Generated {{.Generated}}{{if .Tool}} — {{.Tool}}{{end}}</p>

<div class="cards">
  <div class="card"><div class="num">{{.Total}}</div>findings</div>
  <div class="card"><div class="num sev-error">{{.Errors}}</div>errors</div>
  <div class="card"><div class="num sev-warning">{{.Warnings}}</div>warnings</div>
  <div class="card"><div class="num sev-note">{{.Notes}}</div>notes</div>
  <div class="card"><div class="num">{{.FilesAnalyzed}}</div>files analyzed</div>
</div>

<table>
<tr><th>Build directory</th><td><code>{{.BuildDir}}</code></td></tr>
{{if .Config}}<tr><th>Configuration</th><td><code>{{.Config}}</code></td></tr>{{end}}
{{if .Checks}}<tr><th>Checks</th><td><code>{{.Checks}}</code></td></tr>{{end}}
{{if .Exclude}}<tr><th>Excluded</th><td>{{range .Exclude}}<code>{{.}}</code> {{end}}</td></tr>{{end}}
<tr><th>Files</th><td>{{.FilesAnalyzed}} of {{.FilesTotal}} analyzed, {{.FilesExcluded}} excluded</td></tr>
<tr><th>Duplicates dropped</th><td>{{.Duplicates}}</td></tr>
</table>

{{if .ChecksTable}}
<h2>Findings by check</h2>
<table>
<tr><th>Check</th><th>Count</th></tr>
{{range .ChecksTable}}<tr><td><code>{{.Check}}</code></td><td>{{.Count}}</td></tr>
{{end}}</table>
{{end}}

{{if .Files}}
<h2>Findings by file</h2>
<table>
<tr><th>File</th><th>Findings</th><th>Errors</th><th>Warnings</th></tr>
{{range .Files}}<tr><td>{{if .Page}}<a href="{{.Page}}"><code>{{.Display}}</code></a>{{else}}<code>{{.Display}}</code>{{end}}</td><td>{{.Count}}</td><td>{{.Errors}}</td><td>{{.Warnings}}</td></tr>
{{end}}</table>
{{end}}

{{range .Inline}}
<h2><code>{{.Display}}</code></h2>
<table>
<tr><th>Location</th><th>Severity</th><th>Message</th><th>Check</th></tr>
{{range .Findings}}<tr><td>{{.Line}}:{{.Column}}</td><td class="sev-{{.Severity}}">{{.Severity}}</td><td>{{.Message}}</td><td><code>{{.Check}}</code></td></tr>
{{end}}</table>
{{end}}

</body>
</html>
`

const htmlPageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Display}} — clang-tidy report</title>
<style>` + htmlStyle + `</style>
</head>
<body>
<p><a href="report.html">← back to report</a></p>
<h1><code>{{.Display}}</code></h1>
<table>
<tr><th>Location</th><th>Severity</th><th>Message</th><th>Check</th></tr>
{{range .Findings}}<tr><td>{{.Line}}:{{.Column}}</td><td class="sev-{{.Severity}}">{{.Severity}}</td><td>{{.Message}}</td><td><code>{{.Check}}</code></td></tr>
{{end}}</table>
</body>
</html>
`
