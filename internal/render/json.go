package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/farcloser/tidewrack"
)

// jsonReport is the on-disk JSON layout. The digest command reads it back.
type jsonReport struct {
	Metadata jsonMetadata           `json:"metadata"`
	Summary  jsonSummary            `json:"summary"`
	Issues   []tidewrack.Diagnostic `json:"issues"`
}

type jsonMetadata struct {
	GeneratedAt  string   `json:"generated_at"`
	ToolVersion  string   `json:"tool_version,omitempty"`
	BuildDir     string   `json:"build_dir"`
	ProjectDir   string   `json:"project_dir,omitempty"`
	ConfigFile   string   `json:"config_file,omitempty"`
	Checks       string   `json:"checks,omitempty"`
	HeaderFilter string   `json:"header_filter,omitempty"`
	Exclude      []string `json:"exclude_patterns,omitempty"`

	FilesTotal    int `json:"files_total"`
	FilesAnalyzed int `json:"files_analyzed"`
	FilesExcluded int `json:"files_excluded"`
	FilesMissing  int `json:"files_missing,omitempty"`

	DuplicateFindings int `json:"duplicate_findings"`
	ExcludedFindings  int `json:"excluded_findings"`
}

type jsonSummary struct {
	TotalIssues int            `json:"total_issues"`
	BySeverity  map[string]int `json:"by_severity"`
	ByCheck     map[string]int `json:"by_check"`
	ByFile      map[string]int `json:"by_file"`
}

// WriteJSON renders the report as a single JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	byCheck := map[string]int{}
	for check, diags := range r.Collection.ByCheck() {
		byCheck[check] = len(diags)
	}

	byFile := map[string]int{}
	for file, count := range r.Collection.FileCounts() {
		byFile[r.DisplayPath(file)] = count
	}

	diags := r.Collection.Diagnostics()

	issues := make([]tidewrack.Diagnostic, 0, len(diags))
	for _, diag := range diags {
		issue := *diag
		issue.File = r.DisplayPath(diag.File)
		issues = append(issues, issue)
	}

	doc := jsonReport{
		Metadata: jsonMetadata{
			GeneratedAt:  r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
			ToolVersion:  r.ToolVersion,
			BuildDir:     r.BuildDir,
			ProjectDir:   r.ProjectDir,
			ConfigFile:   r.ConfigFile,
			Checks:       r.Checks,
			HeaderFilter: r.HeaderFilter,
			Exclude:      r.ExcludePatterns,

			FilesTotal:    r.FilesTotal,
			FilesAnalyzed: r.FilesAnalyzed,
			FilesExcluded: r.FilesExcluded,
			FilesMissing:  r.FilesMissing,

			DuplicateFindings: r.DuplicateFindings,
			ExcludedFindings:  r.ExcludedFindings,
		},
		Summary: jsonSummary{
			TotalIssues: len(diags),
			BySeverity:  r.severityCounts(),
			ByCheck:     byCheck,
			ByFile:      byFile,
		},
		Issues: issues,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}

	return nil
}
