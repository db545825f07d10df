package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteMarkdown renders the report into dir as report.md. Above the inline
// limit each file's findings move to a linked file-NNN.md page.
func (r *Report) WriteMarkdown(dir string) error {
	summaries := r.fileSummaries()
	paginate := r.Collection.Len() > inlineLimit

	if paginate {
		for i := range summaries {
			summaries[i].Page = pageName(i, "md")
		}
	}

	var b strings.Builder

	b.WriteString("# clang-tidy report\n\n")
	r.writeMarkdownMetadata(&b)
	r.writeMarkdownSummary(&b, summaries)

	if paginate {
		for _, summary := range summaries {
			if err := r.writeMarkdownPage(dir, summary); err != nil {
				return err
			}
		}
	} else {
		for _, summary := range summaries {
			r.writeMarkdownFindings(&b, summary)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(b.String()), 0o644); err != nil { //nolint:gosec // report output
		return fmt.Errorf("writing Markdown report: %w", err)
	}

	return nil
}

func (r *Report) writeMarkdownMetadata(b *strings.Builder) {
	fmt.Fprintf(b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	if r.ToolVersion != "" {
		fmt.Fprintf(b, "Analyzer: %s\n\n", r.ToolVersion)
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(b, "| Build directory | `%s` |\n", r.BuildDir)

	if r.ConfigFile != "" {
		fmt.Fprintf(b, "| Configuration | `%s` |\n", r.ConfigFile)
	}

	if r.Checks != "" {
		fmt.Fprintf(b, "| Checks | `%s` |\n", r.Checks)
	}

	if len(r.ExcludePatterns) > 0 {
		fmt.Fprintf(b, "| Excluded | `%s` |\n", strings.Join(r.ExcludePatterns, "`, `"))
	}

	fmt.Fprintf(b, "| Files analyzed | %d of %d (%d excluded) |\n", r.FilesAnalyzed, r.FilesTotal, r.FilesExcluded)
	fmt.Fprintf(b, "| Findings | %d (%d duplicates dropped, %d on excluded paths) |\n\n",
		r.Collection.Len(), r.DuplicateFindings, r.ExcludedFindings)
}

func (r *Report) writeMarkdownSummary(b *strings.Builder, summaries []fileSummary) {
	severities := r.severityCounts()

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- **Errors**: %d\n", severities["error"])
	fmt.Fprintf(b, "- **Warnings**: %d\n", severities["warning"])
	fmt.Fprintf(b, "- **Notes**: %d\n\n", severities["note"])

	checks := r.checkSummaries()
	if len(checks) > 0 {
		b.WriteString("### By check\n\n| Check | Count |\n|---|---|\n")

		for _, check := range checks {
			fmt.Fprintf(b, "| `%s` | %d |\n", check.Check, check.Count)
		}

		b.WriteString("\n")
	}

	if len(summaries) > 0 {
		b.WriteString("### By file\n\n| File | Findings | Errors | Warnings |\n|---|---|---|---|\n")

		for _, summary := range summaries {
			name := fmt.Sprintf("`%s`", summary.Display)
			if summary.Page != "" {
				name = fmt.Sprintf("[`%s`](%s)", summary.Display, summary.Page)
			}

			fmt.Fprintf(b, "| %s | %d | %d | %d |\n", name, summary.Count, summary.Errors, summary.Warnings)
		}

		b.WriteString("\n")
	}
}

func (r *Report) writeMarkdownFindings(b *strings.Builder, summary fileSummary) {
	fmt.Fprintf(b, "## %s\n\n", summary.Display)

	for _, diag := range sortedDiagnostics(r.Collection.ByFile()[summary.File]) {
		fmt.Fprintf(b, "- **%s** `%s:%d:%d` %s [`%s`]\n",
			diag.Severity, summary.Display, diag.Line, diag.Column, diag.Message, diag.Check)
	}

	b.WriteString("\n")
}

func (r *Report) writeMarkdownPage(dir string, summary fileSummary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n[← back to report](report.md)\n\n", summary.Display)
	r.writeMarkdownFindings(&b, summary)

	if err := os.WriteFile(filepath.Join(dir, summary.Page), []byte(b.String()), 0o644); err != nil { //nolint:gosec // report output
		return fmt.Errorf("writing Markdown page: %w", err)
	}

	return nil
}
