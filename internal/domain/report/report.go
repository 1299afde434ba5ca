// Package report renders a plain-text audit report from a project snapshot
// and the caller's per-category risk flags.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ganot/checkvault/internal/domain/project"
)

// Title heads every generated report.
const Title = "SECURITY AUDIT REPORT"

// DateLayout formats the generation date.
const DateLayout = "January 2, 2006"

// RiskFlags maps a category ID to whether it is flagged high risk. Missing
// entries are low risk.
type RiskFlags map[string]bool

// HighRisk reports whether the category is flagged.
func (f RiskFlags) HighRisk(categoryID string) bool {
	return f[categoryID]
}

// Count returns the number of flagged categories.
func (f RiskFlags) Count() int {
	n := 0
	for _, flagged := range f {
		if flagged {
			n++
		}
	}
	return n
}

// Generate renders the report. It never mutates p or flags, and the output
// depends only on its arguments.
func Generate(p project.Project, flags RiskFlags, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(Title + "\n")
	b.WriteString(p.Name + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generatedAt.Format(DateLayout))

	heading(&b, "EXECUTIVE SUMMARY")
	fmt.Fprintf(&b, "This security audit report provides a comprehensive assessment of the security posture of %s.\n", p.Name)
	b.WriteString("The audit was conducted using industry-standard security testing methodologies and best practices.\n\n")

	heading(&b, "HIGH-RISK FINDINGS")
	for _, f := range Findings(p, flags) {
		fmt.Fprintf(&b, "%s:\n", f.Category.Name)
		for _, item := range f.Items {
			fmt.Fprintf(&b, "- %s\n  Finding: %s\n", item.Title, item.Comment)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	heading(&b, "DETAILED ASSESSMENT")
	for _, cat := range p.Categories {
		b.WriteString(cat.Name + "\n")
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(cat.Name)) + "\n")
		fmt.Fprintf(&b, "Progress: %d%%\n", cat.Progress())
		fmt.Fprintf(&b, "Status: %s\n\n", status(flags.HighRisk(cat.ID)))
		for _, item := range cat.Items {
			fmt.Fprintf(&b, "□ %s\n", item.Title)
			if item.Checked {
				b.WriteString("  Status: ✓ Checked\n")
			} else {
				b.WriteString("  Status: ✗ Unchecked\n")
			}
			if item.Comment != "" {
				fmt.Fprintf(&b, "  Notes: %s\n", item.Comment)
			}
		}
		b.WriteString("\n")
	}

	heading(&b, "RECOMMENDATIONS")
	b.WriteString("Based on the findings, we recommend prioritizing the remediation of issues in the following categories:\n")
	for _, cat := range p.Categories {
		if flags.HighRisk(cat.ID) {
			fmt.Fprintf(&b, "- %s\n", cat.Name)
		}
	}
	b.WriteString("\nEND OF REPORT\n")

	return b.String()
}

// Finding is a flagged category with its checked, commented items.
type Finding struct {
	Category project.Category
	Items    []project.Item
}

// Findings returns, in category order, every flagged category that has at
// least one item both checked and carrying a non-empty comment.
func Findings(p project.Project, flags RiskFlags) []Finding {
	var out []Finding
	for _, cat := range p.Categories {
		if !flags.HighRisk(cat.ID) {
			continue
		}
		var items []project.Item
		for _, item := range cat.Items {
			if item.Checked && item.Comment != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			out = append(out, Finding{Category: cat, Items: items})
		}
	}
	return out
}

// whitespaceRun matches Unicode spaces (NBSP included) as well as ASCII ones.
var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)

// Filename suggests a download name:
// security-audit-report-<slugified-name>-<YYYY-MM-DD>.txt. The date is the
// UTC calendar day of date.
func Filename(p project.Project, date time.Time) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(p.Name), "-")
	return fmt.Sprintf("security-audit-report-%s-%s.txt", slug, date.UTC().Format(time.DateOnly))
}

func heading(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func status(highRisk bool) string {
	if highRisk {
		return "High Risk"
	}
	return "Low Risk"
}
