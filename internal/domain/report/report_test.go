package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/report"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleProject() project.Project {
	return project.Project{
		ID:   "p1",
		Name: "Site A",
		Type: project.TypeSecurityAudit,
		Categories: []project.Category{
			{ID: "planning", Name: "Project Planning", Items: []project.Item{
				{ID: "req1", Title: "Requirements", Checked: true, Comment: "Missing timeline"},
				{ID: "req2", Title: "Stories"},
			}},
			{ID: "design", Name: "Design", Items: []project.Item{
				{ID: "des1", Title: "Wireframes", Checked: true},
			}},
			{ID: "empty", Name: "Empty"},
		},
	}
}

func dashes(s string) string {
	return strings.Repeat("-", len([]rune(s)))
}

func TestGenerate(t *testing.T) {
	got := report.Generate(sampleProject(), report.RiskFlags{"planning": true, "design": true}, generatedAt)

	want := strings.Join([]string{
		"SECURITY AUDIT REPORT",
		"Site A",
		"Generated on: March 14, 2026",
		"",
		"EXECUTIVE SUMMARY",
		dashes("EXECUTIVE SUMMARY"),
		"This security audit report provides a comprehensive assessment of the security posture of Site A.",
		"The audit was conducted using industry-standard security testing methodologies and best practices.",
		"",
		"HIGH-RISK FINDINGS",
		dashes("HIGH-RISK FINDINGS"),
		"Project Planning:",
		"- Requirements",
		"  Finding: Missing timeline",
		"",
		"",
		"DETAILED ASSESSMENT",
		dashes("DETAILED ASSESSMENT"),
		"Project Planning",
		dashes("Project Planning"),
		"Progress: 50%",
		"Status: High Risk",
		"",
		"□ Requirements",
		"  Status: ✓ Checked",
		"  Notes: Missing timeline",
		"□ Stories",
		"  Status: ✗ Unchecked",
		"",
		"Design",
		dashes("Design"),
		"Progress: 100%",
		"Status: High Risk",
		"",
		"□ Wireframes",
		"  Status: ✓ Checked",
		"",
		"Empty",
		dashes("Empty"),
		"Progress: 0%",
		"Status: Low Risk",
		"",
		"",
		"RECOMMENDATIONS",
		dashes("RECOMMENDATIONS"),
		"Based on the findings, we recommend prioritizing the remediation of issues in the following categories:",
		"- Project Planning",
		"- Design",
		"",
		"END OF REPORT",
		"",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := sampleProject()
	flags := report.RiskFlags{"planning": true}
	require.Equal(t, report.Generate(p, flags, generatedAt), report.Generate(p, flags, generatedAt))
}

func TestGenerate_DoesNotMutateInputs(t *testing.T) {
	p := sampleProject()
	flags := report.RiskFlags{"planning": true}
	report.Generate(p, flags, generatedAt)

	if diff := cmp.Diff(sampleProject(), p); diff != "" {
		t.Fatalf("project mutated (-want +got):\n%s", diff)
	}
	require.Equal(t, report.RiskFlags{"planning": true}, flags)
}

func TestGenerate_NoFlags(t *testing.T) {
	got := report.Generate(sampleProject(), nil, generatedAt)
	require.NotContains(t, got, "High Risk")
	require.NotContains(t, got, "Finding:")
	require.Contains(t, got, "following categories:\n\nEND OF REPORT\n")
}

func TestFindings(t *testing.T) {
	p := sampleProject()
	p.Categories[1].Items[0].Comment = "Outdated"
	p.Categories[0].Items[1].Comment = "unchecked, so ignored"

	findings := report.Findings(p, report.RiskFlags{"planning": true, "design": false, "empty": true})
	require.Len(t, findings, 1)
	require.Equal(t, "planning", findings[0].Category.ID)
	require.Len(t, findings[0].Items, 1)
	require.Equal(t, "req1", findings[0].Items[0].ID)

	findings = report.Findings(p, report.RiskFlags{"design": true, "planning": true})
	require.Len(t, findings, 2)
	require.Equal(t, "design", findings[1].Category.ID)
}

func TestRiskFlagsCount(t *testing.T) {
	require.Equal(t, 0, report.RiskFlags(nil).Count())
	require.Equal(t, 2, report.RiskFlags{"a": true, "b": false, "c": true}.Count())
}

func TestFilename(t *testing.T) {
	date := time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC)
	require.Equal(t, "security-audit-report-site-a-2026-03-04.txt",
		report.Filename(project.Project{Name: "Site A"}, date))
	require.Equal(t, "security-audit-report-acme-corp-portal-2026-03-04.txt",
		report.Filename(project.Project{Name: "ACME  Corp\tPortal"}, date))
}

func TestFilename_UsesUTCDate(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	late := time.Date(2026, 3, 14, 22, 0, 0, 0, est)
	require.Equal(t, "security-audit-report-site-a-2026-03-15.txt",
		report.Filename(project.Project{Name: "Site A"}, late))
}

func TestFilename_UnicodeWhitespace(t *testing.T) {
	date := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "security-audit-report-site-a-b-2026-03-04.txt",
		report.Filename(project.Project{Name: "Site\u00a0A \u2003\u3000B"}, date))
}
