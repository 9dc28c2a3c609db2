package render

import (
	"fmt"
	"strings"

	"jobview-engine/internal/domain"
)

const (
	NoApplyLink  = "No apply link available"
	notDisclosed = "Not disclosed"
)

var linkEscaper = strings.NewReplacer("<", "%3C", ">", "%3E")

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// escapeMarkdown keeps scraped text from being read as markup.
func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// SalaryText is the salary line shown for a listing.
func SalaryText(j domain.JobRecord) string {
	if s := strings.TrimSpace(j.SalaryDisplay); s != "" {
		return s
	}
	if j.SalaryKnown() {
		return FormatEuro(j.SalaryAvg)
	}
	return notDisclosed
}

// FormatEuro prints a whole euro amount with thousands separators.
func FormatEuro(v float64) string {
	n := int64(v + 0.5)
	neg := n < 0
	if neg {
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-€" + b.String()
	}
	return "€" + b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return escapeMarkdown(s)
}

// Listing renders one record as a markdown block.
func Listing(j domain.JobRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", orDash(j.Title))
	fmt.Fprintf(&b, "**Company:** %s  \n", orDash(j.Company))
	fmt.Fprintf(&b, "**Location:** %s  \n", orDash(j.Location))
	fmt.Fprintf(&b, "**Salary:** %s  \n", escapeMarkdown(SalaryText(j)))
	fmt.Fprintf(&b, "**Date Posted:** %s\n\n", orDash(j.DatePosted))

	if u, ok := j.ApplyURL(); ok {
		fmt.Fprintf(&b, "[🔗 Apply Now](<%s>)\n", linkEscaper.Replace(u))
	} else {
		fmt.Fprintf(&b, "_%s_\n", NoApplyLink)
	}
	return b.String()
}

// Markdown renders the count header followed by every listing, separated by
// horizontal rules.
func Markdown(c *domain.Collection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Showing %d jobs\n\n", c.Len())
	for i := 0; i < c.Len(); i++ {
		b.WriteString(Listing(c.At(i)))
		b.WriteString("\n---\n\n")
	}
	return b.String()
}
