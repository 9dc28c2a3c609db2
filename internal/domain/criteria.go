package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SalaryMode selects records by salary disclosure.
type SalaryMode string

const (
	SalaryAll          SalaryMode = "all"
	SalaryConfidential SalaryMode = "confidential"
	SalaryKnown        SalaryMode = "known"
)

// ParseSalaryMode accepts the mode names plus the labels the listing page
// shows ("Confidential only", "Known only").
func ParseSalaryMode(s string) (SalaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SalaryAll, nil
	case "confidential", "confidential only", "confidential_only":
		return SalaryConfidential, nil
	case "known", "known only", "known_only":
		return SalaryKnown, nil
	}
	return "", fmt.Errorf("unknown salary mode %q (want all, confidential or known)", s)
}

// FilterCriteria is the set of active filters for one query. The zero value
// matches every record.
type FilterCriteria struct {
	Keyword    string     `json:"keyword,omitempty"`
	Companies  []string   `json:"companies,omitempty"`
	Cities     []string   `json:"cities,omitempty"`
	MinSalary  float64    `json:"minSalary,omitempty" validate:"gte=0"`
	SalaryMode SalaryMode `json:"salaryMode,omitempty" validate:"omitempty,oneof=all confidential known"`
}

var validate = validator.New()

// Validate checks option ranges. It does not touch the keyword or sets:
// any text is a valid search.
func (c FilterCriteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid filter criteria: %w", err)
	}
	return nil
}

// Normalized returns a copy with the keyword trimmed, blank set entries
// dropped and an empty mode resolved to SalaryAll.
func (c FilterCriteria) Normalized() FilterCriteria {
	out := c
	out.Keyword = strings.TrimSpace(c.Keyword)
	out.Companies = compact(c.Companies)
	out.Cities = compact(c.Cities)
	if out.SalaryMode == "" {
		out.SalaryMode = SalaryAll
	}
	return out
}

// IsEmpty reports whether the criteria would pass every record.
func (c FilterCriteria) IsEmpty() bool {
	n := c.Normalized()
	return n.Keyword == "" && len(n.Companies) == 0 && len(n.Cities) == 0 &&
		n.MinSalary <= 0 && n.SalaryMode == SalaryAll
}

func compact(xs []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}
