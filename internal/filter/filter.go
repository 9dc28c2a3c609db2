package filter

import (
	"strings"

	"jobview-engine/internal/domain"
)

// Reason names the predicate that dropped a record.
type Reason string

const (
	ReasonKeyword    Reason = "keyword"
	ReasonCompany    Reason = "company"
	ReasonCity       Reason = "city"
	ReasonSalaryMode Reason = "salary_mode"
	ReasonMinSalary  Reason = "min_salary"
)

// Matcher is a compiled FilterCriteria for one schema.
type Matcher struct {
	schema    domain.Schema
	keyword   string
	companies map[string]struct{}
	cities    map[string]struct{}
	mode      domain.SalaryMode
	minSalary float64
}

func Compile(schema domain.Schema, criteria domain.FilterCriteria) Matcher {
	c := criteria.Normalized()
	return Matcher{
		schema:    schema,
		keyword:   strings.ToLower(c.Keyword),
		companies: toSet(c.Companies),
		cities:    toSet(c.Cities),
		mode:      c.SalaryMode,
		minSalary: c.MinSalary,
	}
}

// Apply returns the records of c that pass every predicate, in their
// original order. c itself is never modified.
func Apply(c *domain.Collection, criteria domain.FilterCriteria) *domain.Collection {
	m := Compile(c.Schema(), criteria)
	out := make([]domain.JobRecord, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		rec := c.At(i)
		if keep, _ := m.ShouldKeep(rec); keep {
			out = append(out, rec)
		}
	}
	return c.Derive(out)
}

// ShouldKeep runs the predicates in order and reports the first one that
// rejects the record.
func (m Matcher) ShouldKeep(j domain.JobRecord) (keep bool, reason Reason) {
	// 1) Keyword
	if !m.matchesKeyword(j) {
		return false, ReasonKeyword
	}

	// 2) Company set
	if !inSet(m.companies, j.Company) {
		return false, ReasonCompany
	}

	// 3) City set
	if !inSet(m.cities, j.Location) {
		return false, ReasonCity
	}

	// 4) Salary mode
	if !m.passesSalaryMode(j) {
		return false, ReasonSalaryMode
	}

	// 5) Minimum salary, rich sources only
	if m.schema == domain.SchemaRich && j.SalaryAvg < m.minSalary {
		return false, ReasonMinSalary
	}

	return true, ""
}

func (m Matcher) matchesKeyword(j domain.JobRecord) bool {
	if m.keyword == "" {
		return true
	}

	fields := []string{j.Title, j.Description}
	if m.schema == domain.SchemaBasic {
		fields = []string{j.Title, j.Company, j.Location}
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), m.keyword) {
			return true
		}
	}
	return false
}

func (m Matcher) passesSalaryMode(j domain.JobRecord) bool {
	var confidential bool
	if m.schema == domain.SchemaRich {
		confidential = !j.SalaryKnown()
	} else {
		confidential = j.IsConfidential()
	}

	switch m.mode {
	case domain.SalaryConfidential:
		return confidential
	case domain.SalaryKnown:
		return !confidential
	default:
		return true
	}
}

func toSet(xs []string) map[string]struct{} {
	if len(xs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		set[x] = struct{}{}
	}
	return set
}

// inSet passes everything when the set is empty.
func inSet(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}
