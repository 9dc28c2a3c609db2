package domain

import (
	"net/url"
	"slices"
	"strings"
)

// ConfidentialSalary is the salary_display value scrapers emit when a posting
// does not disclose pay.
const ConfidentialSalary = "Confidential"

// Schema tells which source layout a collection was loaded from. The filter
// pipeline picks its keyword fields and salary semantics from it.
type Schema int

const (
	// SchemaBasic: title, company, location, salary, date_posted, apply_link.
	SchemaBasic Schema = iota
	// SchemaRich adds description and numeric salary columns.
	SchemaRich
)

func (s Schema) String() string {
	if s == SchemaRich {
		return "rich"
	}
	return "basic"
}

// JobRecord is one row of the listings table. Empty strings stand for null
// text; nil pointers for null numbers.
type JobRecord struct {
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Description   string   `json:"description,omitempty"`
	SalaryDisplay string   `json:"salary,omitempty"`
	SalaryMin     *float64 `json:"salaryMin,omitempty"`
	SalaryMax     *float64 `json:"salaryMax,omitempty"`
	SalaryAvg     float64  `json:"salaryAvg"`
	DatePosted    string   `json:"datePosted,omitempty"`
	ApplyLink     string   `json:"applyLink"`
}

// SalaryKnown reports whether the record carries a disclosed salary.
func (j JobRecord) SalaryKnown() bool {
	return j.SalaryAvg > 0
}

// IsConfidential reports whether the salary_display is the sentinel.
func (j JobRecord) IsConfidential() bool {
	return strings.TrimSpace(j.SalaryDisplay) == ConfidentialSalary
}

// ApplyURL returns the apply link when it is a usable absolute http(s) URL.
func (j JobRecord) ApplyURL() (string, bool) {
	raw := strings.TrimSpace(j.ApplyLink)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return raw, true
}

// Collection is an ordered, read-only set of records. Every accessor hands
// out copies so a loaded snapshot can be shared between goroutines.
type Collection struct {
	schema  Schema
	source  string
	records []JobRecord
}

// NewCollection copies records into a new collection.
func NewCollection(schema Schema, source string, records []JobRecord) *Collection {
	return &Collection{
		schema:  schema,
		source:  source,
		records: slices.Clone(records),
	}
}

func (c *Collection) Schema() Schema {
	if c == nil {
		return SchemaBasic
	}
	return c.schema
}

// Source is the path or name the collection was read from.
func (c *Collection) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the i-th record by value.
func (c *Collection) At(i int) JobRecord {
	return c.records[i]
}

// Records returns a copy of the records in source order.
func (c *Collection) Records() []JobRecord {
	if c == nil {
		return nil
	}
	return slices.Clone(c.records)
}

// Derive builds a collection of the same schema and source. It takes
// ownership of records; callers must not modify the slice afterwards.
func (c *Collection) Derive(records []JobRecord) *Collection {
	return &Collection{schema: c.Schema(), source: c.Source(), records: records}
}
