package listing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/phuslu/log"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/logging"
	"jobview-engine/internal/textutil"
)

var requiredColumns = []string{"title", "company", "location"}

// Loader reads listing tables. The zero value is ready to use and logs
// nothing.
type Loader struct {
	Logger *log.Logger
}

// Load reads the CSV at path with a silent Loader.
func Load(path string) (*domain.Collection, error) {
	return Loader{}.Load(path)
}

// Read reads a CSV stream with a silent Loader. name is used in errors.
func Read(r io.Reader, name string) (*domain.Collection, error) {
	return Loader{}.Read(r, name)
}

func (l Loader) Load(path string) (*domain.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Source: path, Err: err}
	}
	defer f.Close()
	return l.Read(f, path)
}

func (l Loader) Read(r io.Reader, name string) (*domain.Collection, error) {
	logger := logging.OrNop(l.Logger)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataSourceError{Source: name, Err: ErrEmptySource}
	}
	if err != nil {
		return nil, &DataSourceError{Source: name, Err: fmt.Errorf("read header: %w", err)}
	}

	cols := indexColumns(header)
	if missing := cols.missing(requiredColumns); len(missing) > 0 {
		return nil, &DataSourceError{
			Source: name,
			Err:    fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", ")),
		}
	}

	schema := domain.SchemaBasic
	if cols.has("salary_avg") || cols.has("description") {
		schema = domain.SchemaRich
	}

	for _, d := range cols.defaults() {
		logger.Debug().Str("source", name).Str("column", d.Column).Str("default", d.Value).Msg("optional column missing, backfilled")
	}

	var records []domain.JobRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataSourceError{Source: name, Err: fmt.Errorf("read rows: %w", err)}
		}
		if blank(row) {
			continue
		}
		records = append(records, cols.record(row))
	}

	logger.Info().
		Str("source", name).
		Str("schema", schema.String()).
		Int("rows", len(records)).
		Msg("listings loaded")

	return domain.NewCollection(schema, name, records), nil
}

// columns maps normalized header names to their position. The first of any
// duplicated header wins.
type columns map[string]int

func indexColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		key := textutil.NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func (c columns) has(name string) bool {
	_, ok := c[name]
	return ok
}

func (c columns) missing(names []string) []string {
	var out []string
	for _, n := range names {
		if !c.has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (c columns) defaults() []SchemaDefault {
	var out []SchemaDefault
	if !c.has("apply_link") {
		out = append(out, SchemaDefault{Column: "apply_link", Value: `""`})
	}
	if !c.has("salary_avg") {
		v := "0"
		if c.has("salary_min") || c.has("salary_max") {
			v = "mean(salary_min, salary_max)"
		}
		out = append(out, SchemaDefault{Column: "salary_avg", Value: v})
	}
	return out
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (c columns) text(row []string, name string) string {
	return nullText(textutil.CleanText(c.get(row, name)))
}

func (c columns) amount(row []string, name string) *float64 {
	v, ok := parseAmount(c.get(row, name))
	if !ok {
		return nil
	}
	return &v
}

func (c columns) record(row []string) domain.JobRecord {
	rec := domain.JobRecord{
		Title:         c.text(row, "title"),
		Company:       c.text(row, "company"),
		Location:      c.text(row, "location"),
		Description:   nullText(textutil.StripHTML(c.get(row, "description"))),
		SalaryDisplay: c.text(row, "salary"),
		SalaryMin:     c.amount(row, "salary_min"),
		SalaryMax:     c.amount(row, "salary_max"),
		DatePosted:    c.text(row, "date_posted"),
		ApplyLink:     c.text(row, "apply_link"),
	}
	if c.has("salary_avg") {
		if v := c.amount(row, "salary_avg"); v != nil {
			rec.SalaryAvg = *v
		}
	} else {
		rec.SalaryAvg = deriveAverage(rec.SalaryMin, rec.SalaryMax)
	}
	return rec
}

// nullText maps the spelling pandas writes for a missing cell to "". Other
// words such as "None" are real values and are kept.
func nullText(s string) string {
	if s == "NaN" || s == "nan" {
		return ""
	}
	return s
}

func blank(row []string) bool {
	return !slices.ContainsFunc(row, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// Options lists the distinct companies and cities of a collection, sorted,
// for building choice widgets.
func Options(c *domain.Collection) (companies, cities []string) {
	seenCo := map[string]bool{}
	seenCi := map[string]bool{}
	for _, r := range c.Records() {
		if r.Company != "" && !seenCo[r.Company] {
			seenCo[r.Company] = true
			companies = append(companies, r.Company)
		}
		if r.Location != "" && !seenCi[r.Location] {
			seenCi[r.Location] = true
			cities = append(cities, r.Location)
		}
	}
	slices.Sort(companies)
	slices.Sort(cities)
	return companies, cities
}
