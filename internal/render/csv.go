package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"jobview-engine/internal/domain"
)

func csvHeader(s domain.Schema) []string {
	if s == domain.SchemaRich {
		return []string{"title", "company", "location", "description", "salary", "salary_min", "salary_max", "salary_avg", "date_posted", "apply_link"}
	}
	return []string{"title", "company", "location", "salary", "date_posted", "apply_link"}
}

func formatAmount(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// CSV writes the collection with the columns of its schema, so a filtered
// download can be loaded again.
func CSV(w io.Writer, c *domain.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(c.Schema())); err != nil {
		return err
	}
	for i := 0; i < c.Len(); i++ {
		r := c.At(i)
		var row []string
		if c.Schema() == domain.SchemaRich {
			row = []string{
				r.Title, r.Company, r.Location, r.Description, r.SalaryDisplay,
				formatAmount(r.SalaryMin), formatAmount(r.SalaryMax),
				strconv.FormatFloat(r.SalaryAvg, 'f', -1, 64),
				r.DatePosted, r.ApplyLink,
			}
		} else {
			row = []string{r.Title, r.Company, r.Location, r.SalaryDisplay, r.DatePosted, r.ApplyLink}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
