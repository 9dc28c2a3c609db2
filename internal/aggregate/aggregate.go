package aggregate

import (
	"math"
	"slices"
	"strings"

	"jobview-engine/internal/domain"
)

// Scope decides which collection charts summarize.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeFiltered Scope = "filtered"
)

func ParseScope(s string) (Scope, bool) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeAll:
		return ScopeAll, true
	case ScopeFiltered:
		return ScopeFiltered, true
	}
	return "", false
}

// Pick returns the collection the scope refers to.
func (s Scope) Pick(all, filtered *domain.Collection) *domain.Collection {
	if s == ScopeFiltered {
		return filtered
	}
	return all
}

// Count is one bar of a top-N chart.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Bin is one bar of the salary histogram, covering [Low, High).
// The last bin also includes High.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Options sizes the chart data.
type Options struct {
	TopN          int
	HistogramBins int
	SkillTerms    int
	Stopwords     []string
}

func DefaultOptions() Options {
	return Options{TopN: 10, HistogramBins: 20, SkillTerms: 50}
}

// Summary carries the headline numbers shown above the charts.
type Summary struct {
	Total        int     `json:"total"`
	Known        int     `json:"known"`
	Unknown      int     `json:"unknown"`
	MeanSalary   float64 `json:"meanSalary"`
	MedianSalary float64 `json:"medianSalary"`
}

type Aggregates struct {
	Summary            Summary   `json:"summary"`
	SalaryDistribution []float64 `json:"salaryDistribution"`
	SalaryHistogram    []Bin     `json:"salaryHistogram"`
	TopCities          []Count   `json:"topCities"`
	TopCompanies       []Count   `json:"topCompanies"`
	SkillText          string    `json:"skillText"`
	SkillTerms         []Count   `json:"skillTerms"`
}

// Aggregate computes every chart input over c. An empty collection yields
// empty (non-nil) lists and an empty skill text.
func Aggregate(c *domain.Collection, opts Options) Aggregates {
	dist := SalaryDistribution(c)
	text := SkillText(c)
	return Aggregates{
		Summary:            Summarize(c),
		SalaryDistribution: dist,
		SalaryHistogram:    Histogram(dist, opts.HistogramBins),
		TopCities:          TopCities(c, opts.TopN),
		TopCompanies:       TopCompanies(c, opts.TopN),
		SkillText:          text,
		SkillTerms:         SkillTerms(text, opts.SkillTerms, opts.Stopwords),
	}
}

// SalaryDistribution returns every salary_avg above zero, in collection order.
func SalaryDistribution(c *domain.Collection) []float64 {
	out := []float64{}
	for i := 0; i < c.Len(); i++ {
		if v := c.At(i).SalaryAvg; v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func TopCities(c *domain.Collection, n int) []Count {
	return topN(c, n, func(j domain.JobRecord) string { return j.Location })
}

func TopCompanies(c *domain.Collection, n int) []Count {
	return topN(c, n, func(j domain.JobRecord) string { return j.Company })
}

// topN counts values and keeps the n most frequent. Ties keep the order in
// which values were first seen. Empty values are not counted.
func topN(c *domain.Collection, n int, key func(domain.JobRecord) string) []Count {
	out := []Count{}
	if n <= 0 {
		return out
	}

	index := map[string]int{}
	for i := 0; i < c.Len(); i++ {
		v := key(c.At(i))
		if v == "" {
			continue
		}
		if pos, ok := index[v]; ok {
			out[pos].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}

	slices.SortStableFunc(out, func(a, b Count) int { return b.Count - a.Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SkillText joins every non-empty description with a single space.
func SkillText(c *domain.Collection) string {
	var parts []string
	for i := 0; i < c.Len(); i++ {
		if d := c.At(i).Description; d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, " ")
}

// Histogram splits values into bins of equal width between their min and
// max. All-equal values land in a single bin.
func Histogram(values []float64, bins int) []Bin {
	out := []Bin{}
	if len(values) == 0 || bins <= 0 {
		return out
	}

	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		return append(out, Bin{Low: lo, High: hi, Count: len(values)})
	}

	width := (hi - lo) / float64(bins)
	for i := 0; i < bins; i++ {
		out = append(out, Bin{Low: lo + float64(i)*width, High: lo + float64(i+1)*width})
	}
	out[bins-1].High = hi

	for _, v := range values {
		i := int(math.Floor((v - lo) / width))
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Summarize counts records with and without a salary_avg. The mean and median
// cover disclosed salaries only.
func Summarize(c *domain.Collection) Summary {
	s := Summary{Total: c.Len()}
	dist := SalaryDistribution(c)
	s.Known = len(dist)
	s.Unknown = s.Total - s.Known
	if len(dist) == 0 {
		return s
	}

	sum := 0.0
	for _, v := range dist {
		sum += v
	}
	s.MeanSalary = sum / float64(len(dist))

	sorted := slices.Clone(dist)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		s.MedianSalary = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		s.MedianSalary = sorted[mid]
	}
	return s
}
