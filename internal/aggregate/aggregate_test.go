package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobview-engine/internal/domain"
)

func cities(locs ...string) *domain.Collection {
	records := make([]domain.JobRecord, len(locs))
	for i, l := range locs {
		records[i] = domain.JobRecord{Location: l}
	}
	return domain.NewCollection(domain.SchemaRich, "", records)
}

func TestTopCitiesScenario(t *testing.T) {
	c := cities("Berlin", "Munich", "Berlin", "Hamburg", "Munich", "Berlin")
	assert.Equal(t, []Count{{Value: "Berlin", Count: 3}}, TopCities(c, 1))
}

func TestTopNTiesKeepFirstSeenOrder(t *testing.T) {
	c := cities("Hamburg", "Munich", "Berlin", "Munich", "Berlin", "", "Cologne")
	assert.Equal(t, []Count{
		{Value: "Munich", Count: 2},
		{Value: "Berlin", Count: 2},
		{Value: "Hamburg", Count: 1},
		{Value: "Cologne", Count: 1},
	}, TopCities(c, 10))
	assert.Empty(t, TopCities(c, 0))
}

func TestTopCompanies(t *testing.T) {
	c := domain.NewCollection(domain.SchemaRich, "", []domain.JobRecord{
		{Company: "Acme"}, {Company: "Globex"}, {Company: "Acme"},
	})
	assert.Equal(t, []Count{{Value: "Acme", Count: 2}, {Value: "Globex", Count: 1}}, TopCompanies(c, 5))
}

func TestSalaryDistributionSkipsUnknown(t *testing.T) {
	c := domain.NewCollection(domain.SchemaRich, "", []domain.JobRecord{
		{SalaryAvg: 60000}, {SalaryAvg: 0}, {SalaryAvg: 45000},
	})
	assert.Equal(t, []float64{60000, 45000}, SalaryDistribution(c))
}

func TestSkillText(t *testing.T) {
	c := domain.NewCollection(domain.SchemaRich, "", []domain.JobRecord{
		{Description: "Python SQL"}, {}, {Description: "Spark"},
	})
	assert.Equal(t, "Python SQL Spark", SkillText(c))
	assert.Equal(t, "", SkillText(cities("Berlin")))
}

func TestAggregateEmptyCollection(t *testing.T) {
	a := Aggregate(domain.NewCollection(domain.SchemaRich, "", nil), DefaultOptions())

	assert.NotNil(t, a.SalaryDistribution)
	assert.Empty(t, a.SalaryDistribution)
	assert.Empty(t, a.SalaryHistogram)
	assert.Empty(t, a.TopCities)
	assert.Empty(t, a.TopCompanies)
	assert.Empty(t, a.SkillTerms)
	assert.Equal(t, "", a.SkillText)
	assert.Equal(t, Summary{}, a.Summary)
}

func TestAggregate(t *testing.T) {
	c := domain.NewCollection(domain.SchemaRich, "", []domain.JobRecord{
		{Company: "Acme", Location: "Berlin", SalaryAvg: 50000, Description: "Python and SQL"},
		{Company: "Globex", Location: "Munich", SalaryAvg: 0, Description: "python, Spark"},
		{Company: "Acme", Location: "Berlin", SalaryAvg: 70000},
	})
	a := Aggregate(c, Options{TopN: 1, HistogramBins: 2, SkillTerms: 2})

	assert.Equal(t, []float64{50000, 70000}, a.SalaryDistribution)
	assert.Equal(t, []Count{{Value: "Berlin", Count: 2}}, a.TopCities)
	assert.Equal(t, []Count{{Value: "Acme", Count: 2}}, a.TopCompanies)
	assert.Equal(t, "Python and SQL python, Spark", a.SkillText)
	assert.Equal(t, []Count{{Value: "python", Count: 2}, {Value: "sql", Count: 1}}, a.SkillTerms)
	require.Len(t, a.SalaryHistogram, 2)
	assert.Equal(t, Summary{Total: 3, Known: 2, Unknown: 1, MeanSalary: 60000, MedianSalary: 60000}, a.Summary)
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{10, 20, 30, 40}, 3)
	require.Len(t, bins, 3)
	assert.Equal(t, 10.0, bins[0].Low)
	assert.Equal(t, 40.0, bins[2].High)
	assert.Equal(t, []int{1, 1, 2}, []int{bins[0].Count, bins[1].Count, bins[2].Count})

	single := Histogram([]float64{5, 5}, 10)
	assert.Equal(t, []Bin{{Low: 5, High: 5, Count: 2}}, single)

	assert.Empty(t, Histogram(nil, 10))
	assert.Empty(t, Histogram([]float64{1, 2}, 0))
}

func TestSummarizeMedianOdd(t *testing.T) {
	c := domain.NewCollection(domain.SchemaRich, "", []domain.JobRecord{
		{SalaryAvg: 30}, {SalaryAvg: 10}, {SalaryAvg: 20},
	})
	assert.Equal(t, 20.0, Summarize(c).MedianSalary)
}

func TestSkillTerms(t *testing.T) {
	text := "We use Python, C++ and node.js. Python is great; 2024 hiring für Spark. python!"
	terms := SkillTerms(text, 4, []string{"great"})
	assert.Equal(t, []Count{
		{Value: "python", Count: 3},
		{Value: "use", Count: 1},
		{Value: "c++", Count: 1},
		{Value: "node.js", Count: 1},
	}, terms)

	assert.Empty(t, SkillTerms("", 10, nil))
	assert.Empty(t, SkillTerms("python", 0, nil))
}

func TestScope(t *testing.T) {
	all := cities("Berlin", "Munich")
	filtered := cities("Berlin")

	s, ok := ParseScope(" Filtered ")
	require.True(t, ok)
	assert.Same(t, filtered, s.Pick(all, filtered))
	assert.Same(t, all, ScopeAll.Pick(all, filtered))

	_, ok = ParseScope("everything")
	assert.False(t, ok)
}
