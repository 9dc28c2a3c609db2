package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyURL(t *testing.T) {
	tests := []struct {
		name string
		link string
		ok   bool
	}{
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"https", "https://jobs.example.com/1", true},
		{"http", "http://jobs.example.com/1", true},
		{"relative", "/apply/1", false},
		{"javascript", "javascript:alert(1)", false},
		{"nan", "nan", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := JobRecord{ApplyLink: tt.link}.ApplyURL()
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSalaryFlags(t *testing.T) {
	assert.True(t, JobRecord{SalaryDisplay: " Confidential "}.IsConfidential())
	assert.False(t, JobRecord{SalaryDisplay: "confidential"}.IsConfidential())
	assert.False(t, JobRecord{SalaryAvg: 0}.SalaryKnown())
	assert.True(t, JobRecord{SalaryAvg: 1}.SalaryKnown())
}

func TestCollectionIsCopied(t *testing.T) {
	src := []JobRecord{{Title: "A"}, {Title: "B"}}
	c := NewCollection(SchemaRich, "jobs.csv", src)
	src[0].Title = "changed"

	assert.Equal(t, "A", c.At(0).Title)

	out := c.Records()
	out[1].Title = "changed"
	assert.Equal(t, "B", c.At(1).Title)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, SchemaRich, c.Schema())
	assert.Equal(t, "jobs.csv", c.Source())
}

func TestNilCollection(t *testing.T) {
	var c *Collection
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Records())
	assert.Equal(t, SchemaBasic, c.Schema())
}

func TestParseSalaryMode(t *testing.T) {
	for in, want := range map[string]SalaryMode{
		"":                  SalaryAll,
		"All":               SalaryAll,
		"Confidential only": SalaryConfidential,
		"known":             SalaryKnown,
		"Known only":        SalaryKnown,
	} {
		got, err := ParseSalaryMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSalaryMode("sometimes")
	assert.Error(t, err)
}

func TestCriteriaValidate(t *testing.T) {
	assert.NoError(t, FilterCriteria{}.Validate())
	assert.NoError(t, FilterCriteria{MinSalary: 50000, SalaryMode: SalaryKnown}.Validate())
	assert.Error(t, FilterCriteria{MinSalary: -1}.Validate())
	assert.Error(t, FilterCriteria{SalaryMode: "bogus"}.Validate())
}

func TestCriteriaNormalized(t *testing.T) {
	c := FilterCriteria{
		Keyword:   "  engineer ",
		Companies: []string{"Acme", " ", "Acme", "Globex"},
		Cities:    []string{""},
	}.Normalized()

	assert.Equal(t, "engineer", c.Keyword)
	assert.Equal(t, []string{"Acme", "Globex"}, c.Companies)
	assert.Empty(t, c.Cities)
	assert.Equal(t, SalaryAll, c.SalaryMode)

	assert.True(t, FilterCriteria{Keyword: " ", Cities: []string{" "}}.IsEmpty())
	assert.False(t, FilterCriteria{MinSalary: 1}.IsEmpty())
}
