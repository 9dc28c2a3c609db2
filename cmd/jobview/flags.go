package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobview-engine/internal/aggregate"
	"jobview-engine/internal/config"
	"jobview-engine/internal/domain"
	"jobview-engine/internal/filter"
)

// criteriaFlags mirrors the filter widgets of the listing page.
type criteriaFlags struct {
	keyword   string
	companies []string
	cities    []string
	minSalary float64
	salary    string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.keyword, "keyword", "k", "", "Case-insensitive substring to search for")
	fl.StringArrayVar(&f.companies, "company", nil, "Keep only this company (repeat for more)")
	fl.StringArrayVar(&f.cities, "city", nil, "Keep only this city (repeat for more)")
	fl.Float64Var(&f.minSalary, "min-salary", 0, "Minimum average salary in euros")
	fl.StringVar(&f.salary, "salary", "all", "Salary filter: all, confidential or known")
}

func (f *criteriaFlags) criteria() (domain.FilterCriteria, error) {
	mode, err := domain.ParseSalaryMode(f.salary)
	if err != nil {
		return domain.FilterCriteria{}, err
	}
	c := domain.FilterCriteria{
		Keyword:    f.keyword,
		Companies:  f.companies,
		Cities:     f.cities,
		MinSalary:  f.minSalary,
		SalaryMode: mode,
	}.Normalized()
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// apply filters all with the flags' criteria.
func (f *criteriaFlags) apply(all *domain.Collection) (*domain.Collection, error) {
	c, err := f.criteria()
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, c), nil
}

// scopeFlag falls back to aggregates.scope when left empty.
type scopeFlag struct {
	value string
}

func (s *scopeFlag) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.value, "scope", "", "Charts cover all listings or only the filtered ones (default aggregates.scope)")
}

func (s *scopeFlag) resolve(cfg config.Config) (aggregate.Scope, error) {
	raw := s.value
	if raw == "" {
		raw = cfg.Aggregates.Scope
	}
	if raw == "" {
		return aggregate.ScopeAll, nil
	}
	scope, ok := aggregate.ParseScope(raw)
	if !ok {
		return "", fmt.Errorf("invalid scope %q (want all or filtered)", raw)
	}
	return scope, nil
}

func aggregateOptions(cfg config.Config) aggregate.Options {
	return aggregate.Options{
		TopN:          cfg.Aggregates.TopN,
		HistogramBins: cfg.Aggregates.HistogramBins,
		SkillTerms:    cfg.Aggregates.SkillTerms,
		Stopwords:     cfg.Aggregates.Stopwords,
	}
}
