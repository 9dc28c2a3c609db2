package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"jobview-engine/internal/logging"
	"jobview-engine/internal/snapshot"
	"jobview-engine/internal/store"
)

const sampleCSV = `title,company,location,description,salary,salary_min,salary_max,date_posted,apply_link
Data Engineer,Acme,Berlin,Spark pipelines in Python,"€55,000 - €65,000",55000,65000,2024-05-01,https://acme.example/jobs/1
ML Engineer,Globex,Munich,PyTorch models,Confidential,,,2024-05-03,
Analytics Engineer,Acme,Berlin,dbt and SQL,,70000,,2024-05-04,
`

// run executes the CLI against a fresh data dir holding sampleCSV.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobs.csv"), []byte(sampleCSV), 0o644))
	return runIn(t, dir, append([]string{"--data", filepath.Join(dir, "jobs.csv")}, args...)...)
}

func runIn(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListMarkdown(t *testing.T) {
	out, _, err := run(t, "list", "--keyword", "python")
	require.NoError(t, err)
	assert.Contains(t, out, "## Showing 1 jobs")
	assert.Contains(t, out, "### Data Engineer")
	assert.Contains(t, out, "[🔗 Apply Now](<https://acme.example/jobs/1>)")
}

func TestListJSONWithSets(t *testing.T) {
	out, _, err := run(t, "list", "--format", "json", "--company", "Acme", "--city", "Berlin", "--salary", "known")
	require.NoError(t, err)

	var jobs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &jobs))
	require.Len(t, jobs, 2)
	assert.Equal(t, "Data Engineer", jobs[0]["title"])
	assert.Equal(t, float64(60000), jobs[0]["salaryAvg"])
	assert.Equal(t, float64(70000), jobs[1]["salaryAvg"])
}

func TestListMinSalaryAndLimit(t *testing.T) {
	out, _, err := run(t, "list", "--format", "csv", "--min-salary", "65000")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Analytics Engineer,"))

	out, _, err = run(t, "list", "--format", "csv", "-n", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestListCommaInCity(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "jobs.csv")
	in := "title,company,location\nA,\"Acme, Inc.\",\"Berlin, Germany\"\nB,Acme,Berlin\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(in), 0o644))

	out, _, err := runIn(t, dir, "--data", csvPath, "list", "--format", "json",
		"--city", "Berlin, Germany", "--company", "Acme, Inc.")
	require.NoError(t, err)

	var jobs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "A", jobs[0]["title"])
}

func TestListRejectsBadFlags(t *testing.T) {
	_, _, err := run(t, "list", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "list", "--salary", "sometimes")
	assert.ErrorContains(t, err, "unknown salary mode")

	_, _, err = run(t, "list", "--min-salary", "-1")
	assert.Error(t, err)
}

func TestMissingDataFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runIn(t, dir, "--data", filepath.Join(dir, "nope.csv"), "list")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(describe(err), "cannot load listings from "+filepath.Join(dir, "nope.csv")))
}

func TestStatsScope(t *testing.T) {
	out, _, err := run(t, "stats", "--city", "Munich")
	require.NoError(t, err)
	var all statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Equal(t, "all", string(all.Scope))
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, 1, all.Matching)
	assert.Equal(t, []float64{60000, 70000}, all.SalaryDistribution)
	assert.Empty(t, all.SkillText)

	out, _, err = run(t, "stats", "--city", "Munich", "--scope", "filtered")
	require.NoError(t, err)
	var filtered statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &filtered))
	require.Len(t, filtered.TopCompanies, 1)
	assert.Equal(t, "Globex", filtered.TopCompanies[0].Value)
	assert.Empty(t, filtered.SalaryDistribution)

	_, _, err = run(t, "stats", "--scope", "some")
	assert.ErrorContains(t, err, "invalid scope")
}

func TestReportWritesPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "jobs.pdf")
	_, _, err := run(t, "report", "--out", out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	_, _, err = run(t, "report")
	assert.Error(t, err, "--out is required")
}

func TestExport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "jobs.db")
	out, _, err := run(t, "export", "--out", dbPath, "--company", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 listings")

	d, err := store.Open(dbPath)
	require.NoError(t, err)
	defer d.Close()
	n, err := store.CountJobs(context.Background(), d.Pool)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestConfigBootstrap(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "germany_data_jobs_clean.csv"), []byte(sampleCSV), 0o644))

	out, _, err := runIn(t, dir, "list", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Analytics Engineer")

	_, err = os.Stat(filepath.Join(dir, "config.yml"))
	assert.NoError(t, err, "first run writes the user config")
}

func TestTokenCommands(t *testing.T) {
	keyring.MockInit()
	t.Setenv("JOBVIEW_ADMIN_TOKEN", "")
	dir := t.TempDir()

	out, _, err := runIn(t, dir, "token", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no admin token configured")

	out, _, err = runIn(t, dir, "token", "generate")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 48)

	out, _, err = runIn(t, dir, "token", "status")
	require.NoError(t, err)
	assert.Equal(t, "admin token configured\n", out)

	_, _, err = runIn(t, dir, "token", "set", "short")
	assert.Error(t, err)

	_, _, err = runIn(t, dir, "token", "clear")
	require.NoError(t, err)
	out, _, err = runIn(t, dir, "token", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no admin token configured")
}

func TestServeStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "jobs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	snap, err := snapshot.Open(csvPath, logging.Nop())
	require.NoError(t, err)

	opts := &rootOptions{dataDir: dir, dataFile: csvPath}
	e, err := opts.setup(newRootCmd())
	require.NoError(t, err)
	e.logger = logging.Nop()
	e.cfg.App.ReloadSeconds = 1

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, e, snap, "127.0.0.1:0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
