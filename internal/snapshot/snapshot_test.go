package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/listing"
)

const header = "title,company,location,salary_avg\n"

func writeCSV(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(header+body), 0o644))
}

func TestOpenAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	writeCSV(t, path, "Data Engineer,Acme,Berlin,60000\n")

	s, err := Open(path, nil)
	require.NoError(t, err)
	first := s.Current()
	assert.Equal(t, 1, first.Len())

	writeCSV(t, path, "Data Engineer,Acme,Berlin,60000\nML Engineer,Globex,Munich,0\n")
	st, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Collection.Len())
	assert.Equal(t, 2, s.Current().Len())

	// a reader holding the old snapshot keeps seeing it
	assert.Equal(t, 1, first.Len())
}

func TestOpenMissingFileIsDataSourceError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"), nil)
	require.Error(t, err)
	assert.True(t, listing.IsDataSourceError(err))
}

func TestReloadFailureKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	writeCSV(t, path, "Data Engineer,Acme,Berlin,60000\n")

	s, err := Open(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("nothing,useful\n"), 0o644))
	_, err = s.Reload(context.Background())
	require.Error(t, err)
	assert.True(t, listing.IsDataSourceError(err))
	assert.Equal(t, 1, s.Current().Len())
}

func TestReloadIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	writeCSV(t, path, "Data Engineer,Acme,Berlin,60000\n")

	s, err := Open(path, nil)
	require.NoError(t, err)

	changed, err := s.ReloadIfChanged(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)

	writeCSV(t, path, "Data Engineer,Acme,Berlin,60000\nML Engineer,Globex,Munich,0\n")
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err = s.ReloadIfChanged(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, s.Current().Len())
}

func TestConcurrentReadersAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	writeCSV(t, path, "Data Engineer,Acme,Berlin,60000\n")

	s, err := Open(path, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Reload(context.Background())
		}()
		go func() {
			defer wg.Done()
			assert.Equal(t, 1, s.Current().Len())
		}()
	}
	wg.Wait()
}

func TestFromCollection(t *testing.T) {
	c := domain.NewCollection(domain.SchemaRich, "inline.csv", []domain.JobRecord{{Title: "A"}})
	s := FromCollection(c, nil)
	assert.Same(t, c, s.Current())
	assert.Equal(t, "inline.csv", s.Path())
}
