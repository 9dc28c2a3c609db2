package snapshot

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/singleflight"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/listing"
	"jobview-engine/internal/logging"
)

// State is one loaded version of the listings file.
type State struct {
	Collection *domain.Collection
	LoadedAt   time.Time
	ModTime    time.Time
	Size       int64
}

// Store holds the process-wide listings snapshot. Readers never block;
// reloads build a fresh collection and swap it in whole.
type Store struct {
	path   string
	loader listing.Loader
	logger *log.Logger

	cur   atomic.Pointer[State]
	group singleflight.Group
}

// Open performs the initial load. A failure here is a DataSourceError and
// the caller should stop.
func Open(path string, logger *log.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		loader: listing.Loader{Logger: logger},
		logger: logging.OrNop(logger),
	}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromCollection wraps an already loaded collection. Reload re-reads the
// collection's source.
func FromCollection(c *domain.Collection, logger *log.Logger) *Store {
	s := &Store{
		path:   c.Source(),
		loader: listing.Loader{Logger: logger},
		logger: logging.OrNop(logger),
	}
	s.cur.Store(&State{Collection: c, LoadedAt: time.Now()})
	return s
}

func (s *Store) Path() string { return s.path }

// Current returns the active collection.
func (s *Store) Current() *domain.Collection {
	if st := s.State(); st != nil {
		return st.Collection
	}
	return nil
}

func (s *Store) State() *State {
	return s.cur.Load()
}

// Reload re-reads the file and swaps the snapshot. Concurrent callers share
// one read. On failure the previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) (*State, error) {
	ch := s.group.DoChan("reload", func() (any, error) {
		return s.load()
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error().Err(res.Err).Str("source", s.path).Msg("reload failed, keeping previous snapshot")
			return nil, res.Err
		}
		return res.Val.(*State), nil
	}
}

// ReloadIfChanged reloads only when the file's size or modification time
// differ from the active snapshot.
func (s *Store) ReloadIfChanged(ctx context.Context) (bool, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return false, &listing.DataSourceError{Source: s.path, Err: err}
	}
	if st := s.State(); st != nil && fi.ModTime().Equal(st.ModTime) && fi.Size() == st.Size {
		return false, nil
	}
	if _, err := s.Reload(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) load() (*State, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return nil, &listing.DataSourceError{Source: s.path, Err: err}
	}
	c, err := s.loader.Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	st := &State{
		Collection: c,
		LoadedAt:   time.Now(),
		ModTime:    fi.ModTime(),
		Size:       fi.Size(),
	}
	s.cur.Store(st)
	return st, nil
}
