// Package drafts keeps unsent form input per viewer, in memory, expiring
// after a TTL.
package drafts

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/emilythestrangee/stackit/backend/internal/metrics"
)

type Draft struct {
	ID          string    `json:"id"`
	Form        string    `json:"form"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Content     string    `json:"content,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

type Store struct {
	cache   *cache.Cache
	metrics *metrics.Metrics
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a store whose drafts live for ttl. Expired drafts are swept
// every cleanup interval until Close; zero disables the sweep and expired
// drafts are then dropped lazily.
func New(ttl, cleanup time.Duration, m *metrics.Metrics) *Store {
	s := &Store{
		cache:   cache.New(ttl, 0),
		metrics: m,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if cleanup > 0 {
		go s.janitor(cleanup)
	} else {
		close(s.done)
	}
	return s
}

func (s *Store) janitor(interval time.Duration) {
	defer close(s.done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.cache.DeleteExpired()
		}
	}
}

// Close stops the sweep and waits for it to exit. Drafts stay readable.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
}

func key(viewer, form string) string {
	return viewer + "\x00" + form
}

// Save stores d for the viewer's form, replacing any earlier draft. The
// draft keeps its id across saves.
func (s *Store) Save(viewer, form string, d Draft) Draft {
	k := key(viewer, form)
	if prev, ok := s.cache.Get(k); ok {
		d.ID = prev.(Draft).ID
	} else {
		d.ID = uuid.NewString()
	}
	d.Form = form
	d.SavedAt = s.now()
	d.Tags = append([]string(nil), d.Tags...)

	s.cache.Set(k, d, cache.DefaultExpiration)
	s.metrics.Draft("save")
	return d
}

func (s *Store) Get(viewer, form string) (Draft, bool) {
	v, ok := s.cache.Get(key(viewer, form))
	if !ok {
		return Draft{}, false
	}
	s.metrics.Draft("load")
	return v.(Draft), true
}

// Discard drops the draft, typically after a successful submit.
func (s *Store) Discard(viewer, form string) {
	k := key(viewer, form)
	if _, ok := s.cache.Get(k); !ok {
		return
	}
	s.cache.Delete(k)
	s.metrics.Draft("discard")
}

// Len is the number of live drafts.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
