// Package fsrepo persists hotel records as one JSON document per file.
//
// Mutations are pessimistic: Mutate holds the record's lock for the whole
// read-modify-write, so concurrent field updates and image uploads against
// the same id cannot lose each other's write. Creation is serialized
// store-wide because slug uniqueness and id allocation span all records.
package fsrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"staynest/internal/adapters/observability"
	"staynest/internal/domain"
	"staynest/internal/slug"
)

// counterFile persists the id high-water mark so deleted ids are never
// reused, even when the highest record on disk is the one deleted.
const counterFile = ".next_id"

// listConcurrency bounds parallel record loads in List.
const listConcurrency = 8

type Store struct {
	dir string

	createMu sync.Mutex // guards id allocation + slug check + first write
	nextID   int

	locksMu sync.Mutex
	locks   map[int]*sync.Mutex
}

var _ domain.HotelRepository = (*Store)(nil)

// New opens (or initializes) the records directory. The next id floors at
// max-on-disk + 1 in case the counter file is missing or stale.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{dir: dir, locks: make(map[int]*sync.Mutex)}

	next := 1
	if b, err := os.ReadFile(filepath.Join(dir, counterFile)); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(string(b))); err == nil && n > next {
			next = n
		}
	}
	ids, err := s.scanIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id+1 > next {
			next = id + 1
		}
	}
	s.nextID = next
	return s, nil
}

// scanIDs lists the numeric ids present on disk, sorted ascending.
func (s *Store) scanIDs() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil || id <= 0 {
			continue // temp files, counter file, strays
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *Store) lockFor(id int) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Create assigns the next id and a collision-free slug, then persists the
// record. The whole sequence runs under the create lock: the slug check and
// the write must be atomic with respect to other creations.
func (s *Store) Create(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	taken, err := s.slugSet(ctx)
	if err != nil {
		observability.ObserveStore("create", err)
		return domain.Hotel{}, err
	}
	h.ID = s.nextID
	h.Slug = slug.Unique(h.Title, func(c string) bool { return taken[c] })
	h.Normalize()

	if err := s.save(h); err != nil {
		observability.ObserveStore("create", err)
		return domain.Hotel{}, err
	}
	s.nextID++
	// Best effort: a missing counter is reconstructed from disk on open.
	_ = os.WriteFile(filepath.Join(s.dir, counterFile), []byte(strconv.Itoa(s.nextID)), 0o644)

	observability.ObserveStore("create", nil)
	return h, nil
}

// Mutate loads the record, applies fn, and re-persists, all under the
// record's lock. fn returning an error aborts without writing.
func (s *Store) Mutate(ctx context.Context, id int, fn func(*domain.Hotel) error) (domain.Hotel, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	h, err := s.load(id)
	if err != nil {
		observability.ObserveStore("mutate", err)
		return domain.Hotel{}, err
	}
	if err := fn(&h); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = id // fn must not move the record
	h.Normalize()
	if err := s.save(h); err != nil {
		observability.ObserveStore("mutate", err)
		return domain.Hotel{}, err
	}
	observability.ObserveStore("mutate", nil)
	return h, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	err := os.Remove(s.recordPath(id))
	if os.IsNotExist(err) {
		err = domain.ErrNotFound
	}
	observability.ObserveStore("delete", err)
	return err
}

func (s *Store) ByID(ctx context.Context, id int) (domain.Hotel, error) {
	return s.load(id)
}

func (s *Store) BySlug(ctx context.Context, want string) (domain.Hotel, error) {
	hotels, err := s.List(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}
	for _, h := range hotels {
		if h.Slug == want {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

// Resolve accepts either a numeric id or a slug. Numeric-looking
// identifiers are tried as an id first, then fall back to the slug scan
// (a slug can legitimately look numeric only if a title did).
func (s *Store) Resolve(ctx context.Context, identifier string) (domain.Hotel, error) {
	if id, err := strconv.Atoi(identifier); err == nil && id > 0 {
		if h, err := s.ByID(ctx, id); err == nil {
			return h, nil
		}
	}
	return s.BySlug(ctx, identifier)
}

// List returns every record in id order. Loads run concurrently with a
// bounded group; the empty store yields an empty slice, not an error.
// A record deleted between the directory scan and its load has simply
// reached its post-mutation state and is skipped, not surfaced as an error.
func (s *Store) List(ctx context.Context) ([]domain.Hotel, error) {
	ids, err := s.scanIDs()
	if err != nil {
		observability.ObserveStore("list", err)
		return nil, err
	}
	out := make([]domain.Hotel, len(ids))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			h, err := s.load(id)
			if errors.Is(err, domain.ErrNotFound) {
				return nil // deleted mid-scan, leave the zero value
			}
			if err != nil {
				return err
			}
			out[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.ObserveStore("list", err)
		return nil, err
	}
	hotels := out[:0]
	for _, h := range out {
		if h.ID != 0 {
			hotels = append(hotels, h)
		}
	}
	observability.ObserveStore("list", nil)
	return hotels, nil
}

// slugSet collects every persisted slug for the uniqueness check.
func (s *Store) slugSet(ctx context.Context) (map[string]bool, error) {
	hotels, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(hotels))
	for _, h := range hotels {
		set[h.Slug] = true
	}
	return set, nil
}
