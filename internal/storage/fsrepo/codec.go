package fsrepo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"staynest/internal/domain"
)

// recordPath returns the backing file for an id. The file name is derived
// solely from the id; the slug is an index, not a storage key, so a title
// edit never renames the file.
func (s *Store) recordPath(id int) string {
	return filepath.Join(s.dir, strconv.Itoa(id)+".json")
}

func (s *Store) load(id int) (domain.Hotel, error) {
	b, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	var h domain.Hotel
	if err := json.Unmarshal(b, &h); err != nil {
		return domain.Hotel{}, fmt.Errorf("decode record %d: %w", id, err)
	}
	h.Normalize()
	return h, nil
}

// save overwrites the record file as a whole. It writes to a temp file in
// the same directory and renames it into place, so a failed write never
// truncates the previous version and readers observe either the old or the
// new document, never a partial one.
func (s *Store) save(h domain.Hotel) error {
	b, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %d: %w", h.ID, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".record-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.recordPath(h.ID)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
