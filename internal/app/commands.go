package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"staynest/internal/domain"
)

// URL prefixes under which stored image files are served.
const (
	ImageURLPrefix     = "/images/"
	RoomImageURLPrefix = "/roomImages/"
)

// CommandService owns every mutation of the hotel store. All paths that
// write a record (field update, image attach, room image attach) go through
// repo.Mutate so they share the per-id serialization.
type CommandService struct {
	repo  domain.HotelRepository
	cache domain.Cache
}

func NewCommandService(r domain.HotelRepository, c domain.Cache) *CommandService {
	return &CommandService{repo: r, cache: c}
}

// ParseHotelID validates a route identifier that must be a numeric id.
func ParseHotelID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// Create persists a new record. Id allocation and slug assignment happen
// inside the repository's create lock; the payload arrives pre-validated.
func (s *CommandService) Create(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	h.ID = 0
	h.Slug = ""
	h.Images = []string{}
	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateList(ctx)
	return created, nil
}

// Update merges the supplied fields over the existing record. Unmarshalling
// the patch into the loaded document gives merge-patch semantics for free:
// absent fields keep their values. Id, slug and images are pinned — the
// slug never changes after creation and images belong to the upload path.
func (s *CommandService) Update(ctx context.Context, id int, patch []byte) (domain.Hotel, error) {
	updated, err := s.repo.Mutate(ctx, id, func(h *domain.Hotel) error {
		slug, images := h.Slug, h.Images
		if err := json.Unmarshal(patch, h); err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}
		h.Slug, h.Images = slug, images
		return nil
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateHotel(ctx, updated)
	return updated, nil
}

func (s *CommandService) Delete(ctx context.Context, id int) error {
	h, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateHotel(ctx, h)
	return nil
}

// AttachImages resolves the target by id or slug and appends the stored
// file names to the record's images, as root-relative URLs, in upload
// order. Returns the full merged array.
func (s *CommandService) AttachImages(ctx context.Context, identifier string, files []string) ([]string, error) {
	if identifier == "" {
		return nil, domain.ErrMissingIdentifier
	}
	target, err := s.repo.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Mutate(ctx, target.ID, func(h *domain.Hotel) error {
		for _, f := range files {
			h.Images = append(h.Images, ImageURLPrefix+f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateHotel(ctx, updated)
	return updated.Images, nil
}

// AttachRoomImage sets the stored file as the image of one room, matched by
// its slug within the resolved hotel.
func (s *CommandService) AttachRoomImage(ctx context.Context, identifier, roomSlug, file string) (string, error) {
	if identifier == "" {
		return "", domain.ErrMissingIdentifier
	}
	target, err := s.repo.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	url := RoomImageURLPrefix + file
	updated, err := s.repo.Mutate(ctx, target.ID, func(h *domain.Hotel) error {
		for i := range h.Rooms {
			if h.Rooms[i].RoomSlug == roomSlug {
				h.Rooms[i].RoomImage = url
				return nil
			}
		}
		return domain.ErrRoomNotFound
	})
	if err != nil {
		return "", err
	}
	s.invalidateHotel(ctx, updated)
	return url, nil
}

// Cache invalidation: a record is cached under both its id and its slug
// (queries key by the identifier the client used), plus the list key.
func (s *CommandService) invalidateHotel(ctx context.Context, h domain.Hotel) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "hotel:"+strconv.Itoa(h.ID))
	_ = s.cache.Del(ctx, "hotel:"+h.Slug)
	_ = s.cache.Del(ctx, "hotels:all")
}

func (s *CommandService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "hotels:all")
}
