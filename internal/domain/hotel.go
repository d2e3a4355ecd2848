package domain

// Hotel is the persisted listing document, one JSON file per record.
// Field order matters: encoding/json emits keys in declaration order and
// consumers assert the exact key order of the serialized record.
type Hotel struct {
	ID            int      `json:"id"`
	Slug          string   `json:"slug"`
	Images        []string `json:"images"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	GuestCount    int      `json:"guestCount"`
	BedroomCount  int      `json:"bedroomCount"`
	BathroomCount int      `json:"bathroomCount"`
	Amenities     []string `json:"amenities"`
	HostInfo      string   `json:"hostInfo"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Rooms         []Room   `json:"rooms"`
}

// Normalize replaces nil sequences with empty ones so older/partial records
// serialize as [] instead of null. Records written before image upload
// support may lack the images field entirely.
func (h *Hotel) Normalize() {
	if h.Images == nil {
		h.Images = []string{}
	}
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	if h.Rooms == nil {
		h.Rooms = []Room{}
	}
}
