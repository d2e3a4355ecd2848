package domain

type Room struct {
	HotelSlug    string `json:"hotelSlug"`
	RoomSlug     string `json:"roomSlug"`
	RoomImage    string `json:"roomImage"`
	RoomTitle    string `json:"roomTitle"`
	BedroomCount int    `json:"bedroomCount"`
}
