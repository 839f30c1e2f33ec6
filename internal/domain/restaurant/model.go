package restaurant

import "time"

// Restaurant is a cached place record. PlaceID keys the row to its external
// discovery source so repeated searches reuse known restaurants.
type Restaurant struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"place_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	PriceLevel int       `json:"price_level"`
	Rating     float64   `json:"rating"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Location is a search area for restaurant discovery.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// Place is a raw discovery result from the external places collaborator.
type Place struct {
	PlaceID    string
	Name       string
	Address    string
	Latitude   float64
	Longitude  float64
	PriceLevel int
	Rating     float64
	ImageURL   string
}
