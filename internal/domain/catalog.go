package domain

import "time"

type TourPackage struct {
	ID               string    `json:"id"`
	PlaceName        string    `json:"placeName"`
	City             string    `json:"city"`
	PriceRange       string    `json:"priceRange"`
	TripCategoryID   string    `json:"tripCategoryId"`
	TripCategoryName string    `json:"tripCategoryName"`
	ImageURLs        []string  `json:"imageUrls"`
	Overview         string    `json:"overview"`
	TourHighlights   []string  `json:"tourHighlights"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Destination struct {
	ID               string    `json:"id"`
	PlaceName        string    `json:"placeName"`
	City             string    `json:"city"`
	TripCategoryID   string    `json:"tripCategoryId"`
	TripCategoryName string    `json:"tripCategoryName"`
	ImageURL         string    `json:"imageUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type TripCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
