package models

import "time"

// NoPreviewImage is returned as previewImage for spots without an image
// flagged as preview.
const NoPreviewImage = "This spot doesn't have a preview image"

// User represents a registered user
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserRef is the short user shape embedded in spot and review responses
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Ref returns the short response shape for a user
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// Spot represents a rentable listing owned by a user
type Spot struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpotSummary is a spot as returned by listing endpoints, with the
// review aggregate and preview image merged in
type SpotSummary struct {
	Spot
	AvgRating    *float64 `json:"avgRating"`
	PreviewImage string   `json:"previewImage"`
}

// SpotDetails is a single spot as returned by get-by-id, with review
// aggregates, images and the owner eager-loaded
type SpotDetails struct {
	Spot
	NumReviews   int         `json:"numReviews"`
	AvgRating    *float64    `json:"avgRating"`
	PreviewImage string      `json:"previewImage"`
	SpotImages   []SpotImage `json:"SpotImages"`
	Owner        UserRef     `json:"Owner"`
}

// SpotImage represents an image attached to a spot
type SpotImage struct {
	ID      string `json:"id"`
	SpotID  string `json:"spotId"`
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// Review represents a user's review of a spot
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SpotID    string    `json:"spotId"`
	Review    string    `json:"review"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewWithUser is a review with its author eager-loaded
type ReviewWithUser struct {
	Review
	User UserRef `json:"User"`
}

// Booking represents a user's booking of a spot for a date range
type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SpotID    string    `json:"spotId"`
	StartDate Date      `json:"startDate"`
	EndDate   Date      `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingSpot is the spot shape embedded in booking responses: the spot
// without description, plus the preview image
type BookingSpot struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"ownerId"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PreviewImage string  `json:"previewImage"`
}

// BookingWithSpot is a booking with its spot eager-loaded
type BookingWithSpot struct {
	Booking
	Spot BookingSpot `json:"Spot"`
}
