package allocation

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type GenerateRequest struct {
	Date            *string `json:"date"              form:"date"`
	TimeSlot        *string `json:"time_slot"         form:"time_slot"`
	FacultyPerVenue *int    `json:"faculty_per_venue" form:"faculty_per_venue"`
}

type GenerateResponse struct {
	Date            date.Date   `json:"date"`
	TimeSlot        string      `json:"time_slot"`
	FacultyPerVenue int         `json:"faculty_per_venue"`
	Allocations     []Allocated `json:"allocations"`
}

type Allocated struct {
	ID        int `json:"allocation_id"`
	VenueID   int `json:"venue_id"`
	FacultyID int `json:"faculty_id"`
}

type Filter struct {
	Date     *string
	TimeSlot *string
}

type GetListResponse struct {
	ID            int       `json:"allocation_id"  bun:"allocation_id"`
	Date          date.Date `json:"date"           bun:"-"`
	TimeSlot      string    `json:"time_slot"      bun:"time_slot"`
	FacultyID     int       `json:"faculty_id"     bun:"faculty_id"`
	FacultyName   string    `json:"faculty_name"   bun:"faculty_name"`
	VenueID       int       `json:"venue_id"       bun:"venue_id"`
	VenueName     string    `json:"venue_name"     bun:"venue_name"`
	VenueLocation string    `json:"venue_location" bun:"venue_location"`
	IsPresent     bool      `json:"is_present"     bun:"is_present"`

	StoredDate time.Time `json:"-" bun:"date"`
}
