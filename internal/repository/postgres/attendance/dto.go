package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

// Export formats accepted by GetList.
const (
	ExportNone = ""
	ExportXLSX = "xlsx"
	ExportPDF  = "pdf"
)

// NoVenue stands in for the venue name when an allocation does not resolve.
const NoVenue = "N/A"

type Filter struct {
	Date   *string
	Export *string
}

type GetListResponse struct {
	ID           int       `json:"id"            bun:"id"`
	FacultyID    int       `json:"faculty_id"    bun:"faculty_id"`
	FacultyName  string    `json:"faculty_name"  bun:"faculty_name"`
	RFIDTag      *string   `json:"rfid_tag"      bun:"rfid_tag"`
	AllocationID int       `json:"allocation_id" bun:"allocation_id"`
	VenueName    string    `json:"venue_name"    bun:"venue_name"`
	TimeSlot     *string   `json:"time_slot"     bun:"time_slot"`
	Date         date.Date `json:"date"          bun:"-"`
	IsPresent    bool      `json:"is_present"    bun:"is_present"`

	StoredDate time.Time `json:"-" bun:"date"`
}

type MarkRequest struct {
	AllocationID *int    `json:"allocation_id" form:"allocation_id"`
	Date         *string `json:"date"          form:"date"`
	RFIDTag      *string `json:"rfid_tag"      form:"rfid_tag"`
}

type MarkResponse struct {
	ID           int       `json:"id"`
	AllocationID int       `json:"allocation_id"`
	FacultyID    int       `json:"faculty_id"`
	Date         date.Date `json:"date"`
	IsPresent    bool      `json:"is_present"`
}
