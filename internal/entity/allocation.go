package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Daily periods a faculty member can be allotted to a venue for.
const (
	TimeSlotMorning   = "08:00-12:00"
	TimeSlotAfternoon = "12:00-15:00"
)

var TimeSlots = []string{TimeSlotMorning, TimeSlotAfternoon}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Day truncates t to midnight UTC, the form dates are stored and compared in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type VenueAllocation struct {
	bun.BaseModel `bun:"table:venue_allocations,alias:va"`

	ID        int       `json:"allocation_id" bun:"allocation_id,pk,autoincrement"`
	FacultyID int       `json:"faculty_id"    bun:"faculty_id,notnull"`
	VenueID   int       `json:"venue_id"      bun:"venue_id,notnull"`
	Date      time.Time `json:"date"          bun:"date,type:date,notnull"`
	TimeSlot  string    `json:"time_slot"     bun:"time_slot,notnull"`
}

// AllocationBatch is the single row kept per (date, time_slot). Generation
// upserts it first, which serializes concurrent generations of the same key.
type AllocationBatch struct {
	bun.BaseModel `bun:"table:allocation_batches,alias:ab"`

	ID              int       `json:"id"                bun:"id,pk,autoincrement"`
	Date            time.Time `json:"date"              bun:"date,type:date,notnull,unique:allocation_batch_key"`
	TimeSlot        string    `json:"time_slot"         bun:"time_slot,notnull,unique:allocation_batch_key"`
	FacultyPerVenue int       `json:"faculty_per_venue" bun:"faculty_per_venue,notnull"`
	GeneratedAt     time.Time `json:"generated_at"      bun:"generated_at,notnull"`
	GeneratedBy     int       `json:"generated_by"      bun:"generated_by,notnull"`
}
