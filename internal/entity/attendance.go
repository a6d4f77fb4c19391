package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Attendance struct {
	bun.BaseModel `bun:"table:attendance,alias:a"`

	ID           int       `json:"id"            bun:"id,pk,autoincrement"`
	FacultyID    int       `json:"faculty_id"    bun:"faculty_id,notnull"`
	AllocationID int       `json:"allocation_id" bun:"allocation_id,notnull,unique"`
	Date         time.Time `json:"date"          bun:"date,type:date,notnull"`
	IsPresent    bool      `json:"is_present"    bun:"is_present,notnull"`
}
