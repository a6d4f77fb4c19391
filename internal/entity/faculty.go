package entity

import (
	"regexp"

	"github.com/uptrace/bun"
)

type Faculty struct {
	bun.BaseModel `bun:"table:faculty,alias:f"`

	ID           int     `json:"faculty_id"    bun:"faculty_id,pk,autoincrement"`
	Name         string  `json:"name"          bun:"name,notnull"`
	MobileNumber string  `json:"mobile_number" bun:"mobile_number,notnull,unique"`
	EmailID      string  `json:"email_id"      bun:"email_id,notnull,unique"`
	RFIDTag      *string `json:"rfid_tag"      bun:"rfid_tag,unique"`
	IsAdmin      bool    `json:"is_admin"      bun:"is_admin,notnull"`
}

var rfidPattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidRFIDTag reports whether tag is exactly ten decimal digits.
func ValidRFIDTag(tag string) bool {
	return rfidPattern.MatchString(tag)
}
