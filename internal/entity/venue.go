package entity

import (
	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID       int    `json:"venue_id" bun:"venue_id,pk,autoincrement"`
	Name     string `json:"name"     bun:"name,notnull"`
	Location string `json:"location" bun:"location,notnull"`
	Capacity int    `json:"capacity" bun:"capacity,notnull"`
}
