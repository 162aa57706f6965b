package models

import "github.com/uptrace/bun"

// Contestant is a registered shucker. UserID is the external identifier
// admins type when submitting results; it is intended to be unique per
// person but duplicates are accepted silently.
type Contestant struct {
	bun.BaseModel `bun:"table:contestants,alias:ct"`

	ID     int    `bun:"id,pk,autoincrement" json:"_id"`
	Name   string `bun:"name,notnull" json:"name"`
	UserID string `bun:"user_id,notnull" json:"userId"`
}
