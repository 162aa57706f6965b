package models

import "github.com/uptrace/bun"

// DisplayRoundSetting names the singleton row holding the round currently
// shown to public viewers.
const DisplayRoundSetting = "displayRound"

// Setting is a named integer setting, upserted by key.
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:s"`

	ID    int    `bun:"id,pk,autoincrement" json:"id"`
	Name  string `bun:"name,notnull,unique" json:"name"`
	Value int    `bun:"value,notnull" json:"value"`
}
