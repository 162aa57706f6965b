package models

import (
	"github.com/uptrace/bun"

	"github.com/shuckfest/leaderboard/scoring"
)

// Team is a single round attempt on the leaderboard. Name is a snapshot of
// the contestant's name at submission time; it is not kept in sync with
// later contestant renames and survives contestant deletion. FinalTime may
// be negative when the bonus exceeds raw time plus penalties.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`

	ID                  int            `bun:"id,pk,autoincrement" json:"_id"`
	Name                string         `bun:"name,notnull" json:"name"`
	Round               int            `bun:"round,notnull" json:"round"`
	TimeBeforePenalties int            `bun:"time_before_penalties,notnull" json:"timeBeforePenalties"`
	Penalties           int            `bun:"penalties,notnull" json:"penalties"`
	Bonus               int            `bun:"bonus,notnull" json:"bonus"`
	FinalTime           int            `bun:"final_time,notnull" json:"finalTime"`
	ShuckingIssues      scoring.Issues `bun:"shucking_issues,notnull,type:jsonb" json:"shuckingIssues"`
}
