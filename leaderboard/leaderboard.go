// Package leaderboard ranks round attempts by final time.
package leaderboard

import (
	"cmp"
	"iter"
	"slices"

	"github.com/shuckfest/leaderboard/models"
)

// Row is one ranked leaderboard line. ID is surfaced so the admin view can
// offer deletion; the public projection drops it.
type Row struct {
	Rank                int
	ID                  int
	Name                string
	Round               int
	TimeBeforePenalties int
	FinalTime           int
}

// Standings selects the attempts belonging to round and yields them ordered
// by final time ascending with 1-based ranks. The sort is stable, so equal
// times keep their input order. The input slice is not modified and the
// returned sequence may be iterated any number of times.
func Standings(teams []models.Team, round int) iter.Seq[Row] {
	ranked := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Round == round {
			ranked = append(ranked, t)
		}
	}
	slices.SortStableFunc(ranked, func(a, b models.Team) int {
		return cmp.Compare(a.FinalTime, b.FinalTime)
	})

	return func(yield func(Row) bool) {
		for i, t := range ranked {
			row := Row{
				Rank:                i + 1,
				ID:                  t.ID,
				Name:                t.Name,
				Round:               t.Round,
				TimeBeforePenalties: t.TimeBeforePenalties,
				FinalTime:           t.FinalTime,
			}
			if !yield(row) {
				return
			}
		}
	}
}
