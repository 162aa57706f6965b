package leaderboard

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shuckfest/leaderboard/models"
)

func team(id, round, final int, name string) models.Team {
	return models.Team{ID: id, Name: name, Round: round, FinalTime: final}
}

func collect(teams []models.Team, round int) []Row {
	var rows []Row
	for row := range Standings(teams, round) {
		rows = append(rows, row)
	}
	return rows
}

func TestStandingsFiltersAndSorts(t *testing.T) {
	teams := []models.Team{
		team(1, 1, 300, "a"),
		team(2, 2, 100, "b"),
		team(3, 1, 200, "c"),
	}

	rows := collect(teams, 1)
	require.Len(t, rows, 2)
	require.Equal(t, []int{200, 300}, []int{rows[0].FinalTime, rows[1].FinalTime})
	require.Equal(t, 1, rows[0].Rank)
	require.Equal(t, 2, rows[1].Rank)
	require.Equal(t, "c", rows[0].Name)
}

func TestStandingsEmptyRound(t *testing.T) {
	teams := []models.Team{team(1, 1, 300, "a")}
	require.Empty(t, collect(teams, 7))
	require.Empty(t, collect(nil, 1))
}

func TestStandingsStableTies(t *testing.T) {
	teams := []models.Team{
		team(10, 3, 150, "first in"),
		team(11, 3, 150, "second in"),
		team(12, 3, 90, "fastest"),
	}

	rows := collect(teams, 3)
	require.Equal(t, []string{"fastest", "first in", "second in"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestStandingsRestartable(t *testing.T) {
	teams := []models.Team{
		team(1, 1, 300, "a"),
		team(2, 1, 200, "b"),
	}

	seq := Standings(teams, 1)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
}

func TestStandingsEarlyBreak(t *testing.T) {
	teams := []models.Team{
		team(1, 1, 300, "a"),
		team(2, 1, 200, "b"),
		team(3, 1, 100, "c"),
	}

	var got []Row
	for row := range Standings(teams, 1) {
		got = append(got, row)
		if len(got) == 1 {
			break
		}
	}
	require.Len(t, got, 1)
	require.Equal(t, "c", got[0].Name)
}

func TestStandingsDoesNotMutateInput(t *testing.T) {
	teams := []models.Team{
		team(1, 1, 300, "a"),
		team(2, 1, 100, "b"),
	}
	orig := slices.Clone(teams)

	_ = collect(teams, 1)
	require.Equal(t, orig, teams)
}

func TestStandingsNegativeFinalTimesSortFirst(t *testing.T) {
	teams := []models.Team{
		team(1, 1, 30, "slow"),
		team(2, 1, -10, "bonus heavy"),
	}

	rows := collect(teams, 1)
	require.Equal(t, "bonus heavy", rows[0].Name)
	require.Equal(t, -10, rows[0].FinalTime)
}
