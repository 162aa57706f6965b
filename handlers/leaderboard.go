package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shuckfest/leaderboard/leaderboard"
	"github.com/shuckfest/leaderboard/models"
	"github.com/shuckfest/leaderboard/scoring"
)

// leaderboardRow is the public projection of a ranked attempt: no id, and
// clocks rendered the way the scoreboard shows them.
type leaderboardRow struct {
	Rank                int    `json:"rank"`
	Name                string `json:"name"`
	Round               int    `json:"round"`
	TimeBeforePenalties string `json:"timeBeforePenalties"`
	FinalTime           string `json:"finalTime"`
}

// GetLeaderboard returns the ranked standings for a round. Without a round
// query param it serves the currently displayed round.
func (h *Handler) GetLeaderboard(c echo.Context) error {
	var round int
	if p := c.QueryParam("round"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "round must be a positive integer")
		}
		round = n
	} else {
		n, err := displayRound(c, h.db)
		if err != nil {
			zap.L().Error("select display round", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving data")
		}
		round = n
	}

	var teams []models.Team
	err := h.db.NewSelect().Model(&teams).
		Order("id ASC").
		Scan(c.Request().Context())
	if err != nil {
		zap.L().Error("select teams", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving data")
	}

	rows := make([]leaderboardRow, 0)
	for row := range leaderboard.Standings(teams, round) {
		rows = append(rows, leaderboardRow{
			Rank:                row.Rank,
			Name:                row.Name,
			Round:               row.Round,
			TimeBeforePenalties: scoring.FormatClock(row.TimeBeforePenalties),
			FinalTime:           scoring.FormatClock(row.FinalTime),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"round": round, "standings": rows})
}
