package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shuckfest/leaderboard/models"
	"github.com/shuckfest/leaderboard/scoring"
	"github.com/shuckfest/leaderboard/ws"
)

type submitResultRequest struct {
	UserID string `json:"userId"`
	Round  int    `json:"round"`
	// Clock inputs arrive as the admin typed them, "MM:SS".
	TimeBeforePenalties string         `json:"timeBeforePenalties"`
	Bonus               string         `json:"bonus"`
	ShuckingIssues      scoring.Issues `json:"shuckingIssues"`
}

type deleteRequest struct {
	ID int `json:"id"`
}

// GetData returns every stored round attempt.
func (h *Handler) GetData(c echo.Context) error {
	var teams []models.Team
	err := h.db.NewSelect().Model(&teams).
		Order("id ASC").
		Scan(c.Request().Context())
	if err != nil {
		zap.L().Error("select teams", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving data")
	}

	return c.JSON(http.StatusOK, map[string]any{"teams": teams})
}

// UpdateData scores and stores a round attempt, then notifies viewers.
// The penalty total is recomputed from the issue counts here rather than
// trusted from the client.
func (h *Handler) UpdateData(c echo.Context) error {
	var req submitResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}
	if req.Round < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "round must be a positive integer")
	}
	if !req.ShuckingIssues.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "issue counts must not be negative")
	}

	rawSec, err := scoring.ParseClock(req.TimeBeforePenalties)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bonusSec, err := scoring.ParseClock(req.Bonus)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contestant := &models.Contestant{}
	err = h.db.NewSelect().Model(contestant).
		Where("user_id = ?", req.UserID).
		Limit(1).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "contestant not found for userId")
		}
		zap.L().Error("select contestant", zap.String("userId", req.UserID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating data")
	}

	team := &models.Team{
		// Snapshot of the contestant's name; later renames leave it alone.
		Name:                contestant.Name,
		Round:               req.Round,
		TimeBeforePenalties: rawSec,
		Penalties:           req.ShuckingIssues.PenaltySeconds(),
		Bonus:               bonusSec,
		FinalTime:           scoring.FinalTime(rawSec, bonusSec, req.ShuckingIssues),
		ShuckingIssues:      req.ShuckingIssues,
	}

	if _, err := h.db.NewInsert().Model(team).Exec(c.Request().Context()); err != nil {
		zap.L().Error("insert team", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating data")
	}

	h.metrics.ResultsSubmitted.Inc()
	h.hub.Broadcast(ws.EventLeaderboardUpdated, team)

	return c.String(http.StatusOK, "Data received and leaderboard updated")
}

// DeleteData removes a round attempt by id and notifies viewers. A missing
// id is a 404 and broadcasts nothing.
func (h *Handler) DeleteData(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	res, err := h.db.NewDelete().Model((*models.Team)(nil)).
		Where("id = ?", req.ID).
		Exec(c.Request().Context())
	if err != nil {
		zap.L().Error("delete team", zap.Int("id", req.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting data")
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Data not found")
	}

	h.hub.Broadcast(ws.EventTeamDeleted, req.ID)

	return c.String(http.StatusOK, "Data deleted")
}
