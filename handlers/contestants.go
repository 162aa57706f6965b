package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shuckfest/leaderboard/models"
)

type contestantRequest struct {
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// ListContestants returns all registered contestants.
func (h *Handler) ListContestants(c echo.Context) error {
	var contestants []models.Contestant
	err := h.db.NewSelect().Model(&contestants).
		Order("id ASC").
		Scan(c.Request().Context())
	if err != nil {
		zap.L().Error("select contestants", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, map[string]any{"contestants": contestants})
}

// AddContestant registers a contestant. Duplicate userIds are accepted
// silently.
func (h *Handler) AddContestant(c echo.Context) error {
	var req contestantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	contestant := &models.Contestant{Name: req.Name, UserID: req.UserID}
	if _, err := h.db.NewInsert().Model(contestant).Exec(c.Request().Context()); err != nil {
		zap.L().Error("insert contestant", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.String(http.StatusOK, "Contestant Added")
}

// UpdateContestant edits name/userId in place. Teams already holding the
// old name as a snapshot are untouched.
func (h *Handler) UpdateContestant(c echo.Context) error {
	var req contestantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	res, err := h.db.NewUpdate().Model((*models.Contestant)(nil)).
		Set("name = ?", req.Name).
		Set("user_id = ?", req.UserID).
		Where("id = ?", req.ID).
		Exec(c.Request().Context())
	if err != nil {
		zap.L().Error("update contestant", zap.Int("id", req.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Contestant not found")
	}

	return c.String(http.StatusOK, "Contestant Updated")
}

// DeleteContestant removes a contestant. Existing Teams keep the
// contestant's old name.
func (h *Handler) DeleteContestant(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	res, err := h.db.NewDelete().Model((*models.Contestant)(nil)).
		Where("id = ?", req.ID).
		Exec(c.Request().Context())
	if err != nil {
		zap.L().Error("delete contestant", zap.Int("id", req.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Contestant not found")
	}

	return c.String(http.StatusOK, "Contestant Deleted")
}
