package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/shuckfest/leaderboard/models"
	"github.com/shuckfest/leaderboard/ws"
)

// flexInt decodes a JSON number or a quoted number; the admin form posts
// the round as a string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", s)
	}
	*f = flexInt(n)
	return nil
}

type updateRoundRequest struct {
	DisplayRound flexInt `json:"displayRound"`
}

// displayRound reads the singleton setting, defaulting to round 1 when it
// has never been set.
func displayRound(c echo.Context, db *bun.DB) (int, error) {
	setting := &models.Setting{}
	err := db.NewSelect().Model(setting).
		Where("name = ?", models.DisplayRoundSetting).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 1, nil
		}
		return 0, err
	}
	return setting.Value, nil
}

// GetDisplayRound returns the round currently shown to public viewers.
func (h *Handler) GetDisplayRound(c echo.Context) error {
	round, err := displayRound(c, h.db)
	if err != nil {
		zap.L().Error("select display round", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error retrieving display round")
	}

	return c.JSON(http.StatusOK, map[string]int{"displayRound": round})
}

// UpdateRound upserts the displayed round and notifies viewers.
func (h *Handler) UpdateRound(c echo.Context) error {
	var req updateRoundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	round := int(req.DisplayRound)
	if round < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "displayRound must be a positive integer")
	}

	setting := &models.Setting{Name: models.DisplayRoundSetting, Value: round}
	_, err := h.db.NewInsert().Model(setting).
		On("CONFLICT (name) DO UPDATE SET value = EXCLUDED.value").
		Exec(c.Request().Context())
	if err != nil {
		zap.L().Error("upsert display round", zap.Int("round", round), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating display round")
	}

	h.hub.Broadcast(ws.EventDisplayRoundUpdated, round)

	return c.String(http.StatusOK, "Display round updated")
}
