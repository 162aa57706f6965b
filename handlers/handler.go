package handlers

import (
	"github.com/uptrace/bun"

	"github.com/shuckfest/leaderboard/metrics"
	"github.com/shuckfest/leaderboard/ws"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db      *bun.DB
	hub     *ws.Hub
	metrics *metrics.Metrics
}

// New creates a Handler with the given database connection, broadcaster
// and metrics collectors.
func New(db *bun.DB, hub *ws.Hub, m *metrics.Metrics) *Handler {
	return &Handler{db: db, hub: hub, metrics: m}
}
