package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/schedule"
)

// ScheduleHandler exposes the locally stored schedules through their share
// codes. Anyone holding a code may edit that schedule.
type ScheduleHandler struct {
	Store *schedule.Store
	Codes *schedule.Codes
}

func (h *ScheduleHandler) facilitatorID(c echo.Context) (string, bool) {
	return h.Codes.FacilitatorIDFromCode(strings.ToUpper(strings.TrimSpace(c.Param("code"))))
}

// Get returns the schedule behind a share code.
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, ok := h.facilitatorID(c)
	if !ok {
		return jsonError(c, http.StatusNotFound, "schedule not found")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	return c.JSON(http.StatusOK, echo.Map{
		"facilitator_id": id,
		"sessions":       h.Store.Get(ctx, id),
	})
}

// AddSession appends a session and returns it with its new id.
func (h *ScheduleHandler) AddSession(c echo.Context) error {
	id, ok := h.facilitatorID(c)
	if !ok {
		return jsonError(c, http.StatusNotFound, "schedule not found")
	}
	var in model.ScheduleSession
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	s, err := h.Store.Add(ctx, id, in)
	if err != nil {
		logger(c).Error("schedule: persist failed", slog.String("facilitator_id", id), slog.Any("err", err))
		return jsonError(c, http.StatusInternalServerError, "save failed")
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSession merges the provided fields into one session. An unknown
// session id changes nothing and is not an error.
func (h *ScheduleHandler) UpdateSession(c echo.Context) error {
	id, ok := h.facilitatorID(c)
	if !ok {
		return jsonError(c, http.StatusNotFound, "schedule not found")
	}
	var patch model.SessionPatch
	if err := c.Bind(&patch); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	updated, err := h.Store.Update(ctx, id, c.Param("id"), patch)
	if err != nil {
		logger(c).Error("schedule: persist failed", slog.String("facilitator_id", id), slog.Any("err", err))
		return jsonError(c, http.StatusInternalServerError, "save failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated, "sessions": h.Store.Get(ctx, id)})
}

// DeleteSession removes one session; unknown ids are ignored.
func (h *ScheduleHandler) DeleteSession(c echo.Context) error {
	id, ok := h.facilitatorID(c)
	if !ok {
		return jsonError(c, http.StatusNotFound, "schedule not found")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Store.Delete(ctx, id, c.Param("id")); err != nil {
		logger(c).Error("schedule: persist failed", slog.String("facilitator_id", id), slog.Any("err", err))
		return jsonError(c, http.StatusInternalServerError, "save failed")
	}
	return c.NoContent(http.StatusNoContent)
}
