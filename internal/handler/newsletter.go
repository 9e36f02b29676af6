package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
)

// NewsletterHandler stores sign-ups and announces them on the broker.
type NewsletterHandler struct {
	Subscribers SubscriberStore
	Events      EventPublisher
}

type subscribeReq struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// Subscribe adds an email to the newsletter list.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") {
		return jsonError(c, http.StatusBadRequest, "invalid email")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	sub, err := h.Subscribers.Subscribe(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return jsonError(c, http.StatusConflict, "already subscribed")
		}
		logger(c).Error("newsletter: subscribe failed", slog.Any("err", err))
		return jsonError(c, http.StatusInternalServerError, "subscribe failed")
	}

	if h.Events != nil {
		pubCtx, pubCancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 2*time.Second)
		if err := h.Events.PublishNewsletterSubscribed(pubCtx, sub.Email, strings.TrimSpace(req.Source)); err != nil {
			logger(c).Warn("newsletter: event not published", slog.Any("err", err))
		}
		pubCancel()
	}
	return c.JSON(http.StatusCreated, sub)
}

// List returns every subscriber, newest first.
func (h *NewsletterHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Subscribers.List(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	if items == nil {
		items = []model.Subscriber{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Delete removes one subscription.
func (h *NewsletterHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Subscribers.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrSubscriberNotFound) {
			return jsonError(c, http.StatusNotFound, "subscriber not found")
		}
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	return c.NoContent(http.StatusNoContent)
}
