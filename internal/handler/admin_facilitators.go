package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/fallback"
	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/schedule"
	"github.com/iliyamo/energopraktiki/internal/utils"
)

// AdminHandler bundles the stores the back office edits. Every successful
// write purges the public response cache.
type AdminHandler struct {
	Cfg          config.Config
	Facilitators FacilitatorStore
	Retreats     RetreatStore
	Blog         BlogStore
	ServiceTypes ServiceTypeStore
	Settings     SettingsStore
	SEO          SEOStore
	SEOCache     SEOLoader
	FAQ          FAQStore
	Testimonials TestimonialStore
	Codes        *schedule.Codes
	Purge        Purger
	Now          func() time.Time
}

func (h *AdminHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// facilitatorReq is the admin create/update body. Email and password are
// hidden on the model so they are carried here.
type facilitatorReq struct {
	model.Facilitator
	Email    string `json:"email"`
	Password string `json:"password"`
}

// adminFacilitator is the back-office view of a facilitator.
type adminFacilitator struct {
	model.Facilitator
	Email       string `json:"email"`
	HasPassword bool   `json:"has_password"`
}

func adminView(f model.Facilitator) adminFacilitator {
	return adminFacilitator{Facilitator: f, Email: f.Email, HasPassword: f.PasswordHash != ""}
}

// writeError maps store errors shared by the admin endpoints.
func writeError(c echo.Context, err error, notFound error, what string) error {
	switch {
	case notFound != nil && errors.Is(err, notFound):
		return jsonError(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, errInvalidSlug):
		return jsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSlugTaken):
		return jsonError(c, http.StatusConflict, "slug already taken")
	case errors.Is(err, repository.ErrEmailExists):
		return jsonError(c, http.StatusConflict, "email already exists")
	case errors.Is(err, repository.ErrConflict):
		return jsonError(c, http.StatusConflict, what+" already exists")
	}
	logger(c).Error("admin: write failed", "what", what, "err", err)
	return jsonError(c, http.StatusInternalServerError, "database error")
}

func (h *AdminHandler) prepareFacilitator(ctx context.Context, req facilitatorReq, current *model.Facilitator) (*model.Facilitator, error) {
	f := req.Facilitator
	f.Email = strings.ToLower(strings.TrimSpace(req.Email))
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	r := slugRequest{Kind: "facilitator", Provided: req.Slug, Source: f.Name}
	if current != nil {
		f.ID = current.ID
		f.PasswordHash = current.PasswordHash
		r.ID, r.Current = current.ID, current.Slug
	} else {
		f.ID = ""
	}
	s, err := assignSlug(ctx, h.Facilitators.SlugExists, r, h.now())
	if err != nil {
		return nil, err
	}
	f.Slug = s
	if req.Password != "" {
		if err := utils.CheckPasswordPolicy(req.Password); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		f.PasswordHash = hash
	}
	return &f, nil
}

// ListFacilitators returns every facilitator including inactive ones.
func (h *AdminHandler) ListFacilitators(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Facilitators.ListAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	out := make([]adminFacilitator, 0, len(list))
	for _, f := range list {
		out = append(out, adminView(f))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetFacilitator returns one facilitator by id.
func (h *AdminHandler) GetFacilitator(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Facilitators.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err, repository.ErrFacilitatorNotFound, "facilitator")
	}
	return c.JSON(http.StatusOK, adminView(*f))
}

// CreateFacilitator inserts a facilitator, generating a slug when none is
// given.
func (h *AdminHandler) CreateFacilitator(c echo.Context) error {
	var req facilitatorReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.City) == "" {
		return jsonError(c, http.StatusBadRequest, "name and city required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.prepareFacilitator(ctx, req, nil)
	if errors.Is(err, utils.ErrWeakPassword) {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if err == nil {
		err = h.Facilitators.Create(ctx, f)
	}
	if err != nil {
		return writeError(c, err, nil, "facilitator")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusCreated, adminView(*f))
}

// UpdateFacilitator replaces the editable fields of a facilitator. An empty
// password leaves the stored one in place.
func (h *AdminHandler) UpdateFacilitator(c echo.Context) error {
	var req facilitatorReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.City) == "" {
		return jsonError(c, http.StatusBadRequest, "name and city required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	current, err := h.Facilitators.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err, repository.ErrFacilitatorNotFound, "facilitator")
	}
	f, err := h.prepareFacilitator(ctx, req, current)
	if errors.Is(err, utils.ErrWeakPassword) {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if err == nil {
		err = h.Facilitators.Update(ctx, f)
	}
	if err == nil && req.Password != "" {
		err = h.Facilitators.SetPassword(ctx, f.ID, f.PasswordHash)
	}
	if err != nil {
		return writeError(c, err, repository.ErrFacilitatorNotFound, "facilitator")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, adminView(*f))
}

type activeReq struct {
	IsActive *bool `json:"is_active"`
}

// SetFacilitatorActive toggles public visibility.
func (h *AdminHandler) SetFacilitatorActive(c echo.Context) error {
	var req activeReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return jsonError(c, http.StatusBadRequest, "is_active required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Facilitators.SetActive(ctx, c.Param("id"), *req.IsActive); err != nil {
		return writeError(c, err, repository.ErrFacilitatorNotFound, "facilitator")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "is_active": *req.IsActive})
}

// DeleteFacilitator removes a facilitator and its sessions.
func (h *AdminHandler) DeleteFacilitator(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Facilitators.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err, repository.ErrFacilitatorNotFound, "facilitator")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}

// ScheduleCode returns the share code of a facilitator's schedule. Bundled
// facilitators resolve even when the store does not know them.
func (h *AdminHandler) ScheduleCode(c echo.Context) error {
	id := c.Param("id")
	if _, ok := fallback.FacilitatorByID(id); !ok {
		ctx, cancel := withTimeout(c)
		defer cancel()
		if _, err := h.Facilitators.GetByID(ctx, id); err != nil {
			return writeError(c, err, repository.ErrFacilitatorNotFound, "facilitator")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"facilitator_id": id, "code": h.Codes.CodeFor(id)})
}

// ScheduleCodes lists every code handed out so far.
func (h *AdminHandler) ScheduleCodes(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Codes.All()})
}
