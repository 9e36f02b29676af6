package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/middleware"
	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/utils"
)

// AccountHandler lets a logged-in facilitator or admin manage their own
// account.
type AccountHandler struct {
	Cfg          config.Config
	Facilitators FacilitatorStore
	Admins       AdminStore
	Tokens       TokenStore
	Purge        Purger
}

type profileReq struct {
	Name        *string         `json:"name"`
	City        *string         `json:"city"`
	Cities      *string         `json:"cities"`
	Tagline     *string         `json:"tagline"`
	Description *string         `json:"description"`
	Sessions    []string        `json:"sessions"`
	Format      []string        `json:"format"`
	Photo       *string         `json:"photo"`
	VideoURL    *string         `json:"video_url"`
	Cost        *string         `json:"cost"`
	Contacts    *model.Contacts `json:"contacts"`
}

func (r profileReq) apply(f *model.Facilitator) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&f.Name, r.Name)
	set(&f.City, r.City)
	set(&f.Cities, r.Cities)
	set(&f.Tagline, r.Tagline)
	set(&f.Description, r.Description)
	set(&f.Photo, r.Photo)
	set(&f.VideoURL, r.VideoURL)
	set(&f.Cost, r.Cost)
	if r.Sessions != nil {
		f.Sessions = r.Sessions
	}
	if r.Format != nil {
		f.Format = r.Format
	}
	if r.Contacts != nil {
		f.Contacts = *r.Contacts
	}
}

type passwordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Me returns the facilitator's own profile.
func (h *AccountHandler) Me(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Facilitators.GetByID(ctx, middleware.SubjectID(c))
	if err != nil {
		if errors.Is(err, repository.ErrFacilitatorNotFound) {
			return jsonError(c, http.StatusNotFound, "account not found")
		}
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, f)
}

// UpdateProfile applies the fields present in the body. Placement fields
// (featured, rating, sort order) stay with the back office.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Facilitators.GetByID(ctx, middleware.SubjectID(c))
	if err != nil {
		if errors.Is(err, repository.ErrFacilitatorNotFound) {
			return jsonError(c, http.StatusNotFound, "account not found")
		}
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	req.apply(f)
	if f.Name == "" || f.City == "" {
		return jsonError(c, http.StatusBadRequest, "name and city required")
	}
	if err := h.Facilitators.UpdateProfile(ctx, f); err != nil {
		return jsonError(c, http.StatusInternalServerError, "update failed")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, f)
}

// ChangePassword replaces the facilitator's password after checking the
// current one, then revokes their refresh tokens.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req passwordReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	if err := utils.CheckPasswordPolicy(req.NewPassword); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	id := middleware.SubjectID(c)
	f, err := h.Facilitators.GetByID(ctx, id)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "account not found")
	}
	if !utils.VerifyPassword(f.PasswordHash, req.CurrentPassword) {
		return jsonError(c, http.StatusUnauthorized, "invalid current password")
	}
	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "hash failed")
	}
	if err := h.Facilitators.SetPassword(ctx, id, hash); err != nil {
		return jsonError(c, http.StatusInternalServerError, "update failed")
	}
	_ = h.Tokens.RevokeAll(ctx, repository.Subject{ID: id, Role: model.RoleFacilitator})
	return c.NoContent(http.StatusNoContent)
}

type adminCredentialsReq struct {
	CurrentPassword string `json:"current_password"`
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
}

// UpdateAdminCredentials changes the admin's email and/or password. The
// current password is always required.
func (h *AccountHandler) UpdateAdminCredentials(c echo.Context) error {
	var req adminCredentialsReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	id := middleware.SubjectID(c)
	a, err := h.Admins.GetByID(ctx, id)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "account not found")
	}
	if !utils.VerifyPassword(a.PasswordHash, req.CurrentPassword) {
		return jsonError(c, http.StatusUnauthorized, "invalid current password")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = a.Email
	}
	if !strings.Contains(email, "@") {
		return jsonError(c, http.StatusBadRequest, "invalid email")
	}
	hash := a.PasswordHash
	if req.NewPassword != "" {
		if err := utils.CheckPasswordPolicy(req.NewPassword); err != nil {
			return jsonError(c, http.StatusBadRequest, err.Error())
		}
		if hash, err = utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost); err != nil {
			return jsonError(c, http.StatusInternalServerError, "hash failed")
		}
	}
	if err := h.Admins.UpdateCredentials(ctx, id, email, hash); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return jsonError(c, http.StatusConflict, "email already exists")
		}
		return jsonError(c, http.StatusInternalServerError, "update failed")
	}
	if req.NewPassword != "" {
		_ = h.Tokens.RevokeAll(ctx, repository.Subject{ID: id, Role: model.RoleAdmin})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "email": email})
}
