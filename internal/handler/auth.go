package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints. Admins and
// facilitators log in separately but share the token machinery.
type AuthHandler struct {
	Cfg          config.Config
	Admins       AdminStore
	Facilitators FacilitatorStore
	Tokens       TokenStore
}

func NewAuthHandler(cfg config.Config, a AdminStore, f FacilitatorStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: a, Facilitators: f, Tokens: t}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type subjectPart struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}
type authResp struct {
	User    subjectPart `json:"user"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

func bindLogin(c echo.Context) (loginReq, bool) {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return req, false
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return req, req.Email != "" && req.Password != ""
}

// issue creates an access/refresh pair for who and stores the refresh hash.
func (h *AuthHandler) issue(ctx context.Context, who subjectPart) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, who.ID, who.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	sub := repository.Subject{ID: who.ID, Role: who.Role}
	if err := h.Tokens.StoreRefresh(ctx, sub, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{
		User:    who,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// AdminLogin verifies back-office credentials and returns a token pair.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	req, ok := bindLogin(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "email/password required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return jsonError(c, http.StatusUnauthorized, "invalid credentials")
		}
		return jsonError(c, http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}
	resp, err := h.issue(ctx, subjectPart{ID: a.ID, Email: a.Email, Role: model.RoleAdmin})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "issue tokens failed")
	}
	return c.JSON(http.StatusOK, resp)
}

// Login verifies facilitator credentials. Accounts without a password set
// cannot log in.
func (h *AuthHandler) Login(c echo.Context) error {
	req, ok := bindLogin(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "email/password required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	f, err := h.Facilitators.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrFacilitatorNotFound) {
			return jsonError(c, http.StatusUnauthorized, "invalid credentials")
		}
		return jsonError(c, http.StatusInternalServerError, "query failed")
	}
	if f.PasswordHash == "" || !utils.VerifyPassword(f.PasswordHash, req.Password) {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}
	resp, err := h.issue(ctx, subjectPart{ID: f.ID, Email: f.Email, Role: model.RoleFacilitator, Name: f.Name})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "issue tokens failed")
	}
	return c.JSON(http.StatusOK, resp)
}

// lookup reloads the subject behind a refresh token so deleted accounts
// cannot refresh.
func (h *AuthHandler) lookup(ctx context.Context, sub repository.Subject) (subjectPart, error) {
	switch sub.Role {
	case model.RoleAdmin:
		a, err := h.Admins.GetByID(ctx, sub.ID)
		if err != nil {
			return subjectPart{}, err
		}
		return subjectPart{ID: a.ID, Email: a.Email, Role: model.RoleAdmin}, nil
	case model.RoleFacilitator:
		f, err := h.Facilitators.GetByID(ctx, sub.ID)
		if err != nil {
			return subjectPart{}, err
		}
		return subjectPart{ID: f.ID, Email: f.Email, Role: model.RoleFacilitator, Name: f.Name}, nil
	}
	return subjectPart{}, repository.ErrForbidden
}

// Refresh validates by hash, revokes the old token and issues a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return jsonError(c, http.StatusBadRequest, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := withTimeout(c)
	defer cancel()

	sub, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid refresh")
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	who, err := h.lookup(ctx, sub)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid refresh")
	}
	resp, err := h.issue(ctx, who)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "issue tokens failed")
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented refresh token. It does not require an
// access token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return jsonError(c, http.StatusBadRequest, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := withTimeout(c)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid refresh")
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return jsonError(c, http.StatusInternalServerError, "revoke failed")
	}
	return c.NoContent(http.StatusNoContent)
}
