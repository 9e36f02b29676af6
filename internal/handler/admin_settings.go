package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/catalog"
	"github.com/iliyamo/energopraktiki/internal/content"
	"github.com/iliyamo/energopraktiki/internal/model"
)

// maxBlockBytes caps the size of a site block payload.
const maxBlockBytes = 256 << 10

type sortReq struct {
	SortMethod string `json:"sort_method"`
}

// GetSortMethod returns the site-wide facilitator ordering.
func (h *AdminHandler) GetSortMethod(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	m, err := h.Settings.GetSortMethod(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"sort_method": m})
}

// SetSortMethod stores a new ordering; only known strategies are accepted.
func (h *AdminHandler) SetSortMethod(c echo.Context) error {
	var req sortReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	m, err := catalog.ParseSortMethod(req.SortMethod)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Settings.SetSortMethod(ctx, m); err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"sort_method": m})
}

type seoReq struct {
	PageType string        `json:"page_type"`
	ItemID   string        `json:"item_id"`
	Data     model.SEOData `json:"data"`
}

// GetSEO reads the stored metadata directly, bypassing the cache.
func (h *AdminHandler) GetSEO(c echo.Context) error {
	pageType := strings.TrimSpace(c.QueryParam("page_type"))
	if pageType == "" {
		return jsonError(c, http.StatusBadRequest, "page_type required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	d, err := h.SEO.Find(ctx, pageType, strings.TrimSpace(c.QueryParam("item_id")))
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": d})
}

// PutSEO saves metadata and reloads the cache entry so the next public
// read sees the new values.
func (h *AdminHandler) PutSEO(c echo.Context) error {
	var req seoReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	req.PageType = strings.TrimSpace(req.PageType)
	req.ItemID = strings.TrimSpace(req.ItemID)
	if req.PageType == "" {
		return jsonError(c, http.StatusBadRequest, "page_type required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.SEO.Upsert(ctx, req.PageType, req.ItemID, req.Data); err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	d := h.SEOCache.Refresh(ctx, req.PageType, req.ItemID)
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, echo.Map{"data": d})
}

// PutBlock validates and stores a site content block.
func (h *AdminHandler) PutBlock(c echo.Context) error {
	name := c.Param("block")
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBlockBytes+1))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	if len(body) > maxBlockBytes {
		return jsonError(c, http.StatusRequestEntityTooLarge, "block too large")
	}
	if err := content.ValidateBlock(name, body); err != nil {
		if errors.Is(err, content.ErrUnknownBlock) {
			return jsonError(c, http.StatusNotFound, "unknown block")
		}
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Settings.PutBlock(ctx, name, body); err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, model.SiteBlock{Name: name, Payload: body})
}
