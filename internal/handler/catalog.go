package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/catalog"
	"github.com/iliyamo/energopraktiki/internal/fallback"
	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/resolver"
)

// CatalogHandler serves the public facilitator catalog. Listings are never
// response-cached: the random strategy must reshuffle on every request.
type CatalogHandler struct {
	Facilitators FacilitatorReader
	Settings     SettingsStore
	ServiceTypes ServiceTypeStore
	Placer       catalog.Placer
}

// listActive loads the active facilitators, substituting the bundled set
// when the store is unreachable. An empty store result is returned as is.
func (h *CatalogHandler) listActive(c echo.Context) ([]model.Facilitator, string) {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Facilitators.ListActive(ctx)
	if err != nil {
		logger(c).Warn("facilitators: store unavailable, using bundled data", slog.Any("err", err))
		return fallback.Facilitators(), "fallback"
	}
	return list, "remote"
}

func (h *CatalogHandler) sortMethod(c echo.Context) model.SortMethod {
	if m := strings.TrimSpace(c.QueryParam("sort")); m != "" {
		return model.SortMethod(m)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	m, err := h.Settings.GetSortMethod(ctx)
	if err != nil {
		logger(c).Warn("facilitators: sort settings unavailable", slog.Any("err", err))
		return model.DefaultSortMethod
	}
	return m
}

// ListFacilitators runs filter, placement and truncation over the active
// catalog.
//
// Query: q, city, service_type, sessions (comma list), format (comma list),
// scope=home (city also matches secondary cities), sort, limit.
func (h *CatalogHandler) ListFacilitators(c echo.Context) error {
	list, source := h.listActive(c)
	p := catalog.Predicates{
		Query:                  c.QueryParam("q"),
		City:                   c.QueryParam("city"),
		ServiceType:            c.QueryParam("service_type"),
		Sessions:               splitList(c.QueryParam("sessions")),
		Formats:                splitList(c.QueryParam("format")),
		IncludeSecondaryCities: c.QueryParam("scope") == "home",
	}
	method := h.sortMethod(c)
	out := catalog.Truncate(h.Placer.Place(catalog.Filter(list, p), method), queryInt(c, "limit", 0))
	return c.JSON(http.StatusOK, echo.Map{
		"items":       out,
		"sort_method": method,
		"source":      source,
	})
}

// ListCities returns the city dropdown options for the current catalog.
func (h *CatalogHandler) ListCities(c echo.Context) error {
	list, _ := h.listActive(c)
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.CityOptions(list)})
}

// GetFacilitator resolves a slug, or a bundled id for old links.
func (h *CatalogHandler) GetFacilitator(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	res := resolver.Resolver[model.Facilitator]{
		Remote:   h.Facilitators.FindActiveBySlug,
		Fallback: fallback.FacilitatorByID,
		Kind:     "facilitator",
	}.Resolve(ctx, c.Param("slug"))
	if !res.Found {
		return jsonError(c, http.StatusNotFound, "facilitator not found")
	}
	return c.JSON(http.StatusOK, res.Value)
}

// ListServiceTypes returns the taxonomy ordered by name. A store failure
// yields an empty list.
func (h *CatalogHandler) ListServiceTypes(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.ServiceTypes.List(ctx)
	if err != nil {
		logger(c).Warn("service types: store unavailable", slog.Any("err", err))
	}
	if items == nil {
		items = []model.ServiceType{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
