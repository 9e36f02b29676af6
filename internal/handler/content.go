package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/content"
	"github.com/iliyamo/energopraktiki/internal/fallback"
	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/resolver"
	"github.com/iliyamo/energopraktiki/internal/seo"
)

// ContentHandler serves retreats, blog posts, SEO metadata and site blocks
// to the public site. Its routes sit behind the response cache.
type ContentHandler struct {
	Retreats     RetreatStore
	Blog         BlogStore
	Settings     SettingsStore
	SEO          SEOLoader
	FAQ          FAQStore
	Testimonials TestimonialStore
}

// ListRetreats returns active retreats by display order.
func (h *ContentHandler) ListRetreats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Retreats.ListActive(ctx)
	if err != nil {
		logger(c).Warn("retreats: store unavailable, using bundled data", slog.Any("err", err))
		items = activeRetreats(fallback.Retreats(), false)
	}
	if items == nil {
		items = []model.Retreat{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListHomeRetreats returns the retreats flagged for the home page.
func (h *ContentHandler) ListHomeRetreats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Retreats.ListForHome(ctx)
	if err != nil {
		logger(c).Warn("retreats: store unavailable, using bundled data", slog.Any("err", err))
		items = activeRetreats(fallback.Retreats(), true)
	}
	if items == nil {
		items = []model.Retreat{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func activeRetreats(list []model.Retreat, homeOnly bool) []model.Retreat {
	out := make([]model.Retreat, 0, len(list))
	for _, r := range list {
		if r.IsActive && (!homeOnly || r.ShowOnHome) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

// GetRetreat resolves a retreat by slug, or by bundled id or slug.
func (h *ContentHandler) GetRetreat(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	res := resolver.Resolver[model.Retreat]{
		Remote:   h.Retreats.FindActiveBySlug,
		Fallback: fallback.RetreatByIDOrSlug,
		Kind:     "retreat",
	}.Resolve(ctx, c.Param("slug"))
	if !res.Found {
		return jsonError(c, http.StatusNotFound, "retreat not found")
	}
	r := res.Value
	r.ContentHTML = content.RenderMarkdown(r.Content)
	return c.JSON(http.StatusOK, r)
}

// ListPosts returns active posts. Query: q (title/excerpt), category.
func (h *ContentHandler) ListPosts(c echo.Context) error {
	q := repository.BlogQuery{Text: c.QueryParam("q"), Category: c.QueryParam("category")}
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Blog.ListActive(ctx, q)
	if err != nil {
		logger(c).Warn("blog: store unavailable, using bundled data", slog.Any("err", err))
		items = filterPosts(fallback.Posts(), q)
	}
	if items == nil {
		items = []model.BlogPost{}
	}
	// list views never carry the full body
	for i := range items {
		items[i].Content = ""
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func filterPosts(list []model.BlogPost, q repository.BlogQuery) []model.BlogPost {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]model.BlogPost, 0, len(list))
	for _, p := range list {
		if !p.IsActive {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(p.Title), text) &&
			!strings.Contains(strings.ToLower(p.Excerpt), text) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

// GetPost resolves a post and renders its markdown body.
func (h *ContentHandler) GetPost(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	res := resolver.Resolver[model.BlogPost]{
		Remote:   h.Blog.FindActiveBySlug,
		Fallback: fallback.PostBySlug,
		Kind:     "post",
	}.Resolve(ctx, c.Param("slug"))
	if !res.Found {
		return jsonError(c, http.StatusNotFound, "post not found")
	}
	p := res.Value
	p.ContentHTML = content.RenderMarkdown(p.Content)
	return c.JSON(http.StatusOK, p)
}

// GetSEO returns the metadata for page_type and optional item_id. Empty item
// fields are filled from the page-level record. A missing record is a normal
// answer: {"data": null}.
func (h *ContentHandler) GetSEO(c echo.Context) error {
	pageType := strings.TrimSpace(c.QueryParam("page_type"))
	if pageType == "" {
		return jsonError(c, http.StatusBadRequest, "page_type required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	itemID := strings.TrimSpace(c.QueryParam("item_id"))
	d := h.SEO.Load(ctx, pageType, itemID)
	if itemID != "" {
		// item pages inherit whatever their page type defines
		if page := h.SEO.Load(ctx, pageType, ""); page != nil {
			merged := seo.Merge(d, *page)
			d = &merged
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": d})
}

// GetBlock returns a stored site content block.
func (h *ContentHandler) GetBlock(c echo.Context) error {
	name := c.Param("block")
	if !knownBlock(name) {
		return jsonError(c, http.StatusNotFound, "unknown block")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	b, err := h.Settings.GetBlock(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrBlockNotFound) {
			return jsonError(c, http.StatusNotFound, "block not set")
		}
		logger(c).Warn("site block: store unavailable", slog.String("block", name), slog.Any("err", err))
		return jsonError(c, http.StatusServiceUnavailable, "content unavailable")
	}
	return c.JSON(http.StatusOK, b)
}

func knownBlock(name string) bool {
	for _, b := range content.Blocks() {
		if b == name {
			return true
		}
	}
	return false
}

// ListFAQ returns the visible questions by display order. A store failure
// yields an empty list; there is no bundled FAQ.
func (h *ContentHandler) ListFAQ(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.FAQ.ListActive(ctx)
	if err != nil {
		logger(c).Warn("faq: store unavailable", slog.Any("err", err))
	}
	if items == nil {
		items = []model.FAQItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListTestimonials returns the home page quotes, or the bundled ones when
// the store is unreachable.
func (h *ContentHandler) ListTestimonials(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Testimonials.ListActive(ctx)
	if err != nil {
		logger(c).Warn("testimonials: store unavailable, using bundled data", slog.Any("err", err))
		items = fallback.Testimonials()
	}
	if items == nil {
		items = []model.Testimonial{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
