package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
)

// ----- retreats -----

func (h *AdminHandler) ListRetreats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Retreats.ListAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	if items == nil {
		items = []model.Retreat{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AdminHandler) saveRetreat(c echo.Context, current *model.Retreat) error {
	var rt model.Retreat
	if err := c.Bind(&rt); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	rt.Title = strings.TrimSpace(rt.Title)
	if rt.Title == "" {
		return jsonError(c, http.StatusBadRequest, "title required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	r := slugRequest{Kind: "retreat", Provided: rt.Slug, Source: rt.Title}
	rt.ID = ""
	if current != nil {
		rt.ID, r.ID, r.Current = current.ID, current.ID, current.Slug
	}
	s, err := assignSlug(ctx, h.Retreats.SlugExists, r, h.now())
	if err != nil {
		return writeError(c, err, nil, "retreat")
	}
	rt.Slug = s

	status := http.StatusOK
	if current == nil {
		status = http.StatusCreated
		err = h.Retreats.Create(ctx, &rt)
	} else {
		err = h.Retreats.Update(ctx, &rt)
	}
	if err != nil {
		return writeError(c, err, repository.ErrRetreatNotFound, "retreat")
	}
	h.Purge.purge(c)
	return c.JSON(status, rt)
}

func (h *AdminHandler) CreateRetreat(c echo.Context) error {
	return h.saveRetreat(c, nil)
}

func (h *AdminHandler) UpdateRetreat(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	current, err := h.Retreats.GetByID(ctx, c.Param("id"))
	cancel()
	if err != nil {
		return writeError(c, err, repository.ErrRetreatNotFound, "retreat")
	}
	return h.saveRetreat(c, current)
}

func (h *AdminHandler) DeleteRetreat(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Retreats.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err, repository.ErrRetreatNotFound, "retreat")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}

// ----- blog -----

func (h *AdminHandler) ListPosts(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Blog.ListAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	if items == nil {
		items = []model.BlogPost{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AdminHandler) savePost(c echo.Context, current *model.BlogPost) error {
	var p model.BlogPost
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return jsonError(c, http.StatusBadRequest, "title required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	r := slugRequest{Kind: "post", Provided: p.Slug, Source: p.Title}
	p.ID = ""
	if current != nil {
		p.ID, r.ID, r.Current = current.ID, current.ID, current.Slug
	}
	s, err := assignSlug(ctx, h.Blog.SlugExists, r, h.now())
	if err != nil {
		return writeError(c, err, nil, "post")
	}
	p.Slug = s

	status := http.StatusOK
	if current == nil {
		status = http.StatusCreated
		err = h.Blog.Create(ctx, &p)
	} else {
		err = h.Blog.Update(ctx, &p)
	}
	if err != nil {
		return writeError(c, err, repository.ErrPostNotFound, "post")
	}
	h.Purge.purge(c)
	return c.JSON(status, p)
}

func (h *AdminHandler) CreatePost(c echo.Context) error {
	return h.savePost(c, nil)
}

func (h *AdminHandler) UpdatePost(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	current, err := h.Blog.GetByID(ctx, c.Param("id"))
	cancel()
	if err != nil {
		return writeError(c, err, repository.ErrPostNotFound, "post")
	}
	return h.savePost(c, current)
}

func (h *AdminHandler) DeletePost(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Blog.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err, repository.ErrPostNotFound, "post")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}

// ----- service types -----

type serviceTypeReq struct {
	Name string `json:"name"`
}

func bindServiceType(c echo.Context) (string, bool) {
	var req serviceTypeReq
	if err := c.Bind(&req); err != nil {
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	return name, name != ""
}

func (h *AdminHandler) CreateServiceType(c echo.Context) error {
	name, ok := bindServiceType(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "name required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	st, err := h.ServiceTypes.Create(ctx, name)
	if err != nil {
		return writeError(c, err, nil, "service type")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusCreated, st)
}

func (h *AdminHandler) RenameServiceType(c echo.Context) error {
	name, ok := bindServiceType(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "name required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.ServiceTypes.Rename(ctx, c.Param("id"), name); err != nil {
		return writeError(c, err, repository.ErrServiceTypeNotFound, "service type")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, model.ServiceType{ID: c.Param("id"), Name: name})
}

func (h *AdminHandler) DeleteServiceType(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.ServiceTypes.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err, repository.ErrServiceTypeNotFound, "service type")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}
