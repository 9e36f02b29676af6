package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/model"
	"github.com/iliyamo/energopraktiki/internal/repository"
)

type reorderReq struct {
	IDs []string `json:"ids"`
}

func bindReorder(c echo.Context) ([]string, bool) {
	var req reorderReq
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return nil, false
	}
	seen := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		if id == "" || seen[id] {
			return nil, false
		}
		seen[id] = true
	}
	return req.IDs, true
}

// nextOrder places a new entry after the current last one.
func nextOrder(orders []int) int {
	next := 1
	for _, o := range orders {
		if o >= next {
			next = o + 1
		}
	}
	return next
}

// ----- faq -----

type faqReq struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (h *AdminHandler) ListFAQ(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.FAQ.ListAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	if items == nil {
		items = []model.FAQItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AdminHandler) saveFAQ(c echo.Context, current *model.FAQItem) error {
	var req faqReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	it := model.FAQItem{Question: strings.TrimSpace(req.Question), Answer: strings.TrimSpace(req.Answer), IsActive: true}
	if it.Question == "" || it.Answer == "" {
		return jsonError(c, http.StatusBadRequest, "question and answer required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if current != nil {
		it.ID, it.DisplayOrder, it.IsActive = current.ID, current.DisplayOrder, current.IsActive
	}
	if req.IsActive != nil {
		it.IsActive = *req.IsActive
	}
	switch {
	case req.DisplayOrder != nil:
		it.DisplayOrder = *req.DisplayOrder
	case current == nil:
		all, err := h.FAQ.ListAll(ctx)
		if err != nil {
			return writeError(c, err, nil, "faq item")
		}
		orders := make([]int, len(all))
		for i, a := range all {
			orders[i] = a.DisplayOrder
		}
		it.DisplayOrder = nextOrder(orders)
	}

	var err error
	status := http.StatusOK
	if current == nil {
		status = http.StatusCreated
		err = h.FAQ.Create(ctx, &it)
	} else {
		err = h.FAQ.Update(ctx, &it)
	}
	if err != nil {
		return writeError(c, err, repository.ErrFAQNotFound, "faq item")
	}
	h.Purge.purge(c)
	return c.JSON(status, it)
}

func (h *AdminHandler) CreateFAQ(c echo.Context) error {
	return h.saveFAQ(c, nil)
}

func (h *AdminHandler) UpdateFAQ(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	current, err := h.FAQ.GetByID(ctx, c.Param("id"))
	cancel()
	if err != nil {
		return writeError(c, err, repository.ErrFAQNotFound, "faq item")
	}
	return h.saveFAQ(c, current)
}

// SetFAQActive toggles a question's visibility.
func (h *AdminHandler) SetFAQActive(c echo.Context) error {
	var req activeReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return jsonError(c, http.StatusBadRequest, "is_active required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.FAQ.SetActive(ctx, c.Param("id"), *req.IsActive); err != nil {
		return writeError(c, err, repository.ErrFAQNotFound, "faq item")
	}
	h.Purge.purge(c)
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "is_active": *req.IsActive})
}

func (h *AdminHandler) ReorderFAQ(c echo.Context) error {
	ids, ok := bindReorder(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "ids required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.FAQ.Reorder(ctx, ids); err != nil {
		return writeError(c, err, repository.ErrFAQNotFound, "faq item")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteFAQ(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.FAQ.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err, repository.ErrFAQNotFound, "faq item")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}

// ----- testimonials -----

type testimonialReq struct {
	AuthorName   string `json:"author_name"`
	Text         string `json:"text"`
	Photo        string `json:"photo"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (h *AdminHandler) ListTestimonials(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Testimonials.ListAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "database error")
	}
	if items == nil {
		items = []model.Testimonial{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AdminHandler) saveTestimonial(c echo.Context, current *model.Testimonial) error {
	var req testimonialReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}
	t := model.Testimonial{
		AuthorName: strings.TrimSpace(req.AuthorName),
		Text:       strings.TrimSpace(req.Text),
		Photo:      strings.TrimSpace(req.Photo),
		IsActive:   true,
	}
	if t.AuthorName == "" || t.Text == "" {
		return jsonError(c, http.StatusBadRequest, "author_name and text required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	if current != nil {
		t.ID, t.DisplayOrder, t.IsActive = current.ID, current.DisplayOrder, current.IsActive
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	switch {
	case req.DisplayOrder != nil:
		t.DisplayOrder = *req.DisplayOrder
	case current == nil:
		all, err := h.Testimonials.ListAll(ctx)
		if err != nil {
			return writeError(c, err, nil, "testimonial")
		}
		orders := make([]int, len(all))
		for i, a := range all {
			orders[i] = a.DisplayOrder
		}
		t.DisplayOrder = nextOrder(orders)
	}

	var err error
	status := http.StatusOK
	if current == nil {
		status = http.StatusCreated
		err = h.Testimonials.Create(ctx, &t)
	} else {
		err = h.Testimonials.Update(ctx, &t)
	}
	if err != nil {
		return writeError(c, err, repository.ErrTestimonialNotFound, "testimonial")
	}
	h.Purge.purge(c)
	return c.JSON(status, t)
}

func (h *AdminHandler) CreateTestimonial(c echo.Context) error {
	return h.saveTestimonial(c, nil)
}

func (h *AdminHandler) UpdateTestimonial(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	current, err := h.Testimonials.GetByID(ctx, c.Param("id"))
	cancel()
	if err != nil {
		return writeError(c, err, repository.ErrTestimonialNotFound, "testimonial")
	}
	return h.saveTestimonial(c, current)
}

// ReorderTestimonials sets the carousel order to the given id sequence.
func (h *AdminHandler) ReorderTestimonials(c echo.Context) error {
	ids, ok := bindReorder(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "ids required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Testimonials.Reorder(ctx, ids); err != nil {
		return writeError(c, err, repository.ErrTestimonialNotFound, "testimonial")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteTestimonial(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Testimonials.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err, repository.ErrTestimonialNotFound, "testimonial")
	}
	h.Purge.purge(c)
	return c.NoContent(http.StatusNoContent)
}
