package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/middleware"
	"github.com/iliyamo/energopraktiki/internal/model"
)

// RegisterAdmin registers back-office endpoints under /v1/admin. All routes
// require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, d Deps) {
	a := d.Admin
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Facilitators ----
	g.GET("/facilitators", a.ListFacilitators)
	g.POST("/facilitators", a.CreateFacilitator)
	g.GET("/facilitators/:id", a.GetFacilitator)
	g.PUT("/facilitators/:id", a.UpdateFacilitator)
	g.PATCH("/facilitators/:id/active", a.SetFacilitatorActive)
	g.DELETE("/facilitators/:id", a.DeleteFacilitator)
	g.GET("/facilitators/:id/schedule-code", a.ScheduleCode)
	g.GET("/schedule-codes", a.ScheduleCodes)

	// ---- Retreats ----
	g.GET("/retreats", a.ListRetreats)
	g.POST("/retreats", a.CreateRetreat)
	g.PUT("/retreats/:id", a.UpdateRetreat)
	g.DELETE("/retreats/:id", a.DeleteRetreat)

	// ---- Blog ----
	g.GET("/blog", a.ListPosts)
	g.POST("/blog", a.CreatePost)
	g.PUT("/blog/:id", a.UpdatePost)
	g.DELETE("/blog/:id", a.DeletePost)

	// ---- Taxonomy ----
	g.POST("/service-types", a.CreateServiceType)
	g.PUT("/service-types/:id", a.RenameServiceType)
	g.DELETE("/service-types/:id", a.DeleteServiceType)

	// ---- Settings ----
	g.GET("/settings/sort", a.GetSortMethod)
	g.PUT("/settings/sort", a.SetSortMethod)
	g.GET("/seo", a.GetSEO)
	g.PUT("/seo", a.PutSEO)
	g.PUT("/site/:block", a.PutBlock)

	// ---- FAQ ----
	g.GET("/faq", a.ListFAQ)
	g.POST("/faq", a.CreateFAQ)
	g.PUT("/faq/order", a.ReorderFAQ)
	g.PUT("/faq/:id", a.UpdateFAQ)
	g.PATCH("/faq/:id/active", a.SetFAQActive)
	g.DELETE("/faq/:id", a.DeleteFAQ)

	// ---- Testimonials ----
	g.GET("/testimonials", a.ListTestimonials)
	g.POST("/testimonials", a.CreateTestimonial)
	g.PUT("/testimonials/order", a.ReorderTestimonials)
	g.PUT("/testimonials/:id", a.UpdateTestimonial)
	g.DELETE("/testimonials/:id", a.DeleteTestimonial)

	// ---- Newsletter ----
	g.GET("/newsletter", d.Newsletter.List)
	g.DELETE("/newsletter/:id", d.Newsletter.Delete)

	g.PUT("/account", d.Account.UpdateAdminCredentials)
}
