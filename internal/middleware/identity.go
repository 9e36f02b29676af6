package middleware

import "github.com/labstack/echo/v4"

// SubjectID returns the authenticated subject (admin or facilitator id)
// stored by JWTAuth, or "" for anonymous requests.
func SubjectID(c echo.Context) string {
	s, _ := c.Get("user_id").(string)
	return s
}

// Role returns the role claim stored by JWTAuth, or "".
func Role(c echo.Context) string {
	r, _ := c.Get("role").(string)
	return r
}

// rateSubject identifies the caller for rate limiting keys.
func rateSubject(c echo.Context) string {
	if s := SubjectID(c); s != "" {
		return s
	}
	return "anon"
}
