package handler

import (
	"github.com/gofiber/fiber/v2"

	"potensidesa/internal/http/middleware"
	"potensidesa/internal/marketing"
)

const (
	baseLayout      = "layouts/base"
	dashboardLayout = "layouts/dashboard"
)

// pageData adds the values every layout reads: title, session, current path and request id.
func pageData(c *fiber.Ctx, title string, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	sess := middleware.SessionFromCtx(c)
	data["Title"] = title
	data["Session"] = sess
	data["User"] = sess.User
	data["Path"] = c.Path()
	data["RequestID"] = middleware.RequestIDFromCtx(c)
	return data
}

// Home renders the public landing page.
func Home(page marketing.Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("pages/home", pageData(c, "Potensi Desa", fiber.Map{"Page": page}), baseLayout)
	}
}

// LoadingPage is the waiting view shown while a session is still being resolved. It refreshes itself.
func LoadingPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Refresh", middleware.LoadingRefreshSeconds)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Render("pages/loading", pageData(c, "Memuat", nil), baseLayout)
	}
}
