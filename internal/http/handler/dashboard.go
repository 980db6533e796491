package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/http/middleware"
	"potensidesa/internal/service"
)

// Dashboard renders the dashboard home. Sections that fail show an inline notice.
func Dashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.SessionFromCtx(c).User
		ov := svc.Overview(c.UserContext(), user)
		return c.Render("pages/dashboard", pageData(c, "Dasbor", fiber.Map{
			"Overview": ov,
			"Flash":    c.Query("flash"),
		}), dashboardLayout)
	}
}

// Approvals renders the review queue for admins.
func Approvals(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		var errs []string

		stats, err := svc.ApprovalStats(ctx)
		if err != nil {
			errs = append(errs, service.UserMessage(err))
		}
		pending, err := svc.PendingApprovals(ctx, service.DashboardListLimit)
		if err != nil {
			errs = append(errs, service.UserMessage(err))
		}
		return c.Render("pages/approvals", pageData(c, "Persetujuan", fiber.Map{
			"Stats":   stats,
			"Pending": pending,
			"Errors":  errs,
			"Flash":   c.Query("flash"),
		}), dashboardLayout)
	}
}

// ReviewLocation approves or rejects the location :id and returns to the review queue.
func ReviewLocation(svc service.DashboardService, approve bool, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		user := middleware.SessionFromCtx(c).User
		err := svc.Review(c.UserContext(), user, c.Params("id"), approve)
		if err != nil {
			status := statusFor(err)
			if status >= fiber.StatusInternalServerError {
				log.Error("review_failed", zap.String("request_id", middleware.RequestIDFromCtx(c)), zap.Error(err))
			}
			return writeError(c, status, reviewCode(status), service.UserMessage(err))
		}
		flash := "rejected"
		if approve {
			flash = "approved"
		}
		return c.Redirect("/dashboard/approvals?flash="+flash, fiber.StatusSeeOther)
	}
}

func reviewCode(status int) string {
	switch status {
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusBadRequest:
		return "INVALID_ID"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// LocationFormPage renders the location submission form.
func LocationFormPage(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderLocationForm(c, svc, fiber.StatusOK, &service.LocationForm{}, nil)
	}
}

// SubmitLocation stores a new pending location and returns to the dashboard.
func SubmitLocation(svc service.DashboardService, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		form := &service.LocationForm{}
		if err := c.BodyParser(form); err != nil {
			return renderLocationForm(c, svc, fiber.StatusBadRequest, form, err)
		}
		image, closeImage, err := formImage(c, "image")
		if err != nil {
			return renderLocationForm(c, svc, fiber.StatusBadRequest, form, service.ErrFileRequired)
		}
		defer closeImage()

		user := middleware.SessionFromCtx(c).User
		if _, err := svc.SubmitLocation(c.UserContext(), user.ID, form, image); err != nil {
			status := statusFor(err)
			if status >= fiber.StatusInternalServerError {
				log.Error("location_submit_failed", zap.String("request_id", middleware.RequestIDFromCtx(c)), zap.Error(err))
			}
			return renderLocationForm(c, svc, status, form, err)
		}
		return c.Redirect("/dashboard?flash=submitted", fiber.StatusSeeOther)
	}
}

func renderLocationForm(c *fiber.Ctx, svc service.DashboardService, status int, form *service.LocationForm, formErr error) error {
	desa, err := svc.Desa(c.UserContext())
	msg := service.UserMessage(formErr)
	if err != nil && msg == "" {
		msg = service.UserMessage(err)
	}
	return c.Status(status).Render("pages/location_form", pageData(c, "Usulkan Lokasi", fiber.Map{
		"Form":   form,
		"Desa":   desa,
		"Errors": fieldErrors(formErr),
		"Error":  msg,
	}), dashboardLayout)
}
