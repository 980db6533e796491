package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/http/middleware"
	"potensidesa/internal/service"
)

const investmentsPath = "/dashboard/investments"

// fieldErrors returns per-field messages for the form templates, or an empty map.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ves service.ValidationErrors
	if errors.As(err, &ves) {
		for _, e := range ves {
			if _, seen := out[e.Field]; !seen {
				out[e.Field] = e.Message
			}
		}
	}
	return out
}

// ListInvestments renders a page of investments.
func ListInvestments(svc service.InvestmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		data := fiber.Map{"Flash": c.Query("flash")}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			data["Error"] = service.UserMessage(err)
			c.Status(statusFor(err))
		} else {
			data["Result"] = res
			if next := res.Offset + res.Limit; next < res.Total {
				data["HasNext"] = true
				data["NextOffset"] = next
			}
			if res.Offset > 0 {
				data["HasPrev"] = true
				data["PrevOffset"] = max(res.Offset-res.Limit, 0)
			}
		}
		return c.Render("pages/investments", pageData(c, "Investasi", data), dashboardLayout)
	}
}

// InvestmentFormPage renders the create form, or the edit form pre-filled from ?id=.
// A record that cannot be loaded leaves an empty form with a dismissible notice: a missing record
// turns the form into a create form, a provider failure keeps the id so a retry updates the same record.
func InvestmentFormPage(inv service.InvestmentService, dash service.DashboardService, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return renderInvestmentForm(c, dash, fiber.StatusOK, &service.InvestmentForm{}, nil)
		}

		rec, err := inv.Get(c.UserContext(), id)
		switch {
		case err == nil:
			form := service.FormFromInvestment(rec)
			return renderInvestmentForm(c, dash, fiber.StatusOK, &form, nil)
		case errors.Is(err, service.ErrNotFound):
			return renderInvestmentForm(c, dash, fiber.StatusOK, &service.InvestmentForm{}, err)
		default:
			log.Warn("investment_fetch_failed",
				zap.String("request_id", middleware.RequestIDFromCtx(c)),
				zap.String("id", id),
				zap.Error(err),
			)
			return renderInvestmentForm(c, dash, fiber.StatusOK, &service.InvestmentForm{ID: id}, err)
		}
	}
}

// SaveInvestment validates and stores the submitted form. Success redirects to the list,
// failure re-renders the form with the entered values.
func SaveInvestment(inv service.InvestmentService, dash service.DashboardService, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		form := &service.InvestmentForm{}
		if err := c.BodyParser(form); err != nil {
			return renderInvestmentForm(c, dash, fiber.StatusBadRequest, form, err)
		}
		image, closeImage, err := formImage(c, "image")
		if err != nil {
			return renderInvestmentForm(c, dash, fiber.StatusBadRequest, form, service.ErrFileRequired)
		}
		defer closeImage()

		user := middleware.SessionFromCtx(c).User
		if _, err := inv.Save(c.UserContext(), user.ID, form, image); err != nil {
			status := statusFor(err)
			if status >= fiber.StatusInternalServerError {
				log.Error("investment_save_failed", zap.String("request_id", middleware.RequestIDFromCtx(c)), zap.Error(err))
			}
			return renderInvestmentForm(c, dash, status, form, err)
		}
		return c.Redirect(investmentsPath, fiber.StatusSeeOther)
	}
}

// DeleteInvestment removes :id and returns to the list.
func DeleteInvestment(svc service.InvestmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, statusFor(err), reviewCode(statusFor(err)), service.UserMessage(err))
		}
		return c.Redirect(investmentsPath+"?flash=deleted", fiber.StatusSeeOther)
	}
}

func renderInvestmentForm(c *fiber.Ctx, dash service.DashboardService, status int, form *service.InvestmentForm, formErr error) error {
	desa, err := dash.Desa(c.UserContext())
	msg := service.UserMessage(formErr)
	if err != nil && msg == "" {
		msg = service.UserMessage(err)
	}
	title := "Tambah Investasi"
	if form.ID != "" {
		title = "Ubah Investasi"
	}
	return c.Status(status).Render("pages/investment_form", pageData(c, title, fiber.Map{
		"Form":    form,
		"Desa":    desa,
		"Sectors": service.Sectors,
		"Errors":  fieldErrors(formErr),
		"Error":   msg,
	}), dashboardLayout)
}
