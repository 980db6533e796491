package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/config"
	"potensidesa/internal/http/middleware"
	"potensidesa/internal/service"
)

const defaultAfterLogin = "/dashboard"

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func safeNext(next string) string {
	if middleware.IsLocalPath(next) {
		return next
	}
	return defaultAfterLogin
}

// LoginPage renders the sign-in form. Signed-in users go straight to next.
func LoginPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		next := safeNext(c.Query("next"))
		if middleware.SessionFromCtx(c).Authenticated() {
			return c.Redirect(next, fiber.StatusSeeOther)
		}
		return c.Render("pages/login", pageData(c, "Masuk", fiber.Map{
			"Form": loginForm{Next: next},
		}), baseLayout)
	}
}

// Login checks the credentials, sets the session cookie and redirects to next.
func Login(svc service.AuthService, cfg config.AuthConfig, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		var form loginForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
		}
		form.Next = safeNext(form.Next)

		token, sess, err := svc.Login(c.UserContext(), form.Email, form.Password)
		if err != nil {
			if statusFor(err) >= fiber.StatusInternalServerError {
				log.Error("login_failed", zap.String("request_id", middleware.RequestIDFromCtx(c)), zap.Error(err))
			}
			form.Password = ""
			return c.Status(statusFor(err)).Render("pages/login", pageData(c, "Masuk", fiber.Map{
				"Form":  form,
				"Error": service.UserMessage(err),
			}), baseLayout)
		}

		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect(form.Next, fiber.StatusSeeOther)
	}
}

// Logout revokes the session, clears the cookie and returns to the login page.
func Logout(svc service.AuthService, cfg config.AuthConfig, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(cfg.CookieName); token != "" {
			if err := svc.Logout(c.UserContext(), token); err != nil {
				log.Warn("logout_failed", zap.String("request_id", middleware.RequestIDFromCtx(c)), zap.Error(err))
			}
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}
