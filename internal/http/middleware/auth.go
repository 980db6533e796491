package middleware

import (
	"context"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/auth"
)

// SessionLocalKey is the key used to store the resolved *auth.Session in Fiber's context locals.
const SessionLocalKey = "session"

// SessionResolver turns a session cookie into a Session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) *auth.Session
}

// SessionOptions configures Session.
type SessionOptions struct {
	Resolver   SessionResolver
	CookieName string
	// Timeout bounds resolution. A resolution that does not finish in time yields a loading session.
	Timeout time.Duration
	Log     *zap.Logger
}

// Session resolves the session cookie once per request and stores the result under SessionLocalKey.
func Session(opts SessionOptions) fiber.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		token := c.Cookies(opts.CookieName)
		if token == "" {
			c.Locals(SessionLocalKey, auth.Anonymous())
			return c.Next()
		}

		ctx := c.UserContext()
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		sess := opts.Resolver.Resolve(ctx, token)
		if sess == nil {
			sess = auth.Anonymous()
		}
		if sess.State == auth.StateLoading {
			rid := RequestIDFromCtx(c)
			log.Warn("session_resolve_slow", zap.String("request_id", rid), zap.Duration("timeout", opts.Timeout))
		}
		c.Locals(SessionLocalKey, sess)
		return c.Next()
	}
}

// SessionFromCtx returns the session stored by Session, or an anonymous one.
func SessionFromCtx(c *fiber.Ctx) *auth.Session {
	if s, ok := c.Locals(SessionLocalKey).(*auth.Session); ok && s != nil {
		return s
	}
	return auth.Anonymous()
}

// GuardOptions configures Guard.
type GuardOptions struct {
	// LoginPath is where unauthenticated views are sent. Defaults to /login.
	LoginPath string
	// OnLoading renders the waiting view. Defaults to a bare page that refreshes itself.
	OnLoading fiber.Handler
}

// LoadingRefreshSeconds is the Refresh header value sent with the waiting view.
const LoadingRefreshSeconds = "1"

// Guard protects a route group. Each request runs a fresh auth.Guard over the resolved session:
// loading shows the waiting view, unauthenticated redirects to the login page and authenticated proceeds.
// Protected content is never rendered for a view that is not authenticated.
func Guard(opts GuardOptions) fiber.Handler {
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	if opts.OnLoading == nil {
		opts.OnLoading = func(c *fiber.Ctx) error {
			c.Set("Refresh", LoadingRefreshSeconds)
			c.Set(fiber.HeaderCacheControl, "no-store")
			return c.Type("html").SendString(`<!DOCTYPE html><html><body><p role="status">Memuat…</p></body></html>`)
		}
	}

	return func(c *fiber.Ctx) error {
		g := auth.NewGuard()
		switch g.Observe(SessionFromCtx(c).State) {
		case auth.ActionRender:
			return c.Next()
		case auth.ActionRedirect:
			return c.Redirect(LoginRedirect(opts.LoginPath, c.OriginalURL()), fiber.StatusFound)
		case auth.ActionWait:
			c.Status(fiber.StatusOK)
			return opts.OnLoading(c)
		default:
			// Already unauthenticated with the redirect issued; render nothing protected.
			return c.SendStatus(fiber.StatusUnauthorized)
		}
	}
}

// RequireAdmin rejects authenticated non-admin users with 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SessionFromCtx(c).User.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}

// LoginRedirect builds loginPath?next=<target> when target is a local path.
func LoginRedirect(loginPath, target string) string {
	if !IsLocalPath(target) {
		return loginPath
	}
	return loginPath + "?next=" + url.QueryEscape(target)
}

// IsLocalPath reports whether p is a same-origin absolute path, rejecting //host and /\host forms.
func IsLocalPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
