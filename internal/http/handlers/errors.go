package handlers

import (
	"errors"
	"net"
	"strings"
	"time"

	applog "catalogview/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const friendlyError = "Something went wrong. Please try again."

func isAPI(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") }

// ErrorHandler logs the error and answers without internals: JSON under /api,
// the notfound page elsewhere.
func ErrorHandler(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if isAPI(c) {
		return c.Status(code).JSON(fiber.Map{"error": friendlyError})
	}
	// Avoid leaking internals; best-effort render
	if rerr := notFound(c, code, friendlyError); rerr != nil {
		return c.Status(code).SendString(friendlyError)
	}
	return nil
}

// NotFound is the catch-all route.
func NotFound(c *fiber.Ctx) error {
	if isAPI(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	}
	return notFound(c, fiber.StatusNotFound, "Page not found")
}

// APILimiter throttles API calls per client address. Loopback callers are the page
// itself acting for its users, who are already limited per address upstream.
func APILimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			ip := net.ParseIP(c.IP())
			return ip != nil && ip.IsLoopback()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|api"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
}
