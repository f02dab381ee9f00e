// handlers/respond.go
package handlers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"swear-jar/middleware"
	"swear-jar/services"
)

const (
	SeveritySuccess = "success"
	SeverityError   = "error"

	flashCookie = "jar_flash"
)

// Flash is the message/severity pair shown after an action.
type Flash struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// wantsHTML is true for browser form posts, which get a redirect plus flash instead of JSON.
func wantsHTML(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML
}

func respond(c *fiber.Ctx, status int, severity, message string, data interface{}) error {
	if wantsHTML(c) {
		return redirectWithFlash(c, severity, message)
	}

	body := fiber.Map{
		"message":  message,
		"severity": severity,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func redirectWithFlash(c *fiber.Ctx, severity, message string) error {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(severity + "|" + message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// takeFlash reads and clears the pending flash, if any.
func takeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.ClearCookie(flashCookie)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	severity, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return nil
	}
	return &Flash{Message: message, Severity: severity}
}

// fail maps service errors to a status and a user-facing message. The process keeps serving.
func fail(c *fiber.Ctx, err error) error {
	status, message := classify(err)

	fields := []zap.Field{
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	}
	if status >= fiber.StatusInternalServerError {
		zap.L().Error("❌ action failed", fields...)
	} else {
		zap.L().Info("⚠️ action rejected", fields...)
	}

	return respond(c, status, SeverityError, message, nil)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, validationMessage(err)
	case errors.Is(err, services.ErrWindowClosed):
		return fiber.StatusConflict, "The jar is closed right now. Come back during opening hours."
	case errors.Is(err, services.ErrParticipantNotFound):
		return fiber.StatusNotFound, "Participant not found."
	case errors.Is(err, services.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, "Storage is unavailable, please try again."
	default:
		return fiber.StatusInternalServerError, "Something went wrong, nothing was changed."
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
