// handlers/events.go
package handlers

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"

	"swear-jar/services"
	"swear-jar/store"
)

// SetupEventRoutes serves the live curse feed as Server-Sent Events.
func SetupEventRoutes(app *fiber.App, stream *services.EventStream) {
	app.Get("/events", func(c *fiber.Ctx) error {
		// SSE headers
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		ctx := c.Context()
		since := time.Now()
		ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
			stream.Write(ctx, w, since)
		})
		return nil
	})
}

func SetupHealthRoutes(app *fiber.App, st *store.Store) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := st.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
