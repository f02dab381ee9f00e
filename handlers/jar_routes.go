// handlers/jar_routes.go
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"swear-jar/services"
	"swear-jar/store"
)

type participantRequest struct {
	Name string `json:"name" form:"name"`
}

type avatarRequest struct {
	Avatar string `json:"avatar" form:"avatar"`
}

type streakRequest struct {
	Streak int `json:"streak" form:"streak"`
}

func SetupJarRoutes(app *fiber.App, progression *services.ProgressionService, board *services.BoardService, challenges *services.ChallengeService) {
	app.Get("/", func(c *fiber.Ctx) error {
		snapshot, err := board.Snapshot(c.UserContext(), store.ParseOrderBy(c.Query("order")))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"board": snapshot,
			"flash": takeFlash(c),
		})
	})

	app.Get("/participants", func(c *fiber.Ctx) error {
		views, err := board.List(c.UserContext(), store.ParseOrderBy(c.Query("order")), c.Query("q"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(views)
	})

	app.Post("/participants", func(c *fiber.Ctx) error {
		var req participantRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fmt.Errorf("%w: malformed body", services.ErrValidation))
		}
		return addParticipant(c, progression, req.Name)
	})

	app.Get("/participants/:id", func(c *fiber.Ctx) error {
		view, err := board.Participant(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(view)
	})

	app.Delete("/participants/:id", func(c *fiber.Ctx) error {
		return removeParticipant(c, progression)
	})

	app.Post("/participants/:id/curses", func(c *fiber.Ctx) error {
		return addCurse(c, progression)
	})

	app.Delete("/participants/:id/curses", func(c *fiber.Ctx) error {
		return removeCurse(c, progression)
	})

	app.Put("/participants/:id/avatar", func(c *fiber.Ctx) error {
		var req avatarRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fmt.Errorf("%w: malformed body", services.ErrValidation))
		}
		p, err := progression.ChangeAvatar(c.UserContext(), c.Params("id"), req.Avatar)
		if err != nil {
			return fail(c, err)
		}
		return respond(c, fiber.StatusOK, SeveritySuccess, fmt.Sprintf("%s is now %s", p.Name, p.Avatar), p)
	})

	app.Put("/participants/:id/streak", func(c *fiber.Ctx) error {
		var req streakRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fmt.Errorf("%w: malformed body", services.ErrValidation))
		}
		p, err := progression.SetStreak(c.UserContext(), c.Params("id"), req.Streak)
		if err != nil {
			return fail(c, err)
		}
		return respond(c, fiber.StatusOK, SeveritySuccess, fmt.Sprintf("%s streak set to %d", p.Name, p.Streak), p)
	})

	app.Get("/participants/:id/challenges", func(c *fiber.Ctx) error {
		statuses, err := challenges.Today(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(statuses)
	})

	app.Get("/participants/:id/history", func(c *fiber.Ctx) error {
		events, err := board.History(c.UserContext(), c.Params("id"), c.QueryInt("limit", 20))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(events)
	})

	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		leaders, err := board.Leaderboard(c.UserContext(), c.QueryInt("limit", 0))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(leaders)
	})

	app.Get("/stats/weekly", func(c *fiber.Ctx) error {
		counts, err := board.Weekly(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(counts)
	})

	app.Get("/gate", func(c *fiber.Ctx) error {
		return c.JSON(board.Gate.Status(board.Clock.Now()))
	})
}

// SetupLegacyRoutes keeps the old GET links working. They always answer with a redirect.
func SetupLegacyRoutes(app *fiber.App, progression *services.ProgressionService) {
	app.Post("/kullanici_ekle", forceHTML, func(c *fiber.Ctx) error {
		return addParticipant(c, progression, c.FormValue("isim"))
	})
	app.Get("/kullanici_sil/:id", forceHTML, func(c *fiber.Ctx) error {
		return removeParticipant(c, progression)
	})
	app.Get("/kufur_ekle/:id", forceHTML, func(c *fiber.Ctx) error {
		return addCurse(c, progression)
	})
	app.Get("/kufur_azalt/:id", forceHTML, func(c *fiber.Ctx) error {
		return removeCurse(c, progression)
	})
}

func forceHTML(c *fiber.Ctx) error {
	c.Request().Header.Set(fiber.HeaderAccept, fiber.MIMETextHTML)
	return c.Next()
}

func addParticipant(c *fiber.Ctx, progression *services.ProgressionService, name string) error {
	p, err := progression.AddParticipant(c.UserContext(), name)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, SeveritySuccess, fmt.Sprintf("%s joined the jar", p.Name), p)
}

func removeParticipant(c *fiber.Ctx, progression *services.ProgressionService) error {
	if err := progression.RemoveParticipant(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, SeveritySuccess, "Participant removed", nil)
}

func addCurse(c *fiber.Ctx, progression *services.ProgressionService) error {
	res, err := progression.AddCurse(c.UserContext(), c.Params("id"), c.IP())
	if err != nil {
		return fail(c, err)
	}
	msg := fmt.Sprintf("%s owes %s now", res.Participant.Name, res.Participant.Balance.StringFixed(2))
	return respond(c, fiber.StatusOK, SeveritySuccess, msg, res)
}

func removeCurse(c *fiber.Ctx, progression *services.ProgressionService) error {
	res, err := progression.RemoveCurse(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	var msg string
	switch {
	case !res.Applied:
		msg = fmt.Sprintf("%s has no curses to take back", res.Participant.Name)
	case res.LevelUp:
		info := services.LevelInfoFor(res.Participant.XP)
		msg = fmt.Sprintf("%s reached level %d %s %s", res.Participant.Name, info.Level, info.Icon, info.Name)
	default:
		msg = fmt.Sprintf("%s earned back some XP", res.Participant.Name)
	}
	return respond(c, fiber.StatusOK, SeveritySuccess, msg, res)
}
