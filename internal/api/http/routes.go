package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-cards/internal/app"
	"github.com/i474232898/weather-cards/internal/card"
	"github.com/i474232898/weather-cards/internal/weather"
)

var validate = validator.New()

// Cards is the card-board surface the routes drive.
type Cards interface {
	Search(ctx context.Context, name string) (*card.Card, error)
	RemoveCard(ctx context.Context, cardID string) bool
	Cards() []*card.Card
	Loading() bool
	SavedLocations() []string
}

type Notices interface {
	List() []app.Notice
}

type Themes interface {
	Current() app.Theme
	Toggle(ctx context.Context) (app.Theme, error)
}

type Clock interface {
	Display() string
}

// Handlers groups the collaborators behind the HTTP surface.
type Handlers struct {
	Cards   Cards
	Notices Notices
	Theme   Themes
	Clock   Clock
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(a *fiber.App, h Handlers) {
	a.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := a.Group("/api/v1")

	v1.Get("/cards", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cards":   h.Cards.Cards(),
			"loading": h.Cards.Loading(),
			"saved":   h.Cards.SavedLocations(),
		})
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		created, err := h.Cards.Search(c.UserContext(), req.Name)
		if err != nil {
			return fiber.NewError(searchStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	v1.Delete("/cards/:cardId", func(c *fiber.Ctx) error {
		if !h.Cards.RemoveCard(c.UserContext(), c.Params("cardId")) {
			return fiber.NewError(fiber.StatusNotFound, "no card with that id")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/notices", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"notices": h.Notices.List()})
	})

	v1.Get("/theme", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"theme": h.Theme.Current()})
	})

	v1.Post("/theme/toggle", func(c *fiber.Ctx) error {
		t, err := h.Theme.Toggle(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save theme")
		}
		return c.JSON(fiber.Map{"theme": t})
	})

	v1.Get("/clock", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"time": h.Clock.Display()})
	})
}

// searchRequest is the body of a search. An empty name is rejected by the
// orchestrator so that the user still gets a notice for it.
type searchRequest struct {
	Name string `json:"name" validate:"max=200"`
}

func searchStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrEmptyQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, app.ErrAlreadyShown):
		return fiber.StatusConflict
	case errors.Is(err, weather.ErrNetwork), errors.Is(err, weather.ErrMalformedInput):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders errors as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
