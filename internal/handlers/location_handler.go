package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lostnfound/backend/internal/services"
)

type LocationHandler struct {
	locations *services.LocationService
}

func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

func (h *LocationHandler) Countries(c *fiber.Ctx) error {
	countries, err := h.locations.Countries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(countries)
}

func (h *LocationHandler) States(c *fiber.Ctx) error {
	states, err := h.locations.States(c.Context(), c.Query("country"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(states)
}

func (h *LocationHandler) Cities(c *fiber.Ctx) error {
	cities, err := h.locations.Cities(c.Context(), c.Query("country"), c.Query("state"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cities)
}
