// Package server provides the HTTP transports: the JSON chat API and the
// Twilio WhatsApp webhook.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Config struct {
	Addr string `envconfig:"ADDR" default:":8080"`
}

// New creates and configures the echo server.
func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	return e
}
