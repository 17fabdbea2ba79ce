package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// DocAPI adds the default documentation route to the API, serving ./api/v1.yml.
// Ex: /{serviceName}/docs
// And adds the swagger UI route too, pointing at the documentation route.
// Ex: /v1/swagger/*
func DocAPI(serviceName, title string, app *fiber.App) {
	docURL := fmt.Sprintf("/%s/docs", serviceName)

	app.Get(docURL, func(c *fiber.Ctx) error {
		return c.SendFile("./api/v1.yml")
	})

	app.Get("/v1/swagger/*", swagger.New(swagger.Config{
		URL:   docURL,
		Title: title,
	}))
}
