package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	lib "github.com/fcrepo-go/ldprepo/common/net/http"
	"github.com/fcrepo-go/ldprepo/internal/engine"
)

// NewRouter builds the fiber application exposing uc's lifecycle
// operations as the LDP HTTP surface, following the same middleware
// pipeline shape as the reference ledger service's router (CORS →
// correlation ID → structured logging → route handlers → documentation).
func NewRouter(lg mlog.Logger, uc *engine.UseCase, serviceName string) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             64 * 1024 * 1024,
	})

	f.Use(lib.WithCORS())
	f.Use(lib.WithCorrelationID())
	f.Use(lib.WithHTTPLogging(lib.WithCustomLogger(lg)))

	h := &Handler{UseCase: uc}

	f.Get("/ldp/*", h.Get)
	f.Head("/ldp/*", h.Head)
	f.Put("/ldp/*", h.Put)
	f.Post("/ldp/*", h.Post)
	f.Delete("/ldp/*", h.Delete)
	f.Patch("/ldp/*", h.Patch)

	f.Get("/health", lib.Ping)
	lib.DocAPI(serviceName, "LDP Repository API", f)

	return f
}
