// server.go
//
// Feedback, rating link and analytics service for multi-tenant business dashboards
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of smart-reviewer.
// smart-reviewer is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// smart-reviewer is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with smart-reviewer.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package server

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/smart-reviewer/internal/config"
	"github.com/localnerve/smart-reviewer/internal/handlers"
	"github.com/localnerve/smart-reviewer/internal/middleware"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	_ "github.com/localnerve/smart-reviewer/docs/api" // Swagger docs
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Config *config.Config
	Store  *services.Store
	Tokens *services.TokenManager
	Log    zerolog.Logger
	// Registerer receives the HTTP metrics; nil means the default registry
	Registerer prometheus.Registerer
}

// New builds the Fiber app with every route mounted
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(d.Log),
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(compress.New())

	// Prometheus metrics
	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	prom := fiberprometheus.NewWithRegistry(registerer, "smart-reviewer", "http", "", nil)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.UserContext(), d.Config, d.Store.DB(), d.Log)
		status := fiber.StatusOK
		if !result.Healthy() {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	publicHandler := &handlers.PublicHandler{Store: d.Store, Log: d.Log}
	authHandler := &handlers.AuthHandler{
		Store:        d.Store,
		Tokens:       d.Tokens,
		CookieSecure: d.Config.CookieSecure,
		Log:          d.Log,
	}
	businessHandler := &handlers.BusinessHandler{Store: d.Store, Log: d.Log}
	adminHandler := &handlers.AdminHandler{Store: d.Store, Log: d.Log}

	// API routes under /api
	api := app.Group("/api")

	// Public routes, rate limited per client
	limited := publicRateLimiter(d.Config.PublicRateLimit)
	api.Post("/feedback", limited, publicHandler.SubmitFeedback)
	api.Post("/analytics/qr-scan", limited, publicHandler.RecordQRScan)
	api.Post("/analytics/google-redirect", limited, publicHandler.RecordGoogleRedirect)
	api.Get("/rating/:uniqueId", limited, publicHandler.GetRatingPage)

	api.Post("/auth/login", limited, authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Business dashboard, scoped to the session owner
	business := api.Group("/business", middleware.AuthBusiness(d.Tokens))
	business.Get("/dashboard", businessHandler.GetDashboard)
	business.Put("/password", businessHandler.ChangePassword)

	// Admin
	adminKey := middleware.AdminKeyAuth(d.Config.AdminAPIKey)
	users := api.Group("/users", adminKey)
	users.Get("/", adminHandler.ListUsers)
	users.Post("/", adminHandler.CreateUser)
	users.Put("/", adminHandler.UpdateUser)
	users.Delete("/", adminHandler.DeleteUser)
	api.Get("/admin/reviews", adminKey, adminHandler.ListReviews)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

func publicRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, "Too many requests", fiber.StatusTooManyRequests, "rateLimit")
		},
	})
}

// errorHandler renders every error that escapes a handler in the standard error shape.
// Unclassified errors never leak their text.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			customErr *types.CustomError
			fiberErr  *fiber.Error
			dataErr   *types.DataError
		)

		switch {
		case errors.As(err, &customErr):
			return utils.ErrorResponse(c, customErr.Message, customErr.Code, customErr.Type)
		case errors.As(err, &fiberErr):
			return utils.ErrorResponse(c, fiberErr.Message, fiberErr.Code, "http")
		case errors.As(err, &dataErr):
			return utils.StoreErrorResponse(c, err, dataErr.Op)
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "unknown")
	}
}
