package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/smart-reviewer/internal/metrics"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/rs/zerolog"
)

var validate = services.NewValidator()

// parseBody decodes and validates a JSON request body into out
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return types.NewDataError("request.parse", types.ErrValidation, "Invalid request body", err)
	}
	if err := validate.Struct(out); err != nil {
		message := "Invalid input"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			message = "Missing or invalid field: " + verrs[0].Field()
		}
		return types.NewDataError("request.validate", types.ErrValidation, message, err)
	}
	return nil
}

// failure renders err for the client and counts it. Unclassified errors are logged in full.
func failure(c *fiber.Ctx, log zerolog.Logger, err error, errorType string) error {
	kind := utils.KindName(err)
	metrics.StoreErrors.WithLabelValues(kind).Inc()
	if kind == "internal" {
		log.Error().Err(err).Str("type", errorType).Str("path", c.Path()).Msg("request failed")
	}
	return utils.StoreErrorResponse(c, err, errorType)
}
