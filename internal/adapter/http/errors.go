package http

import (
	"errors"

	"cv-generator/internal/model"
	"cv-generator/internal/store"
	"cv-generator/internal/usecase"
	ai "cv-generator/pkg/ai"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	errRecordNotFound = errors.New("record not found")
	errUnknownField   = errors.New("unknown field")
	errInvalidID      = errors.New("invalid session id")
)

// HTTPStatus maps an error from the lower layers to a response status.
func HTTPStatus(err error) int {
	var (
		fe   *fiber.Error
		verr *model.ValidationError
		ves  validator.ValidationErrors
		se   *ai.StatusError
	)
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, store.ErrSessionNotFound), errors.Is(err, errRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEnhancementInProgress):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrPDFUnavailable):
		return fiber.StatusNotImplemented
	case errors.As(err, &verr), errors.As(err, &ves),
		errors.Is(err, errUnknownField), errors.Is(err, errInvalidID):
		return fiber.StatusBadRequest
	case errors.Is(err, ai.ErrMissingAPIKey), errors.Is(err, ai.ErrEmptyResponse), errors.As(err, &se):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// FiberConfig is the app configuration the routes expect. Immutable makes
// fiber copy request values, so strings parsed from a body can be kept in a
// session after the request buffer is reused.
func FiberConfig() fiber.Config {
	return fiber.Config{
		ErrorHandler: ErrorHandler,
		Immutable:    true,
	}
}

// ErrorHandler is installed on the fiber app so errors returned from handlers
// share the JSON shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return errorJSON(c, err)
}
