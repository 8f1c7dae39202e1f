package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/services"
	"github.com/lead-studio/backend/internal/tracking"
	"go.uber.org/zap"
)

// fail maps service errors to HTTP status codes. Unknown errors are logged
// and hidden behind a generic message.
func fail(c *fiber.Ctx, log *zap.Logger, err error) error {
	reqID := middleware.GetRequestID(c)

	status := fiber.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		status, msg = fiber.StatusNotFound, "not found"
	case errors.Is(err, services.ErrProfileRequired):
		status, msg = fiber.StatusConflict, "save your profile first"
	case errors.Is(err, services.ErrForbidden):
		status, msg = fiber.StatusForbidden, "forbidden"
	default:
		log.Error("request failed", zap.String("request_id", reqID), zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, RequestID: reqID})
}

func badRequest(c *fiber.Ctx, msg string) error {
	reqID := middleware.GetRequestID(c)
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, RequestID: reqID})
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func trackingParams(c *fiber.Ctx) tracking.Params {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return tracking.Params{}
	}
	return tracking.Parse(q)
}
