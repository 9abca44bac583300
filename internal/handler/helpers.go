package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lms-go-api/internal/authz"
	"github.com/noah-isme/lms-go-api/internal/models"
	"github.com/noah-isme/lms-go-api/internal/service"
	"github.com/noah-isme/lms-go-api/internal/utils"
)

// CallerFromCtx builds the policy caller from the identity the JWT middleware
// stored on the request. Requests without credentials produce the anonymous
// caller; services decide whether that is acceptable.
func CallerFromCtx(c *fiber.Ctx) authz.Caller {
	userID, ok := c.Locals("user_id").(uint)
	if !ok || userID == 0 {
		return authz.Anonymous
	}

	role, _ := c.Locals("user_role").(string)

	return authz.Caller{
		Authenticated: true,
		UserID:        userID,
		Role:          models.Role(role),
	}
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Params(key)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}

	return uint(value), nil
}

func parsePagination(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	pageSize = c.QueryInt("page_size", 20)
	return page, pageSize
}

// respondError maps a service failure onto the fixed HTTP status for its kind.
// The mapping is deterministic: not-found responses are identical whether the
// resource is absent or merely hidden from the caller.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	}

	if kind, ok := service.KindOf(err); ok {
		switch kind {
		case service.KindUnauthenticated:
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		case service.KindForbidden:
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case service.KindNotFound:
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case service.KindInvalidState:
			return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
		case service.KindConflict:
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
	}

	logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
