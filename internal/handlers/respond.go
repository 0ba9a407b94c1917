package handlers

import (
	pkgerrors "stockroom/pkg/errors"
	"stockroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// writeError maps err to its status code and a {detail} body. Server-side
// failures are logged with the request's context fields.
func writeError(c *fiber.Ctx, logg *logger.Logger, err error) error {
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)

	detail := meta.PublicMessage
	if typed := pkgerrors.As(err); typed != nil {
		detail = typed.Public()
	}

	if meta.HTTPStatus >= fiber.StatusInternalServerError {
		ctx := logg.WithField(c.UserContext(), "code", string(code))
		logg.Error(ctx, "request.failed", err)
	}

	return c.Status(meta.HTTPStatus).JSON(fiber.Map{"detail": detail})
}

func badBody(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "invalid request body")
}
