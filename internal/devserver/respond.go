package devserver

import (
	"strconv"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// envelope writes the documented {success, data} body
func envelope(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func reply(c *fiber.Ctx, data any) error {
	return envelope(c, fiber.StatusOK, data)
}

func replyCreated(c *fiber.Ctx, data any) error {
	return envelope(c, fiber.StatusCreated, data)
}

// replyDone answers a command without a payload
func replyDone(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// bind parses the JSON body into T and validates it. The first field error
// becomes the message so clients can show it verbatim.
func bind[T any](c *fiber.Ctx, rules ...formx.Rule[T]) (T, error) {
	var req T
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, ErrInvalidBody().WithDetail("parse_error", err.Error())
		}
	}
	if err := formx.Check(req, rules...); err != nil {
		if e, ok := errx.As(err); ok {
			if first, ok := e.Details["first"].(string); ok {
				e.Message = first
			}
		}
		return req, err
	}
	return req, nil
}

// parsePaginationOptions reads page and limit
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("limit", kernel.DefaultPageSize),
	}.Normalize()
}

// queryBool returns nil when the parameter is absent or unparsable
func queryBool(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
