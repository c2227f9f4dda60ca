package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/repertoire/contacts-api/internal/api/handler"
)

// UserScope parses the :user_id path parameter once and stores it in the
// context under handler.UserIDKey. Non-integer ids are rejected with 422.
func UserScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := handler.ParseIDParam(c, "user_id")
			if err != nil {
				return err
			}
			c.Set(handler.UserIDKey, id)
			return next(c)
		}
	}
}
