package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo.Context key under which the UserScope middleware
// stores the parsed :user_id path parameter.
const UserIDKey = "user_id"

// ctxUserID returns the owner id injected by the UserScope middleware, or
// parses the :user_id parameter when the middleware did not run.
func ctxUserID(c echo.Context) (int64, error) {
	if id, ok := c.Get(UserIDKey).(int64); ok {
		return id, nil
	}
	return ParseIDParam(c, "user_id")
}

// ParseIDParam parses an integer path parameter, failing with 422 otherwise.
func ParseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, name+" must be an integer")
	}
	return id, nil
}

// pathText returns a decoded text path parameter. Echo matches on the raw
// path when the request carries escaped slashes, leaving params encoded.
func pathText(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
