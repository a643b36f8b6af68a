package handler // handler contains the HTTP handlers of the API

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// fail writes the standard error envelope.  Every non-2xx response of the
// API goes through here so the frontend can rely on one shape.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// failField is fail with the offending field name attached, used by
// validation errors so the frontend can highlight the input.
func failField(c echo.Context, msg, field string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": msg,
		"field":   field,
	})
}

// failDebug is fail with the underlying error attached when the debug flag
// is set; internals never leak otherwise.
func failDebug(c echo.Context, status int, msg string, debug bool, err error) error {
	body := echo.Map{"success": false, "message": msg}
	if debug && err != nil {
		body["debug"] = err.Error()
	}
	return c.JSON(status, body)
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
