package handler

import (
	"net/http"
	"strconv"

	"github.com/Raviram02/HostelBite/internal/middleware"
	"github.com/Raviram02/HostelBite/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func success(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

func fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, fail(he.Message))
	}

	//500
	return c.JSON(http.StatusInternalServerError, fail("internal error"))
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
