package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/services"
)

// getUserIDFromContext extracts the authenticated user ID set by the JWT
// middleware. Returns 0 when the request carries no valid claims.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// serviceError translates a typed service error into the HTTP status for its
// kind, keeping the error code in the response body. Anything untyped is an
// internal error.
func serviceError(err error) error {
	if svcErr, ok := services.AsError(err); ok {
		status := http.StatusInternalServerError
		switch svcErr.Kind {
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindUnauthorized:
			status = http.StatusForbidden
		case services.KindConflict:
			status = http.StatusConflict
		case services.KindInvalidArgument:
			status = http.StatusBadRequest
		}
		return echo.NewHTTPError(status, echo.Map{"code": svcErr.Code, "message": svcErr.Message})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
