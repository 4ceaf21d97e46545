package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/auth"
)

// currentUserID extracts the authenticated user's id from the JWT set by the
// echo-jwt middleware.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user id in token")
	}
	return userID, nil
}

// parseIDParam parses a UUID path parameter.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return parseUUID(c.Param(name), name)
}

func parseUUID(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
