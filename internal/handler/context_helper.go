package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"admissions/internal/auth"
)

// PrincipalKey is the echo context key holding the resolved principal.
const PrincipalKey = "principal"

func principalFrom(c echo.Context) (auth.Principal, error) {
	p, ok := c.Get(PrincipalKey).(auth.Principal)
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	return p, nil
}

func principalID(c echo.Context) (uuid.UUID, error) {
	p, err := principalFrom(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, parseErr := uuid.Parse(p.ID)
	if parseErr != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	return id, nil
}
