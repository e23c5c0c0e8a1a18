package middleware

import (
	"context"

	"resellerdesk/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BindUserContext copies the validated token's subject into the request
// context so handlers can attribute actions to a user. Wired as the JWT
// middleware's success handler; tokens without a parseable subject pass
// through unattributed.
func BindUserContext(c echo.Context) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return
	}

	ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}
