package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/accountd/internal/auth"
	"github.com/dmitrijs2005/accountd/internal/common"
)

const userIDKey = "user_id"

// requireAccessToken authenticates the request from the Authorization header
// and stores the asserted user id in the request locals. Only access tokens
// pass; a refresh token presented here is rejected.
func (r *Router) requireAccessToken(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return common.ErrInvalidToken
	}

	userID, err := r.tokens.Validate(token, auth.TokenTypeAccess)
	if err != nil {
		return err
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(userIDKey).(int64)
	return id
}
