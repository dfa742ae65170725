package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (r *Router) login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	pair, err := r.accounts.Login(c.UserContext(), body.Email, body.Password)
	if err != nil {
		return err
	}

	return c.JSON(newTokenResponse(pair))
}

func (r *Router) tokenRefresh(c *fiber.Ctx) error {
	var body refreshRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	access, err := r.accounts.RefreshToken(body.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(accessTokenResponse{
		AccessToken:          access.Token,
		AccessTokenExpiresIn: access.ExpiresIn,
	})
}
