package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/accountd/internal/users"
)

func (r *Router) signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.validate(); err != nil {
		return err
	}

	input := &users.RegistrationInput{
		Email:    body.Email,
		Password: body.Password,
	}
	if body.Profile != nil {
		input.FirstName = body.Profile.FirstName
		input.LastName = body.Profile.LastName
	}

	info, err := r.accounts.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.JSON(newUserInfoResponse(info))
}

func (r *Router) me(c *fiber.Ctx) error {
	info, err := r.accounts.GetUserInfo(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(newUserInfoResponse(info))
}

func (r *Router) updateMe(c *fiber.Ctx) error {
	var body profileUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.validate(); err != nil {
		return err
	}

	profile, err := r.accounts.UpdateProfile(c.UserContext(), currentUserID(c), users.ProfileUpdate{
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(newProfileResponse(profile))
}

func (r *Router) resendActivation(c *fiber.Ctx) error {
	var body emailRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := r.accounts.ResendActivation(c.UserContext(), body.Email); err != nil {
		return err
	}

	return c.JSON(successResponse{Success: true})
}

func (r *Router) activation(c *fiber.Ctx) error {
	var body confirmationRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := r.accounts.Activate(c.UserContext(), body.Email, body.Code); err != nil {
		return err
	}

	return c.JSON(successResponse{Success: true})
}

func (r *Router) resetPasswordRequest(c *fiber.Ctx) error {
	var body emailRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := r.accounts.ResetPasswordRequest(c.UserContext(), body.Email); err != nil {
		return err
	}

	return c.JSON(successResponse{Success: true})
}

func (r *Router) resetPassword(c *fiber.Ctx) error {
	var body resetPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.passwordsPayload.validate(); err != nil {
		return err
	}

	if err := r.accounts.ResetPassword(c.UserContext(), body.Email, body.Code, body.Password); err != nil {
		return err
	}

	return c.JSON(successResponse{Success: true})
}
