package httpapi

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
)

const maxNameLength = 100

const minPasswordLength = 8

const passwordSpecials = "@#$%^&+="

// validatePassword enforces the signup password policy: at least eight
// characters with a digit, a lowercase letter, an uppercase letter, and one
// of the special characters.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasDigit || !hasLower || !hasUpper || !hasSpecial {
		return fiber.NewError(fiber.StatusBadRequest,
			"password must contain a digit, a lowercase letter, an uppercase letter and one of "+passwordSpecials)
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email")
	}
	return nil
}

func validateName(name *string) error {
	if name != nil && len(*name) > maxNameLength {
		return fiber.NewError(fiber.StatusBadRequest, "name too long")
	}
	return nil
}

type profilePayload struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (p *profilePayload) validate() error {
	if err := validateName(p.FirstName); err != nil {
		return err
	}
	return validateName(p.LastName)
}

type passwordsPayload struct {
	Password   string `json:"password"`
	RePassword string `json:"re_password"`
}

func (p *passwordsPayload) validate() error {
	if err := validatePassword(p.Password); err != nil {
		return err
	}
	if p.Password != p.RePassword {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}
	return nil
}

type signupRequest struct {
	passwordsPayload
	Email   string          `json:"email"`
	Profile *profilePayload `json:"profile"`
}

func (r *signupRequest) validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := r.passwordsPayload.validate(); err != nil {
		return err
	}
	if r.Profile != nil {
		return r.Profile.validate()
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type confirmationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordRequest struct {
	passwordsPayload
	Email string `json:"email"`
	Code  string `json:"code"`
}

type profileUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (r *profileUpdateRequest) validate() error {
	if r.FirstName == nil && r.LastName == nil {
		return fiber.NewError(fiber.StatusBadRequest, "one or more values must be set")
	}
	if err := validateName(r.FirstName); err != nil {
		return err
	}
	return validateName(r.LastName)
}
