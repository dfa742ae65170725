package httpapi

import (
	"io"

	"github.com/gofiber/fiber/v2"
)

func (r *Router) setAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read file")
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)

	if _, err := r.avatars.SetAvatar(c.UserContext(), currentUserID(c), data, contentType); err != nil {
		return err
	}

	return c.JSON(successResponse{Success: true})
}

func (r *Router) avatarURL(c *fiber.Ctx) error {
	url, err := r.avatars.AvatarURL(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(avatarURLResponse{URL: url})
}
