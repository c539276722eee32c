package api

import "github.com/gofiber/fiber/v2"

// GetProfile serves every card of the profile behind :slug.
func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.profiles.CompositeBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return handler.profileError(c, err)
	}
	return sendProfile(c, profile)
}

// GetProfileDomain serves the single card named by :domain.
func (handler *Handler) GetProfileDomain(c *fiber.Ctx) error {
	payload, err := handler.profiles.Domain(c.UserContext(), c.Params("slug"), c.Params("domain"))
	if err != nil {
		return handler.profileError(c, err)
	}
	return sendProfile(c, payload)
}

func sendProfile(c *fiber.Ctx, payload any) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(payload)
}
