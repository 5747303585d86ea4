package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
)

type UpdateProfileRequest struct {
	FullName    *string  `json:"full_name"`
	Subjects    []string `json:"subjects"`
	GradeLevels []string `json:"grade_levels"`
	Bio         *string  `json:"bio"`
}

func GetProfile(c *fiber.Ctx) error {
	userID, _ := principal(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID, _ := principal(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Subjects != nil {
		user.Subjects = req.Subjects
	}
	if req.GradeLevels != nil {
		user.GradeLevels = req.GradeLevels
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	database.DB.Save(&user)

	return c.JSON(user)
}
