package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	config "github.com/njeri254/tutor_marketplace/configs"
	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
)

// UploadSessionMaterial stores a teaching material against a session.
// The file itself lives in Cloudinary; only the reference is persisted.
func UploadSessionMaterial(c *fiber.Ctx) error {
	teacherID, _ := principal(c)
	sessionID := c.Params("sessionId")

	var session models.Session
	if err := database.DB.First(&session, "id = ? AND teacher_id = ?", sessionID, teacherID).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Session not found or you are not its teacher."})
	}

	file, err := c.FormFile("material")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Material file is required."})
	}

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize upload service."})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "tutor_marketplace_materials",
		PublicID: fmt.Sprintf("session_%s_%s", sessionID, file.Filename),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file."})
	}

	material := models.Material{
		SessionID:  session.ID,
		FileName:   file.Filename,
		FileURL:    uploadResult.SecureURL,
		UploadedAt: time.Now(),
	}
	database.DB.Create(&material)

	return c.Status(fiber.StatusCreated).JSON(material)
}

func GetSessionMaterials(c *fiber.Ctx) error {
	userID, _ := principal(c)
	sessionID := c.Params("sessionId")

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	if session.StudentID != userID && session.TeacherID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this session's materials."})
	}

	var materials []models.Material
	database.DB.Where("session_id = ?", sessionID).Order("uploaded_at desc").Find(&materials)

	return c.JSON(materials)
}
