package contactController

import (
	"log"

	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"
	"madrasa/utils"
	contactValidator "madrasa/validators/contact"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact stores a contact-us message and forwards it by mail.
// The mail is best-effort; the stored row is the durable record.
func SubmitContact(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContact").(*contactValidator.ContactRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	message := models.ContactMessage{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Message: reqData.Message,
	}
	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error saving contact message: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit message!", nil)
	}

	go utils.SendContactNotification(reqData.Name, reqData.Email, reqData.Message)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message submitted successfully!", nil)
}
