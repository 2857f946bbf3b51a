package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("http: %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// datasetError maps a failed dataset load to a user-visible 503
func datasetError(err error) error {
	log.Printf("http: dataset unavailable: %v", err)
	return fiber.NewError(fiber.StatusServiceUnavailable, "Dataset unavailable: "+err.Error())
}
