package handlers

import (
	"yt-brief/config"
	"yt-brief/errors"
	"yt-brief/models"
	"yt-brief/services/video"

	"github.com/gofiber/fiber/v2"
)

type VideoHandler struct {
	service video.Service
	cfg     *config.Config
}

func NewVideoHandler(service video.Service, cfg *config.Config) *VideoHandler {
	return &VideoHandler{service: service, cfg: cfg}
}

// Process runs the whole pipeline synchronously and returns the rendered
// result. One request, one run; failures abort with the stage's diagnostic.
func (h *VideoHandler) Process(c *fiber.Ctx) error {
	var req models.ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return &errors.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
			Err:     err,
		}
	}

	result, err := h.service.Process(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// SessionConfig tells the UI which knobs to render: whether a server-side
// credential exists and the summary slider bounds.
func (h *VideoHandler) SessionConfig(c *fiber.Ctx) error {
	o := h.cfg.OpenAI
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"has_api_key":           o.HasAPIKey(),
			"summary_words_default": o.DefaultSummaryWords,
			"summary_words_min":     o.MinSummaryWords,
			"summary_words_max":     o.MaxSummaryWords,
			"summary_words_step":    o.SummaryWordsStep,
		},
	})
}
