package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/textsentry/textsentry/pkg/analysis/pipeline"
	"github.com/textsentry/textsentry/pkg/handlers/http/response"
)

type healthHandler struct {
	logger   *logrus.Logger
	pipeline *pipeline.Pipeline
}

func NewHealthHandler(logger *logrus.Logger, p *pipeline.Pipeline) Handler {
	return &healthHandler{logger: logger, pipeline: p}
}

// Handle reports per-feature availability. Overall status is "degraded"
// when any feature is down; the service keeps answering either way.
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	features := h.pipeline.Health()
	status := "healthy"
	for _, available := range features {
		if !available {
			status = "degraded"
			break
		}
	}
	return c.Status(fiber.StatusOK).JSON(response.HealthResponse{
		Status:   status,
		Features: features,
	})
}
