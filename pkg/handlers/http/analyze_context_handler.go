package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/textsentry/textsentry/pkg/analysis/pipeline"
	"github.com/textsentry/textsentry/pkg/handlers/http/request"
	"github.com/textsentry/textsentry/pkg/handlers/http/response"
	"github.com/textsentry/textsentry/pkg/infra/prometheus"
)

type analyzeContextHandler struct {
	logger   *logrus.Logger
	pipeline *pipeline.Pipeline
}

func NewAnalyzeContextHandler(logger *logrus.Logger, p *pipeline.Pipeline) Handler {
	return &analyzeContextHandler{logger: logger, pipeline: p}
}

func (h *analyzeContextHandler) Handle(c *fiber.Ctx) error {
	var req request.TextRequest
	if err := c.BodyParser(&req); err != nil {
		prometheus.RequestsTotal.WithLabelValues("analyze_context", "400").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.pipeline.AnalyzeContext(req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			prometheus.RequestsTotal.WithLabelValues("analyze_context", "400").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: err.Error()})
		}
		h.logger.WithError(err).Error("contextual analysis failed")
		prometheus.RequestsTotal.WithLabelValues("analyze_context", "500").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{Error: "contextual analysis failed"})
	}

	prometheus.RequestsTotal.WithLabelValues("analyze_context", "200").Inc()
	return c.Status(fiber.StatusOK).JSON(result)
}
