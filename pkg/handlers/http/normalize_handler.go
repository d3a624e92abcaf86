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

type normalizeHandler struct {
	logger   *logrus.Logger
	pipeline *pipeline.Pipeline
}

func NewNormalizeHandler(logger *logrus.Logger, p *pipeline.Pipeline) Handler {
	return &normalizeHandler{logger: logger, pipeline: p}
}

func (h *normalizeHandler) Handle(c *fiber.Ctx) error {
	var req request.TextRequest
	if err := c.BodyParser(&req); err != nil {
		prometheus.RequestsTotal.WithLabelValues("normalize", "400").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.pipeline.Normalize(req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			prometheus.RequestsTotal.WithLabelValues("normalize", "400").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: err.Error()})
		}
		h.logger.WithError(err).Error("normalization failed")
		prometheus.RequestsTotal.WithLabelValues("normalize", "500").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{Error: "normalization failed"})
	}

	prometheus.RequestsTotal.WithLabelValues("normalize", "200").Inc()
	return c.Status(fiber.StatusOK).JSON(result)
}
