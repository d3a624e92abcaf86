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

type detectSarcasmHandler struct {
	logger   *logrus.Logger
	pipeline *pipeline.Pipeline
}

func NewDetectSarcasmHandler(logger *logrus.Logger, p *pipeline.Pipeline) Handler {
	return &detectSarcasmHandler{logger: logger, pipeline: p}
}

func (h *detectSarcasmHandler) Handle(c *fiber.Ctx) error {
	var req request.TextRequest
	if err := c.BodyParser(&req); err != nil {
		prometheus.RequestsTotal.WithLabelValues("detect_sarcasm", "400").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.pipeline.AnalyzeSarcasm(req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			prometheus.RequestsTotal.WithLabelValues("detect_sarcasm", "400").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: err.Error()})
		}
		h.logger.WithError(err).Error("sarcasm analysis failed")
		prometheus.RequestsTotal.WithLabelValues("detect_sarcasm", "500").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{Error: "sarcasm analysis failed"})
	}

	prometheus.RequestsTotal.WithLabelValues("detect_sarcasm", "200").Inc()
	return c.Status(fiber.StatusOK).JSON(result)
}
