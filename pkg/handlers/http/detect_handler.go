package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/textsentry/textsentry/pkg/analysis/pipeline"
	"github.com/textsentry/textsentry/pkg/handlers/http/request"
	"github.com/textsentry/textsentry/pkg/handlers/http/response"
	"github.com/textsentry/textsentry/pkg/infra/cache"
	"github.com/textsentry/textsentry/pkg/infra/prometheus"
)

type detectHandler struct {
	logger           *logrus.Logger
	pipeline         *pipeline.Pipeline
	cache            cache.Client
	defaultThreshold float64
}

// NewDetectHandler serves the primary detection endpoint. cacheClient may
// be nil when no redis is configured.
func NewDetectHandler(
	logger *logrus.Logger,
	p *pipeline.Pipeline,
	cacheClient cache.Client,
	defaultThreshold float64,
) Handler {
	return &detectHandler{
		logger:           logger,
		pipeline:         p,
		cache:            cacheClient,
		defaultThreshold: defaultThreshold,
	}
}

// Handle analyzes the request text and returns the fused toxicity verdict.
// Stage failures degrade the result; they never surface as transport
// errors.
func (h *detectHandler) Handle(c *fiber.Ctx) error {
	var req request.DetectRequest
	if err := c.BodyParser(&req); err != nil {
		prometheus.RequestsTotal.WithLabelValues("detect", "400").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: "invalid request body"})
	}

	threshold := h.defaultThreshold
	if req.Sensitivity != nil {
		threshold = *req.Sensitivity
		if threshold < 0 || threshold > 1 {
			prometheus.RequestsTotal.WithLabelValues("detect", "400").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: "sensitivity must be in [0,1]"})
		}
	}

	if h.cache != nil {
		if cached, err := h.cache.GetResult(c.UserContext(), req.Text, threshold); err == nil && cached != nil {
			prometheus.CacheEvents.WithLabelValues("hit").Inc()
			prometheus.RequestsTotal.WithLabelValues("detect", "200").Inc()
			return c.Status(fiber.StatusOK).JSON(cached)
		} else if err != nil {
			h.logger.WithError(err).Debug("result cache lookup failed")
		}
		prometheus.CacheEvents.WithLabelValues("miss").Inc()
	}

	result, err := h.pipeline.Detect(c.UserContext(), req.Text, threshold)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			prometheus.RequestsTotal.WithLabelValues("detect", "400").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, pipeline.ErrAllStagesFailed) {
			// Degraded but well-formed result; the caller distinguishes
			// it via enhanced=false and the recorded failure reason.
			h.logger.WithError(err).Error("detection fully degraded")
			prometheus.RequestsTotal.WithLabelValues("detect", "200").Inc()
			return c.Status(fiber.StatusOK).JSON(result)
		}
		h.logger.WithError(err).Error("detection failed")
		prometheus.RequestsTotal.WithLabelValues("detect", "500").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{Error: "detection failed"})
	}

	if h.cache != nil {
		if err := h.cache.SaveResult(c.UserContext(), req.Text, threshold, result); err != nil {
			h.logger.WithError(err).Debug("result cache save failed")
		}
	}

	prometheus.RequestsTotal.WithLabelValues("detect", "200").Inc()
	return c.Status(fiber.StatusOK).JSON(result)
}
