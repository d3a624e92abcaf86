package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/textsentry/textsentry/pkg/handlers/http"
	"github.com/textsentry/textsentry/pkg/middleware"
)

type apiRouter struct {
	handlerTransport handlers.HandlerTransport
}

func NewAPIRouter(handlerTransport handlers.HandlerTransport) ServerRouter {
	return &apiRouter{handlerTransport: handlerTransport}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	router.Get("/version", r.handlerTransport.GetVersionHandler.Handle)

	api := router.Group("/api", middleware.RequestID())
	{
		api.Post("/detect", r.handlerTransport.DetectHandler.Handle)
		api.Post("/normalize", r.handlerTransport.NormalizeHandler.Handle)
		api.Post("/detect_sarcasm", r.handlerTransport.DetectSarcasmHandler.Handle)
		api.Post("/analyze_context", r.handlerTransport.AnalyzeContextHandler.Handle)
		api.Get("/health", r.handlerTransport.HealthHandler.Handle)
	}

	return nil
}
