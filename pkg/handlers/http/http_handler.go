package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	DetectHandler         Handler
	NormalizeHandler      Handler
	DetectSarcasmHandler  Handler
	AnalyzeContextHandler Handler
	HealthHandler         Handler
	GetVersionHandler     Handler
}
