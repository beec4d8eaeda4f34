package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/runecast-protocol/internal/hub"
	"github.com/DoyleJ11/runecast-protocol/internal/ws"
)

func SetupRoutes(h *hub.Hub, app ws.MessageHandler, opts ws.Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/protocol", Protocol)
	r.Post("/v1/frames/client", DecodeClientFrame(log))
	r.Get("/ws", ws.Handler(h, app, opts))
	return r
}
