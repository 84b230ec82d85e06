package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"slidedeck-backend/internal/handlers"
	"slidedeck-backend/internal/middleware"
	"slidedeck-backend/internal/websocket"
)

func New(
	presentationHandler *handlers.PresentationHandler,
	slideHandler *handlers.SlideHandler,
	editorHandler *handlers.EditorHandler,
	agentHandler *handlers.AgentHandler,
	exportHandler *handlers.ExportHandler,
	playerHandler *handlers.PlayerHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Upload rate limiter (20 req/min per IP)
	uploadLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Presentation Routes ────
		r.Route("/presentations", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(uploadLimiter.Middleware)
				r.Post("/upload", presentationHandler.Upload)
			})
			r.Get("/", presentationHandler.List)
			r.Get("/{id}", presentationHandler.Get)
			r.Post("/{id}/genspark", presentationHandler.UpdateGensparkInfo)
			r.Patch("/{id}/status", presentationHandler.UpdateStatus)
			r.Delete("/{id}", presentationHandler.Delete)
		})

		// ──── Slide Routes ────
		r.Route("/slides/{presentation_id}", func(r chi.Router) {
			r.Get("/", slideHandler.List)
			r.Post("/", slideHandler.Upsert)
			r.Get("/{slide_id}", slideHandler.Get)
			r.Patch("/{slide_id}/animations", slideHandler.UpdateAnimations)
			r.Patch("/{slide_id}/narration", slideHandler.UpdateNarration)
			r.Patch("/{slide_id}/quiz", slideHandler.UpdateQuiz)
			r.Delete("/{slide_id}", slideHandler.Delete)
		})

		// ──── Editor Routes ────
		r.Route("/editor/{presentation_id}", func(r chi.Router) {
			r.Get("/", editorHandler.EditorURL)
			r.Post("/sync", editorHandler.Sync)
			r.Post("/generate-quizzes", editorHandler.GenerateQuizzes)
			r.Post("/generate-narration", editorHandler.GenerateNarration)
			r.Patch("/update-narration", editorHandler.UpdateNarration)
		})

		// ──── Agent Routes ────
		r.Route("/agent", func(r chi.Router) {
			r.Post("/create-slides", agentHandler.CreateSlides)
			r.Post("/update-agent-info", agentHandler.UpdateAgentInfo)
		})

		// ──── Webhook / Export Routes ────
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/genspark/callback", exportHandler.Callback)
			r.Post("/{presentation_id}/export", exportHandler.Export)
			r.Get("/{presentation_id}/exports", exportHandler.History)
		})

		// ──── Player Routes ────
		r.Route("/player/{presentation_id}", func(r chi.Router) {
			r.Get("/", playerHandler.GetPlayerData)
			r.Post("/progress", playerHandler.TrackProgress)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
