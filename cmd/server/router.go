package main

import (
	"net/http"

	"github.com/iudanet/ccboard/internal/server/handlers"
	"github.com/iudanet/ccboard/internal/server/middleware"
)

// routes собирает handlers HTTP surface
type routes struct {
	submit      *handlers.SubmitHandler
	leaderboard *handlers.LeaderboardHandler
	me          *handlers.MeHandler
	key         *handlers.KeyHandler
	oauth       *handlers.OAuthHandler
	config      *handlers.ConfigHandler
	health      *handlers.HealthHandler
}

// newRouter строит mux, привязывая auth gate к каждому маршруту
func newRouter(resolver *middleware.Resolver, r routes) *http.ServeMux {
	mux := http.NewServeMux()

	// CLI отправляет данные только по API ключу
	mux.Handle("POST /api/submit", resolver.RequireAPIKey(http.HandlerFunc(r.submit.Submit)))

	// Профиль доступен и CLI, и браузеру
	mux.Handle("GET /api/me", resolver.RequireAuth(http.HandlerFunc(r.me.Me)))

	// Перевыпуск ключа только из браузерной сессии: утекший ключ
	// не может перевыпустить сам себя
	mux.Handle("POST /api/regenerate-key", resolver.RequireSession(http.HandlerFunc(r.key.Regenerate)))

	// Рейтинг виден только залогиненным через web
	mux.Handle("GET /api/leaderboard/{period}", resolver.RequireSession(http.HandlerFunc(r.leaderboard.Leaderboard)))

	mux.HandleFunc("GET /api/auth/github", r.oauth.Authorize)
	mux.HandleFunc("GET /api/config", r.config.Config)
	mux.HandleFunc("GET /api/v1/health", r.health.Health)

	return mux
}
