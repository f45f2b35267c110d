// File: internal/infra/web/server.go
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/usecase"
)

// Server is the admin dashboard API: authentication, the chat inbox, the
// dashboard stats and the catalog editors.
type Server struct {
	auth      *AuthManager
	chatUC    usecase.ChatUseCase
	catalogUC usecase.CatalogUseCase
	statsUC   usecase.StatsUseCase
	log       *zerolog.Logger
}

func NewServer(
	auth *AuthManager,
	chatUC usecase.ChatUseCase,
	catalogUC usecase.CatalogUseCase,
	statsUC usecase.StatsUseCase,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		auth:      auth,
		chatUC:    chatUC,
		catalogUC: catalogUC,
		statsUC:   statsUC,
		log:       logger,
	}
}

// Router builds the admin API routing. Everything under /api/v1 except the
// login endpoint sits behind the auth middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/api/v1/login", s.loginHandler())
	r.Post("/api/v1/logout", s.logoutHandler())

	r.Group(func(pr chi.Router) {
		pr.Use(s.auth.Middleware)

		pr.Get("/api/v1/stats", statsHandler(s.statsUC))

		pr.Get("/api/v1/chats", chatsListHandler(s.chatUC))
		pr.Get("/api/v1/chats/{sessionID}", chatGetHandler(s.chatUC))
		pr.Get("/api/v1/chats/{sessionID}/messages", chatMessagesHandler(s.chatUC))
		pr.Post("/api/v1/chats/{sessionID}/messages", chatSendHandler(s.chatUC))
		pr.Post("/api/v1/chats/{sessionID}/read", chatReadHandler(s.chatUC))

		pr.Get("/api/v1/catalog/{kind}", catalogListHandler(s.catalogUC))
		pr.Post("/api/v1/catalog/{kind}", catalogCreateHandler(s.catalogUC))
		pr.Get("/api/v1/catalog/{kind}/{id}", catalogGetHandler(s.catalogUC))
		pr.Put("/api/v1/catalog/{kind}/{id}", catalogUpdateHandler(s.catalogUC))
		pr.Delete("/api/v1/catalog/{kind}/{id}", catalogDeleteHandler(s.catalogUC))
	})

	return r
}

func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !s.auth.CheckPassword(req.Password) {
			s.log.Warn().Str("remote", r.RemoteAddr).Msg("admin login rejected")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		token, err := s.auth.Mint(w)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to mint admin session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Token string `json:"token"`
		}{Token: token})
	}
}

func (s *Server) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.auth.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
