// File: internal/infra/http/server.go
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/infra/logging"
	"gamestore-backoffice/internal/infra/metrics"
	red "gamestore-backoffice/internal/infra/redis"
	"gamestore-backoffice/internal/usecase"
)

// Server is the public-facing HTTP surface: the Telegram webhook and the
// visitor chat ingress.
type Server struct {
	inbound     usecase.InboundRelayUseCase
	chatUC      usecase.ChatUseCase
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger
}

func NewServer(inbound usecase.InboundRelayUseCase, chatUC usecase.ChatUseCase, rateLimiter *red.RateLimiter, log *zerolog.Logger) *Server {
	return &Server{inbound: inbound, chatUC: chatUC, rateLimiter: rateLimiter, log: log}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/telegram/webhook", s.handleWebhook)
	r.Post("/api/chat/sessions/{sessionID}/messages", s.handleVisitorMessage)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// handleWebhook processes one Telegram update. The webhook contract is to
// acknowledge every delivery: any outcome after method validation answers
// 200, or Telegram amplifies the failure with retries.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("webhook: recovered from panic")
			s.ack(w)
		}
	}()

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		// Malformed payloads are a contract violation by the sender; log
		// with context and keep the protocol well-behaved.
		s.log.Error().Err(err).Msg("webhook: malformed update payload")
		s.ack(w)
		return
	}

	upd := fromTelegramUpdate(&update)

	if s.rateLimiter != nil && upd.HasMessage {
		allowed, err := s.rateLimiter.Allow(r.Context(), red.ChatKey(upd.ChatID, "webhook"), 30, time.Minute)
		if err != nil {
			s.log.Warn().Err(err).Msg("webhook: rate limit check failed")
		} else if !allowed {
			s.log.Warn().Int64("chat_id", upd.ChatID).Msg("webhook: rate limit exceeded, update dropped")
			s.ack(w)
			return
		}
	}

	ctx := logging.WithChatID(r.Context(), upd.ChatID)
	outcome, err := s.inbound.HandleUpdate(ctx, upd)
	if err != nil {
		// Collaborator failure mid-relay: the admin simply retries the
		// reply. Acknowledge anyway to stop webhook retry storms.
		logging.With(ctx, s.log).Error().Err(err).Str("outcome", string(outcome)).Msg("webhook: relay failed")
	}
	s.ack(w)
}

func (s *Server) ack(w http.ResponseWriter) {
	metrics.IncWebhookRequest(http.StatusOK)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// fromTelegramUpdate reduces a raw update to the relay's input shape,
// selecting the highest-resolution photo variant when one is present.
func fromTelegramUpdate(update *tgbotapi.Update) usecase.InboundUpdate {
	msg := update.Message
	if msg == nil {
		return usecase.InboundUpdate{}
	}
	upd := usecase.InboundUpdate{
		HasMessage: true,
		ChatID:     msg.Chat.ID,
		Text:       msg.Text,
		Caption:    msg.Caption,
	}
	if len(msg.Photo) > 0 {
		// Telegram orders photo variants by size; the last is the largest.
		upd.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
	}
	if reply := msg.ReplyToMessage; reply != nil {
		upd.IsReply = true
		upd.ReplyMessageID = int64(reply.MessageID)
		upd.ReplyText = reply.Text
		if upd.ReplyText == "" {
			upd.ReplyText = reply.Caption
		}
	}
	return upd
}

type visitorMessageRequest struct {
	VisitorID   string `json:"visitor_id"`
	VisitorName string `json:"visitor_name"`
	Text        string `json:"text"`
	ImageURL    string `json:"image_url"`
}

// handleVisitorMessage is the chat widget's write path: it creates the
// session on first contact and appends the visitor message, which triggers
// the outbound notification to the admin.
func (s *Server) handleVisitorMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.Allow(r.Context(), "rate_limit:visitor:"+sessionID, 60, time.Minute)
		if err != nil {
			s.log.Warn().Err(err).Msg("visitor ingress: rate limit check failed")
		} else if !allowed {
			http.Error(w, "Too many messages", http.StatusTooManyRequests)
			return
		}
	}

	var req visitorMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, msg, err := s.chatUC.AppendVisitorMessage(r.Context(), sessionID, req.VisitorID, req.VisitorName, req.Text, req.ImageURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, "Message cannot be empty", http.StatusBadRequest)
			return
		}
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("visitor ingress: append failed")
		http.Error(w, "Failed to store message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(struct {
		SessionID string `json:"session_id"`
		MessageID string `json:"message_id"`
	}{SessionID: id, MessageID: msg.ID})
}
