// File: internal/infra/web/handlers.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gamestore-backoffice/internal/domain"
	"gamestore-backoffice/internal/domain/model"
	"gamestore-backoffice/internal/usecase"
)

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statsHandler serves the dashboard totals.
func statsHandler(statsUC usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := statsUC.Totals(r.Context())
		if err != nil {
			http.Error(w, "Failed to get totals", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// chatsListHandler returns a paginated session list, newest activity first.
// It accepts 'offset' and 'limit' query parameters.
func chatsListHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 50 // Default page size
		}
		if offset < 0 {
			offset = 0
		}

		sessions, err := chatUC.ListSessions(ctx, offset, limit)
		if err != nil {
			http.Error(w, "Failed to list chats", http.StatusInternalServerError)
			return
		}
		total, err := chatUC.CountSessions(ctx)
		if err != nil {
			http.Error(w, "Failed to count chats", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Data   []*model.ChatSession `json:"data"`
			Total  int                  `json:"total"`
			Limit  int                  `json:"limit"`
			Offset int                  `json:"offset"`
		}{Data: sessions, Total: total, Limit: limit, Offset: offset})
	}
}

func chatGetHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := chatUC.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get chat", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func chatMessagesHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := chatUC.ListMessages(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to list messages", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.Message `json:"data"`
		}{Data: messages})
	}
}

type adminMessageRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

// chatSendHandler appends an admin reply from the dashboard. The stored
// provenance feeds the Telegram mirror, so the admin chat sees a copy.
func chatSendHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminMessageRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		msg, err := chatUC.SendAdminMessage(r.Context(), chi.URLParam(r, "sessionID"), req.Text, req.ImageURL)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, "Message cannot be empty", http.StatusBadRequest)
			default:
				http.Error(w, "Failed to send message", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	}
}

func chatReadHandler(chatUC usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := chatUC.MarkRead(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to mark chat as read", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Catalog =====

type catalogItemRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	PriceCents  int64          `json:"price_cents"`
	Quantity    int            `json:"quantity"`
	ImageURL    string         `json:"image_url"`
	Attrs       map[string]any `json:"attrs"`
}

func pathKind(r *http.Request) (model.CatalogKind, bool) {
	kind := model.CatalogKind(chi.URLParam(r, "kind"))
	return kind, model.ValidCatalogKind(kind)
}

func catalogListHandler(catalogUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r)
		if !ok {
			http.Error(w, "Unknown catalog kind", http.StatusBadRequest)
			return
		}

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 100
		}
		if offset < 0 {
			offset = 0
		}

		items, err := catalogUC.List(r.Context(), kind, offset, limit)
		if err != nil {
			http.Error(w, "Failed to list catalog items", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.CatalogItem `json:"data"`
		}{Data: items})
	}
}

func catalogCreateHandler(catalogUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r)
		if !ok {
			http.Error(w, "Unknown catalog kind", http.StatusBadRequest)
			return
		}

		var req catalogItemRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		item, err := catalogUC.Create(r.Context(), &model.CatalogItem{
			Kind:        kind,
			Name:        req.Name,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			Quantity:    req.Quantity,
			ImageURL:    req.ImageURL,
			Attrs:       req.Attrs,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to create catalog item", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func catalogGetHandler(catalogUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := catalogUC.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get catalog item", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func catalogUpdateHandler(catalogUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r)
		if !ok {
			http.Error(w, "Unknown catalog kind", http.StatusBadRequest)
			return
		}

		var req catalogItemRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		item, err := catalogUC.Update(r.Context(), &model.CatalogItem{
			ID:          chi.URLParam(r, "id"),
			Kind:        kind,
			Name:        req.Name,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			Quantity:    req.Quantity,
			ImageURL:    req.ImageURL,
			Attrs:       req.Attrs,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.NotFound(w, r)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "Failed to update catalog item", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func catalogDeleteHandler(catalogUC usecase.CatalogUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catalogUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to delete catalog item", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
