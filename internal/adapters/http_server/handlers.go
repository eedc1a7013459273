package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_agent/internal/domain"
)

// ChatHandler is what the chat endpoint needs from the application layer.
type ChatHandler interface {
	Handle(ctx context.Context, message string, prior []domain.Turn) (domain.ChatReply, error)
}

type Handlers struct{ Chat ChatHandler }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type chatRequest struct {
	Message      string     `json:"message"`
	Conversation []chatTurn `json:"conversation"`
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/chat", h.chat)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be valid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Message", "message must not be empty")
		return
	}

	prior := make([]domain.Turn, 0, len(req.Conversation))
	for _, t := range req.Conversation {
		role := domain.Role(t.Role)
		switch role {
		case domain.RoleUser, domain.RoleAssistant:
		default:
			role = domain.RoleUser
		}
		prior = append(prior, domain.Turn{Role: role, Content: t.Content})
	}

	reply, err := h.Chat.Handle(r.Context(), req.Message, prior)
	if err != nil {
		writeChatError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		log.Error().Err(err).Msg("failed to write chat response")
	}
}

// writeChatError maps domain failures onto transport statuses. Upstream and
// model-shape failures read as a bad gateway; a tool referencing a location
// the dataset does not have is the caller's problem.
func writeChatError(w http.ResponseWriter, err error) {
	var ue *domain.UpstreamError
	switch {
	case errors.As(err, &ue):
		log.Error().Err(err).Str("service", ue.Service).Int("status", ue.Status).Msg("upstream failure")
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", ue.Service+" request failed")
	case errors.Is(err, domain.ErrMalformedToolArgs):
		log.Error().Err(err).Msg("model produced malformed tool arguments")
		writeProblem(w, http.StatusBadGateway, "Bad Tool Arguments", "the model produced arguments the tools cannot use")
	case errors.Is(err, domain.ErrLocationNotFound):
		writeProblem(w, http.StatusUnprocessableEntity, "Unknown Location", "the referenced location is not in the dataset")
	case errors.Is(err, domain.ErrDataIntegrity):
		log.Error().Err(err).Msg("travel dataset integrity failure")
		writeProblem(w, http.StatusInternalServerError, "Data Error", "the travel dataset contains an invalid row")
	default:
		log.Error().Err(err).Msg("chat request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
