package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpserver "travel_agent/internal/adapters/http_server"
	"travel_agent/internal/domain"
)

type stubChat struct {
	reply   domain.ChatReply
	err     error
	message string
	prior   []domain.Turn
}

func (s *stubChat) Handle(ctx context.Context, message string, prior []domain.Turn) (domain.ChatReply, error) {
	s.message = message
	s.prior = prior
	return s.reply, s.err
}

func newServer(stub *stubChat) http.Handler {
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Chat: stub})
	return srv.Mux()
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestChat_FinalReply(t *testing.T) {
	stub := &stubChat{reply: domain.ChatReply{
		Kind:       "final",
		Text:       "Here is your plan.",
		Tool:       "generate_itinerary",
		ToolOutput: json.RawMessage(`{"destination":{"id":1}}`),
	}}
	h := newServer(stub)

	rr := postChat(t, h, `{"message":"plan jaipur","conversation":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(out["kind"]) != `"final"` || string(out["tool"]) != `"generate_itinerary"` {
		t.Fatalf("body: %s", rr.Body.String())
	}
	if _, ok := out["tool_output"]; !ok {
		t.Fatalf("tool_output missing: %s", rr.Body.String())
	}

	if stub.message != "plan jaipur" {
		t.Fatalf("message: %q", stub.message)
	}
	if len(stub.prior) != 2 || stub.prior[0].Role != domain.RoleUser || stub.prior[1].Role != domain.RoleAssistant {
		t.Fatalf("prior: %+v", stub.prior)
	}
}

func TestChat_PlainReplyOmitsToolFields(t *testing.T) {
	stub := &stubChat{reply: domain.ChatReply{Kind: "reply", Text: "Which dates?"}}
	rr := postChat(t, newServer(stub), `{"message":"plan a trip"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "tool_output") || strings.Contains(body, `"tool"`) {
		t.Fatalf("tool fields must be omitted: %s", body)
	}
}

func TestChat_UnknownRoleDefaultsToUser(t *testing.T) {
	stub := &stubChat{reply: domain.ChatReply{Kind: "reply", Text: "ok"}}
	rr := postChat(t, newServer(stub), `{"message":"hi","conversation":[{"role":"system","content":"sneaky"}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if len(stub.prior) != 1 || stub.prior[0].Role != domain.RoleUser {
		t.Fatalf("role not coerced: %+v", stub.prior)
	}
}

func TestChat_BadRequests(t *testing.T) {
	stub := &stubChat{}
	h := newServer(stub)

	for name, body := range map[string]string{
		"empty message":   `{"message":"  "}`,
		"missing message": `{}`,
		"not json":        `{"message":`,
	} {
		t.Run(name, func(t *testing.T) {
			rr := postChat(t, h, body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: %d", rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("content type: %s", ct)
			}
		})
	}
}

func TestChat_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"upstream", &domain.UpstreamError{Service: "llm", Status: 500, Body: "boom"}, http.StatusBadGateway},
		{"malformed args", domain.ErrMalformedToolArgs, http.StatusBadGateway},
		{"unknown location", domain.ErrLocationNotFound, http.StatusUnprocessableEntity},
		{"data integrity", domain.ErrDataIntegrity, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postChat(t, newServer(&stubChat{err: tc.err}), `{"message":"hi"}`)
			if rr.Code != tc.want {
				t.Fatalf("status: want %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	newServer(&stubChat{}).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
}
