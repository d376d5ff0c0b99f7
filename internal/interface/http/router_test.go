package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fourp/smartchat/internal/domain/chat"
	"github.com/fourp/smartchat/internal/infra/config"
	apperrors "github.com/fourp/smartchat/pkg/errors"
)

func TestRouter_AskSuccess(t *testing.T) {
	state := "awaiting_schedule_call_confirmation"
	resp := chat.Response{
		Question:          "how much for an outlet repair",
		Answer:            "Here are estimated price ranges.",
		ConversationID:    "c1",
		ConversationState: &state,
		ActionType:        chat.ActionEstimateQuery,
	}
	svc := &stubChatService{
		askFn: func(ctx context.Context, req chat.Request) (chat.Response, error) {
			require.Equal(t, "how much for an outlet repair", req.Question)
			require.Equal(t, "c1", req.ConversationID)
			require.Equal(t, "collecting_estimate_details", req.ConversationState)
			return resp, nil
		},
	}

	recorder := performRequest(t,
		`{"question":"how much for an outlet repair","conversationId":"c1","conversationState":"collecting_estimate_details"}`,
		newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chat.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, resp, got)
}

func TestRouter_AskStateSerializedAsNull(t *testing.T) {
	svc := &stubChatService{
		askFn: func(ctx context.Context, req chat.Request) (chat.Response, error) {
			return chat.Response{Answer: "done", ActionType: chat.ActionAnswer}, nil
		},
	}

	recorder := performRequest(t, `{"question":"hi"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Contains(t, body, "conversationState")
	require.Equal(t, "null", string(body["conversationState"]))
}

func TestRouter_AskInvalidJSON(t *testing.T) {
	recorder := performRequest(t, `{"question":123}`, newRouterUnderTest(t, &stubChatService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_AskDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty question", apperrors.Wrap("invalid_input", "question cannot be empty", nil), http.StatusBadRequest, "invalid_request"},
		{"llm outage", apperrors.Wrap("llm_error", "answer generation failed", io.ErrUnexpectedEOF), http.StatusBadGateway, "llm_error"},
		{"retrieval outage", apperrors.Wrap("retrieval_error", "faq lookup failed", io.ErrUnexpectedEOF), http.StatusBadGateway, "retrieval_error"},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError, "chat_failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubChatService{
				askFn: func(ctx context.Context, req chat.Request) (chat.Response, error) {
					return chat.Response{}, tc.err
				},
			}
			recorder := performRequest(t, `{"question":"anything"}`, newRouterUnderTest(t, svc))
			require.Equal(t, tc.wantStatus, recorder.Code)

			errBody := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.wantCode, errBody["error"]["code"])
			require.NotEmpty(t, errBody["error"]["message"])
		})
	}
}

func TestRouter_Health(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, &stubChatService{}).Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORSAllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/chat/ask", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, &stubChatService{}).Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(t *testing.T, body string, server *http.Server) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/ask", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc chat.Service) *http.Server {
	t.Helper()
	handler := NewHandler(svc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:        ":0",
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubChatService struct {
	askFn func(ctx context.Context, req chat.Request) (chat.Response, error)
}

func (s *stubChatService) Ask(ctx context.Context, req chat.Request) (chat.Response, error) {
	if s.askFn != nil {
		return s.askFn(ctx, req)
	}
	return chat.Response{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
