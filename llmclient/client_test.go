package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger, _ := zap.NewDevelopment()
	cfg := &config.Config{
		LLMHost:           server.URL,
		LLMModel:          "gemini-3-flash-preview",
		LLMTemperature:    0.2,
		LLMRequestTimeout: 5 * time.Second,
		MaxRetries:        3,
		RetryDelaySeconds: time.Millisecond,
	}
	return New(cfg, logger)
}

func TestChat(t *testing.T) {
	var gotRequest chatRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{
			"choices": [{"message": {"content": "Try a restart. [[Done]]"}}],
			"usage": {"total_tokens": 57}
		}`))
	})

	client := testClient(t, handler)
	resp, err := client.Chat(context.Background(), "system context", []ChatMessage{
		{Role: "user", Content: "earlier"},
		{Role: "model", Content: "reply"},
	}, "the gates are alarming")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Text != "Try a restart. [[Done]]" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.TokensUsed != 57 {
		t.Errorf("tokens = %d", resp.TokensUsed)
	}

	if gotRequest.Model != "gemini-3-flash-preview" {
		t.Errorf("model = %q", gotRequest.Model)
	}
	if len(gotRequest.Messages) != 4 {
		t.Fatalf("messages = %d, want system + history + user", len(gotRequest.Messages))
	}
	if gotRequest.Messages[0].Role != "system" || gotRequest.Messages[3].Content != "the gates are alarming" {
		t.Errorf("messages = %+v", gotRequest.Messages)
	}
	if len(gotRequest.Tools) != 2 {
		t.Errorf("tools = %d, want send_ink_request and send_chat_history", len(gotRequest.Tools))
	}
}

func TestChatToolCalls(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"choices": [{"message": {
				"content": "",
				"tool_calls": [{"function": {"name": "send_ink_request", "arguments": "{\"color\": \"Cyan\", \"location\": \"Otaki\"}"}}]
			}}]
		}`))
	})

	client := testClient(t, handler)
	resp, err := client.Chat(context.Background(), "", nil, "request cyan toner for otaki")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(resp.FunctionCalls) != 1 {
		t.Fatalf("function calls = %d, want 1", len(resp.FunctionCalls))
	}
	call := resp.FunctionCalls[0]
	if call.Name != ToolSendInkRequest || call.Args["color"] != "Cyan" || call.Args["location"] != "Otaki" {
		t.Errorf("call = %+v", call)
	}
}

func TestChatContextWindowExceeded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "the request exceeds the available context size", http.StatusBadRequest)
	})

	client := testClient(t, handler)
	_, err := client.Chat(context.Background(), "", nil, "huge prompt")
	if !errors.Is(err, ErrContextWindowExceeded) {
		t.Errorf("err = %v, want ErrContextWindowExceeded", err)
	}
}

func TestChatRetriesOnServiceUnavailable(t *testing.T) {
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "loading model", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "finally"}}]}`))
	})

	client := testClient(t, handler)
	resp, err := client.Chat(context.Background(), "", nil, "hello")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Text != "finally" {
		t.Errorf("text = %q", resp.Text)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestChatNoChoices(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	client := testClient(t, handler)
	if _, err := client.Chat(context.Background(), "", nil, "hello"); err == nil {
		t.Error("expected error for empty choices")
	}
}
