package horoschat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNoopCompleter(t *testing.T) {
	chat := New(Config{Model: "test-noop"})

	out, err := chat.Complete(context.Background(), Request{User: "anything"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "{}" {
		t.Fatalf("expected empty JSON object, got %q", out)
	}
	if chat.Model() != "test-noop" {
		t.Fatalf("expected model test-noop, got %q", chat.Model())
	}
}

func TestOpenAIClient(t *testing.T) {
	// Mock OpenAI-compatible server.
	var gotReq chatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", 404)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"model": gotReq.Model,
			"choices": []map[string]any{
				{
					"message":       map[string]string{"role": "assistant", "content": `{"ok":true}`},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer srv.Close()

	chat := New(Config{
		Endpoint: srv.URL,
		Model:    "test-model",
		APIKey:   "secret",
	})

	out, err := chat.Complete(context.Background(), Request{
		System: "You are a quiz author.",
		User:   "Write one question.",
		JSON:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected content: %q", out)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("expected response_format json_object, got %+v", gotReq.ResponseFormat)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q, want test-model", gotReq.Model)
	}
}

func TestOpenAIClientNoSystem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", req.Messages)
		}
		if req.ResponseFormat != nil {
			t.Errorf("response_format should be omitted, got %+v", req.ResponseFormat)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "plain text"}},
			},
		})
	}))
	defer srv.Close()

	chat := New(Config{Endpoint: srv.URL, Model: "m"})
	out, err := chat.Complete(context.Background(), Request{User: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "plain text" {
		t.Fatalf("unexpected content: %q", out)
	}
}

func TestOpenAIClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	chat := New(Config{Endpoint: srv.URL, Model: "m"})
	_, err := chat.Complete(context.Background(), Request{User: "hi"})
	if err == nil {
		t.Fatal("expected error from 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("error should carry the status code: %v", err)
	}
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	chat := New(Config{Endpoint: srv.URL, Model: "m"})
	_, err := chat.Complete(context.Background(), Request{User: "hi"})
	if err == nil {
		t.Fatal("expected error when no choices returned")
	}
}
