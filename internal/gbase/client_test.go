package gbase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", "bot-42", srv.Client(), newTestLogger())
}

func TestProduce_StreamedJSONChunks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/questions/bot-42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization header = %q", got)
		}

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Question != "営業時間は?" || req.SessionID != "sess-1" {
			t.Errorf("request body = %+v", req)
		}
		if !req.Stream || !req.StreamObj || !req.IsTest {
			t.Errorf("stream flags not set: %+v", req)
		}

		w.Write([]byte(`{"content":"営業時間は","message_id":"msg-7"}` + "\n"))
		w.Write([]byte(`{"content":"10時から20時です。"}` + "\n"))
	})

	reply, err := client.Produce(context.Background(), "営業時間は?", "sess-1")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if reply.Answer != "営業時間は10時から20時です。" {
		t.Errorf("answer = %q", reply.Answer)
	}
	if reply.MessageID != "msg-7" {
		t.Errorf("message id = %q", reply.MessageID)
	}
	if reply.Source != models.SourceRAG {
		t.Errorf("source = %s, want rag", reply.Source)
	}
}

func TestProduce_ListContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":["南館","1階に","ございます。"]}` + "\n"))
	})

	reply, err := client.Produce(context.Background(), "ATMは?", "sess-1")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if reply.Answer != "南館1階にございます。" {
		t.Errorf("answer = %q", reply.Answer)
	}
}

func TestProduce_PlainTextIsFAQ(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("よくあるご質問より:\n"))
		w.Write([]byte("営業時間は10時から20時です。\n"))
	})

	reply, err := client.Produce(context.Background(), "営業時間は?", "sess-1")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if reply.Source != models.SourceFAQ {
		t.Errorf("source = %s, want faq", reply.Source)
	}
	if reply.Answer != "よくあるご質問より:\n営業時間は10時から20時です。" {
		t.Errorf("answer = %q", reply.Answer)
	}
}

func TestProduce_UseFAQFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":"FAQ回答です。","use_faq":true}` + "\n"))
	})

	reply, err := client.Produce(context.Background(), "q", "sess-1")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if reply.Source != models.SourceFAQ {
		t.Errorf("source = %s, want faq", reply.Source)
	}
}

func TestProduce_JSONAnswerWinsOverText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("stray text line\n"))
		w.Write([]byte(`{"content":"構造化回答です。"}` + "\n"))
	})

	reply, err := client.Produce(context.Background(), "q", "sess-1")
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if reply.Answer != "構造化回答です。" {
		t.Errorf("answer = %q", reply.Answer)
	}
}

func TestProduce_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Produce(context.Background(), "q", "sess-1")
	if err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}

func TestProduce_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":"x"}` + "\n"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Produce(ctx, "q", "sess-1"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
