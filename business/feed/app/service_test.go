package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/agentarena/arena-terminal/business/feed/domain"
	"github.com/agentarena/arena-terminal/internal/logger"
)

// feedServer accepts one connection at a time and pushes the queued frames.
func feedServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")

		for _, f := range frames {
			if err := conn.Write(r.Context(), websocket.MessageText, []byte(f)); err != nil {
				return
			}
		}
		// Keep the connection open until the client goes away.
		conn.Reader(r.Context())
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestService_ConsumesFeed(t *testing.T) {
	srv := feedServer(t, []string{
		`{"type":"match_created","data":{"matchId":7,"entryFee":"1000000000000000000"}}`,
		`{"type":"heartbeat","data":{}}`,
		`not json at all`,
		`{"type":"match_settled","data":{"matchId":7,"winnerAddr":"0xw","prizeMon":"2000000000000000000"}}`,
	})
	defer srv.Close()

	svc := NewService(Config{URL: wsURL(srv)}, logger.New(io.Discard, logger.LevelInfo, "test", nil))

	var mu sync.Mutex
	var seen []domain.Kind
	svc.OnEvent(func(ev domain.Event) {
		mu.Lock()
		seen = append(seen, ev.Kind)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer svc.Stop()

	waitFor(t, func() bool { return len(svc.Events()) == 2 },
		"expected two retained events")

	events := svc.Events()
	if events[0].Kind != domain.KindMatchEnd || events[1].Kind != domain.KindMatchStart {
		t.Errorf("expected newest-first [match_end match_start], got [%s %s]",
			events[0].Kind, events[1].Kind)
	}
	if events[0].Winner != "0xw" {
		t.Errorf("winner not carried: %+v", events[0])
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Errorf("handler should fire once per retained event, got %d", len(seen))
	}
}

func TestService_StartIsIdempotent(t *testing.T) {
	srv := feedServer(t, nil)
	defer srv.Close()

	svc := NewService(Config{URL: wsURL(srv)}, logger.New(io.Discard, logger.LevelInfo, "test", nil))
	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("second start must be a no-op: %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("second stop must be a no-op: %v", err)
	}
}

func TestService_RejectsBadURL(t *testing.T) {
	svc := NewService(Config{URL: "http://not-a-ws-url"}, logger.New(io.Discard, logger.LevelInfo, "test", nil))
	if err := svc.Start(context.Background()); err == nil {
		t.Error("expected error for non-ws scheme")
	}
}
