package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"carboquiz/internal/domain"
	"carboquiz/internal/infra/memory"
)

func newWSServer(t *testing.T) (*memory.LeaderboardStore, *httptest.Server) {
	t.Helper()
	store := memory.NewLeaderboardStore()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(store).ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return store, server
}

func dialWS(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readNext(t *testing.T, conn *websocket.Conn) (string, any) {
	t.Helper()
	var msg struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}

func TestWSStreamsInitialSnapshotsAndUpdates(t *testing.T) {
	store, server := newWSServer(t)
	if _, err := store.AddEntry(context.Background(), domain.LeaderboardEntry{PlayerName: "Alice", TotalCarbon: 100}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	conn := dialWS(t, server, "?streams=leaderboard,total")

	// Both streams push an initial snapshot, order not guaranteed.
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		typ, _ := readNext(t, conn)
		seen[typ] = true
	}
	if !seen["leaderboard"] || !seen["total"] {
		t.Fatalf("expected initial leaderboard and total snapshots, got %v", seen)
	}

	if _, err := store.AddEntry(context.Background(), domain.LeaderboardEntry{PlayerName: "Bob", TotalCarbon: 50}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	// Expect updates on both streams; collect until both arrived.
	gotBoard, gotTotal := false, false
	for i := 0; i < 4 && !(gotBoard && gotTotal); i++ {
		typ, payload := readNext(t, conn)
		switch typ {
		case "leaderboard":
			entries, ok := payload.([]any)
			if ok && len(entries) == 2 {
				gotBoard = true
			}
		case "total":
			if total, ok := payload.(float64); ok && total == 150 {
				gotTotal = true
			}
		}
	}
	if !gotBoard || !gotTotal {
		t.Fatalf("expected updates on both streams, leaderboard=%v total=%v", gotBoard, gotTotal)
	}
}

func TestWSRankStream(t *testing.T) {
	store, server := newWSServer(t)
	conn := dialWS(t, server, "?streams=ranks")

	typ, _ := readNext(t, conn)
	if typ != "ranks" {
		t.Fatalf("expected initial ranks snapshot, got %s", typ)
	}

	if err := store.UpdateRankEntry(context.Background(), domain.RankEntry{Rank: 2, PlayerName: "Alice", OptionText: "bus"}); err != nil {
		t.Fatalf("update rank: %v", err)
	}

	typ, payload := readNext(t, conn)
	if typ != "ranks" {
		t.Fatalf("expected ranks update, got %s", typ)
	}
	ranks, ok := payload.([]any)
	if !ok || len(ranks) != 1 {
		t.Fatalf("expected one rank bucket, got %v", payload)
	}
}

func TestWSUnknownStreamGetsErrorMessage(t *testing.T) {
	_, server := newWSServer(t)
	conn := dialWS(t, server, "?streams=bogus")

	typ, payload := readNext(t, conn)
	if typ != "error" {
		t.Fatalf("expected error message, got %s", typ)
	}
	if payload == nil {
		t.Fatal("expected error payload")
	}
}

func TestWSDefaultsToAllStreams(t *testing.T) {
	_, server := newWSServer(t)
	conn := dialWS(t, server, "")

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		typ, _ := readNext(t, conn)
		seen[typ] = true
	}
	if !seen["leaderboard"] || !seen["total"] || !seen["ranks"] {
		t.Fatalf("expected all three initial snapshots, got %v", seen)
	}
}
