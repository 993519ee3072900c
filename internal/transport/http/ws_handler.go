package http

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"carboquiz/internal/game"
)

// WSHandler streams leaderboard state to dashboard clients. Every message
// carries a full-replace snapshot; clients must not treat payloads as deltas.
type WSHandler struct {
	leaderboard game.LeaderboardStore
	upgrader    websocket.Upgrader
}

func NewWSHandler(leaderboard game.LeaderboardStore) *WSHandler {
	return &WSHandler{
		leaderboard: leaderboard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and pushes snapshots for the requested
// streams ("leaderboard", "total", "ranks"; default all) until the client
// disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	streams := parseStreams(r.URL.Query().Get("streams"))
	if len(streams) == 0 {
		http.Error(w, "unknown streams requested", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	var forwarders sync.WaitGroup
	forward := func(typ string, values <-chan any) {
		defer forwarders.Done()
		for {
			select {
			case value, ok := <-values:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: typ, Payload: value}:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}

	var cancels []func()
	for _, stream := range streams {
		switch stream {
		case "leaderboard":
			ch, cancel := h.leaderboard.SubscribeEntries()
			cancels = append(cancels, cancel)
			forwarders.Add(1)
			go forward("leaderboard", wrap(ch))
		case "total":
			ch, cancel := h.leaderboard.SubscribeTotal()
			cancels = append(cancels, cancel)
			forwarders.Add(1)
			go forward("total", wrap(ch))
		case "ranks":
			ch, cancel := h.leaderboard.SubscribeRanks()
			cancels = append(cancels, cancel)
			forwarders.Add(1)
			go forward("ranks", wrap(ch))
		default:
			select {
			case send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unknown stream: " + stream}}:
			case <-done:
			}
		}
	}

	// The read loop exists to notice disconnects; inbound content is ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	for _, cancel := range cancels {
		cancel()
	}
	forwarders.Wait()
	close(send)
	<-writerDone
}

func parseStreams(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"leaderboard", "total", "ranks"}
	}
	var streams []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			streams = append(streams, part)
		}
	}
	return streams
}

// wrap adapts a typed subscription channel to the writer's any-typed feed.
func wrap[T any](ch <-chan T) <-chan any {
	out := make(chan any, 8)
	go func() {
		defer close(out)
		for value := range ch {
			out <- value
		}
	}()
	return out
}
