package http

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	"github.com/brewradar/brewradar/internal/pkg/debounce"
)

// wsMessage is sent from client to subscribe/unsubscribe to feeds, or to feed
// the live search box.
type wsMessage struct {
	Action  string `json:"action"`  // "subscribe" | "unsubscribe" | "search"
	Branch  string `json:"branch"`  // branch ID filter (optional, "" = all)
	User    string `json:"user"`    // user ID filter for the rewards channel
	Channel string `json:"channel"` // "status" | "reviews" | "rewards" (default: status)
	Query   string `json:"query"`   // search input, one message per keystroke
}

// wsSearchMinLength gates typeahead input: shorter queries clear the result
// list instead of hitting the database.
const wsSearchMinLength = 3

// WebSocketHandler returns a handler that upgrades to WebSocket and relays
// real-time NATS events to connected clients.
// Clients send JSON: {"action":"subscribe","branch":"<id>","channel":"status"}
// An empty branch means all branches. Default channel is "status".
//
// The connection also carries a live search box: {"action":"search","query":"..."}
// per keystroke. Input is debounced server-side, so a burst of keystrokes runs
// one query, and results carry a seq the client uses to drop stale frames.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		log.Printf("ws client connected: %s", remoteAddr)

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		// Helper: thread-safe write
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		nc := deps.NATS

		// Auto-subscribe to all open/close transitions by default
		if nc != nil {
			defaultSubject := "brew.status.>"
			sub, err := nc.Subscribe(defaultSubject, func(msg *nats.Msg) {
				_ = writeJSON(json.RawMessage(msg.Data))
			})
			if err != nil {
				log.Printf("ws default subscribe error: %v", err)
				return
			}
			subs[defaultSubject] = sub
		}

		// Debounced typeahead. The commit fires on the timer goroutine; the
		// seq fence drops results that a newer keystroke has outrun.
		searcher := debounce.NewSearch(debounce.DefaultQuiet, wsSearchMinLength,
			func(q string, seq uint64) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				views, err := deps.Branches.Search(ctx, q, nil, 20)
				if err != nil {
					_ = writeJSON(map[string]interface{}{"type": "search_error", "seq": seq, "error": err.Error()})
					return
				}
				_ = writeJSON(map[string]interface{}{"type": "search_results", "seq": seq, "query": q, "results": views})
			},
			func() {
				_ = writeJSON(map[string]interface{}{"type": "search_results", "query": "", "results": []struct{}{}})
			},
		)
		defer searcher.Stop()

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Read client messages
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			if m.Action == "search" {
				searcher.Input(m.Query)
				continue
			}

			if nc == nil {
				_ = writeJSON(map[string]string{"error": "realtime feed unavailable"})
				continue
			}

			// Build NATS subject
			channel := m.Channel
			if channel == "" {
				channel = "status"
			}

			var subject string
			switch channel {
			case "status":
				if m.Branch != "" {
					subject = "brew.status." + m.Branch
				} else {
					subject = "brew.status.>"
				}
			case "reviews":
				if m.Branch != "" {
					subject = "brew.review." + m.Branch
				} else {
					subject = "brew.review.>"
				}
			case "rewards":
				if m.User == "" {
					_ = writeJSON(map[string]string{"error": "rewards channel needs a user"})
					continue
				}
				subject = "brew.reward." + m.User
			default:
				_ = writeJSON(map[string]string{"error": "unknown channel: " + channel})
				continue
			}

			switch m.Action {
			case "subscribe":
				if _, exists := subs[subject]; exists {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
					continue
				}
				s, err := nc.Subscribe(subject, func(msg *nats.Msg) {
					_ = writeJSON(json.RawMessage(msg.Data))
				})
				if err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				subs[subject] = s
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				if s, exists := subs[subject]; exists {
					_ = s.Unsubscribe()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		// Cleanup
		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		log.Printf("ws client disconnected: %s", remoteAddr)
	}
}
