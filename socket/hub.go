package socket

import (
	"context"
	"encoding/json"
	"sync"

	auth "personalportal/internal/auth/model"
	"personalportal/internal/web/session"
	"personalportal/pkg/logger"
)

const (
	AuthStateType = "AUTH_STATE" // Server -> browser: the signed-in user changed
	LogoutType    = "LOGOUT"     // Browser -> server: sign out everywhere
)

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type AuthState struct {
	Authenticated bool           `json:"authenticated"`
	User          *auth.UserInfo `json:"user"`
}

// Hub fans session changes out to every open browser tab.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	Session    *session.Session
	mu         sync.Mutex
	done       chan struct{}
}

func NewHub(sess *session.Session) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Session:    sess,
		done:       make(chan struct{}),
	}
}

func authMessage(st session.State) []byte {
	payload, _ := json.Marshal(AuthState{Authenticated: st.Authenticated, User: st.User})
	msg, _ := json.Marshal(WSMessage{Type: AuthStateType, Payload: payload})
	return msg
}

func (h *Hub) currentState() session.State {
	user := h.Session.CurrentUser()
	return session.State{User: user, Authenticated: user != nil}
}

// Run serves the hub until ctx is done. It subscribes to the session for its
// whole lifetime.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	unsubscribe := h.Session.Subscribe(func(st session.State) {
		select {
		case h.Broadcast <- authMessage(st):
		case <-h.done:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.Clients {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			// A new tab learns the current state right away.
			client.Send <- authMessage(h.currentState())

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case payload := <-h.Broadcast:
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Clients))
			for client := range h.Clients {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// A lagging tab is dropped; it reconnects and gets the state again.
					logger.Sugar.Warnf("Client %s's send buffer is full. Dropping it.", client.ID)
					h.drop(client)
				}
			}
		}
	}
}

// register and unregister give up once Run has returned.
func (h *Hub) register(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.Clients[client]; ok {
		delete(h.Clients, client)
		close(client.Send)
	}
}

// Count returns the number of connected tabs.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Clients)
}
