package chat

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"negochat/internal/middleware"
	"negochat/internal/types"

	"github.com/gorilla/websocket"
)

type Client struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan []byte
	Hub         *Hub
	Limiter     *middleware.RateLimiter
	RoomID      string
	LastWarning time.Time
	once        sync.Once
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(10 * time.Second)
	defer func() {
		ticker.Stop()
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				msg, ok := <-c.Send
				if !ok {
					break
				}
				w.Write([]byte{'\n'})
				w.Write(msg)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	// Negotiation situations run long, so the limit is roomier than a
	// plain chat line would need.
	c.Conn.SetReadLimit(8192)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[CLIENT] Unexpected close: %v", err)
			}
			break
		}

		if !c.Limiter.Allow() {
			if time.Since(c.LastWarning) > 3*time.Second {
				warning, _ := json.Marshal(c.Hub.systemMessage(c.RoomID, "⚠️ Rate limit exceeded."))
				payload, _ := json.Marshal(types.Envelope{Event: types.EventNewMessage, Data: warning})
				select {
				case c.Send <- payload:
					c.LastWarning = time.Now()
				default:
				}
			}
			continue
		}

		var env types.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("[CLIENT] Dropping malformed frame from %s: %v", c.ID, err)
			continue
		}

		c.Hub.handleEvent(c, env)
	}
}
