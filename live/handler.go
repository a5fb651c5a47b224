package live

import (
	"log"
	"net/http"

	"agromandi/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// OrderFeed upgrades to a websocket and streams the caller's order events.
// Browsers cannot set headers on websocket requests, so the token rides in
// the query string.
func OrderFeed(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if claims.UserID != ps.ByName("userid") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("live upgrade:", err)
			return
		}

		client := &Client{
			Send: make(chan []byte, 256),
			Room: claims.UserID,
		}
		hub.Register(client)

		// writer
		go func() {
			defer conn.Close()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// reader: drain until the peer hangs up
		go func() {
			defer hub.Unregister(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
