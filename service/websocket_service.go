package service

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tieubaoca/pdfchat-be/types"
)

// WebSocketService serves the stateless chat contract over a socket: one
// chat request in, one full reply out. No token streaming.
type WebSocketService struct {
	ai       AIService
	upgrader websocket.Upgrader
}

func NewWebSocketService(ai AIService) *WebSocketService {
	return &WebSocketService{
		ai: ai,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(512 * 1024) // 512KB max message size

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid request")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			if err := conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong}); err != nil {
				return
			}
		case types.TypeWebsocketChat:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.ChatRequest
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}

			prompt := BuildPrompt(payload.History, payload.DocumentText, payload.Message)
			reply, err := s.ai.Respond(r.Context(), prompt)
			if err != nil {
				log.Println("AI error:", err)
				s.writeError(conn, "Failed to generate response")
				continue
			}
			res := types.WebsocketResponse{
				Type:    types.TypeWebsocketChat,
				Payload: types.ChatResponse{Reply: reply},
			}
			if err := conn.WriteJSON(res); err != nil {
				log.Println("Write error:", err)
				return
			}
		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, msg string) {
	res := types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebsocketErrorPayload{Error: msg},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}
