// pkg/api/websocket.go
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"key-dance/pkg/models"
	"key-dance/pkg/pipeline"
	"key-dance/pkg/recognition"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketMessage struct {
	Type      string                    `json:"type"`
	RequestID string                    `json:"request_id,omitempty"`
	Data      string                    `json:"data,omitempty"`
	Result    *models.RecognitionResult `json:"result,omitempty"`
	Status    int                       `json:"status,omitempty"`
	Error     string                    `json:"error,omitempty"`
}

// wsConn serializes writes; replies arrive from pipeline workers.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(msg WebSocketMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

func (h *Handlers) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws := &wsConn{conn: conn}
	for {
		var msg WebSocketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		switch msg.Type {
		case "recognize":
			h.handleRecognize(ctx, ws, &msg)
		case "ping":
			h.sendMessage(ws, WebSocketMessage{
				Type: "pong",
			})
		default:
			h.sendMessage(ws, WebSocketMessage{
				Type:  "error",
				Error: "Unknown message type",
			})
		}
	}
}

func (h *Handlers) handleRecognize(ctx context.Context, ws *wsConn, msg *WebSocketMessage) {
	requestID := msg.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	h.logger.Info("Received websocket recognition request", zap.String("request_id", requestID))

	if h.jobs == nil {
		h.sendMessage(ws, WebSocketMessage{
			Type:      "error",
			RequestID: requestID,
			Error:     "Recognition queue unavailable",
		})
		return
	}

	err := h.jobs.Submit(&pipeline.Job{
		RequestID: requestID,
		Data:      msg.Data,
		Ctx:       ctx,
		Reply: func(result *models.RecognitionResult, err error) {
			if err != nil {
				reply := WebSocketMessage{
					Type:      "recognition_failed",
					RequestID: requestID,
					Status:    recognition.HTTPStatus(err),
					Error:     "Internal server error",
				}
				var re *recognition.Error
				if errors.As(err, &re) {
					reply.Error = re.Message
				}
				h.sendMessage(ws, reply)
				return
			}

			h.sendMessage(ws, WebSocketMessage{
				Type:      "recognition_result",
				RequestID: requestID,
				Result:    result,
			})
		},
	})
	if err != nil {
		h.sendMessage(ws, WebSocketMessage{
			Type:      "error",
			RequestID: requestID,
			Error:     err.Error(),
		})
	}
}

func (h *Handlers) sendMessage(ws *wsConn, msg WebSocketMessage) {
	if err := ws.send(msg); err != nil {
		h.logger.Debug("websocket write failed", zap.String("type", msg.Type), zap.Error(err))
	}
}
