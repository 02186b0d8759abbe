package server

import (
	"encoding/json"
	"time"

	"github.com/parkrye/WebProject-PirateDice/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// MessageFromEvent wraps a game event for the wire. The event type strings
// double as message types.
func MessageFromEvent(ev game.Event) (*Message, error) {
	return NewMessage(MessageType(ev.Type), ev.Payload)
}

// Client → Server Messages

type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId,omitempty"`
	Nickname string `json:"nickname"`
}

type LeaveRoomData struct {
	RoomID string `json:"roomId"`
}

type SetReadyData struct {
	Ready bool `json:"ready"`
}

type PlaceClaimData struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// Server → Client Messages

type RoomJoinedData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type RoomLeftData struct {
	RoomID string `json:"roomId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// REST payloads

type RoomInfo struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Status      string `json:"status"`
}

type RoomListData struct {
	Rooms []RoomInfo `json:"rooms"`
}

type CreateRoomRequest struct {
	MaxPlayers int `json:"maxPlayers,omitempty"`
}

type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}
