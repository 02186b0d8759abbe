package server

// Note: game events (player-joined, claim-placed, etc.) are defined in
// internal/game/events.go and are also sent as WebSocket messages

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeJoinRoom   MessageType = "join-room"
	MessageTypeLeaveRoom  MessageType = "leave-room"
	MessageTypeSetReady   MessageType = "set-ready"
	MessageTypeStartGame  MessageType = "start-game"
	MessageTypePlaceClaim MessageType = "place-claim"
	MessageTypeCallBluff  MessageType = "call-bluff"
	MessageTypeAbstain    MessageType = "abstain"
	MessageTypeResetGame  MessageType = "reset-game"

	// Server to client messages
	MessageTypeRoomJoined MessageType = "room-joined"
	MessageTypeRoomLeft   MessageType = "room-left"
	MessageTypeError      MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
