package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/parkrye/WebProject-PirateDice/internal/game"
	"github.com/parkrye/WebProject-PirateDice/internal/roomid"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	playerID  string
	roomID    string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	rooms     *RoomService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, rooms *RoomService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		rooms:  rooms,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player
func (c *Connection) SetPlayer(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
}

// GetPlayer returns the associated player ID
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the associated room ID
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		c.handleLeaveRoom()

	case MessageTypeSetReady:
		var data SetReadyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse ready data")
			return
		}
		c.handleSetReady(data)

	case MessageTypeStartGame:
		c.roomIntent("start_failed", c.rooms.Start)

	case MessageTypePlaceClaim:
		var data PlaceClaimData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse claim data")
			return
		}
		c.handlePlaceClaim(data)

	case MessageTypeCallBluff:
		c.roomIntent("challenge_failed", c.rooms.CallBluff)

	case MessageTypeAbstain:
		c.roomIntent("abstain_failed", c.rooms.Abstain)

	case MessageTypeResetGame:
		c.roomIntent("reset_failed", c.rooms.Reset)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// sendGameError maps a rejected intent onto the wire error taxonomy.
func (c *Connection) sendGameError(fallback string, err error) {
	code := game.ErrorCode(err)
	switch {
	case errors.Is(err, ErrRoomNotFound):
		code = "room_not_found"
	case errors.Is(err, ErrRoomClosed):
		code = "room_closed"
	case code == "internal_error":
		code = fallback
	}
	c.sendError(code, err.Error())
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	c.logger.Info("Join room request", "roomId", data.RoomID, "nickname", data.Nickname)

	if c.rooms == nil {
		c.sendError("service_unavailable", "Room service not available")
		return
	}
	if data.Nickname == "" {
		c.sendError("invalid_message", "Nickname required")
		return
	}
	if c.GetRoom() != "" {
		c.sendError("already_joined", "Leave the current room first")
		return
	}

	playerID := data.PlayerID
	if playerID == "" {
		playerID = c.rooms.NewPlayerID()
	}
	roomID := roomid.Normalize(data.RoomID)

	if err := c.rooms.Join(roomID, playerID, data.Nickname); err != nil {
		c.sendGameError("join_failed", err)
		return
	}

	c.SetPlayer(playerID)
	c.SetRoom(roomID)

	response, _ := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID:   roomID,
		PlayerID: playerID,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveRoom() {
	roomID := c.GetRoom()
	playerID := c.GetPlayer()
	c.logger.Info("Leave room request", "roomId", roomID, "player", playerID)

	if c.rooms == nil || roomID == "" || playerID == "" {
		c.sendError("not_in_room", "Not in a room")
		return
	}

	if err := c.rooms.Leave(roomID, playerID); err != nil {
		c.sendGameError("leave_failed", err)
		return
	}

	c.SetRoom("")
	response, _ := NewMessage(MessageTypeRoomLeft, RoomLeftData{RoomID: roomID})
	_ = c.SendMessage(response)
}

func (c *Connection) handleSetReady(data SetReadyData) {
	roomID := c.GetRoom()
	playerID := c.GetPlayer()
	if c.rooms == nil || roomID == "" || playerID == "" {
		c.sendError("not_in_room", "Join a room first")
		return
	}

	if err := c.rooms.SetReady(roomID, playerID, data.Ready); err != nil {
		c.sendGameError("ready_failed", err)
	}
}

func (c *Connection) handlePlaceClaim(data PlaceClaimData) {
	roomID := c.GetRoom()
	playerID := c.GetPlayer()
	if c.rooms == nil || roomID == "" || playerID == "" {
		c.sendError("not_in_room", "Join a room first")
		return
	}

	if err := c.rooms.PlaceClaim(roomID, playerID, data.Value, data.Count); err != nil {
		c.sendGameError("claim_failed", err)
	}
}

// roomIntent forwards a bodyless intent to the room service.
func (c *Connection) roomIntent(fallback string, call func(roomID, playerID string) error) {
	roomID := c.GetRoom()
	playerID := c.GetPlayer()
	if c.rooms == nil || roomID == "" || playerID == "" {
		c.sendError("not_in_room", "Join a room first")
		return
	}

	if err := call(roomID, playerID); err != nil {
		c.sendGameError(fallback, err)
	}
}
