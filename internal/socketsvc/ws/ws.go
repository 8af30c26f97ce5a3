package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/socketsvc/broker"
)

// Ws tracks live socket connections and which game room each one watches.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	gameMap sync.Map // socketId -> gameId
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles one message from a web client. "join-game" is
// resolved locally; every match command is forwarded to the match service.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "join-game":
		s.handleJoinGame(socketId, message)
	case "get-clock", "get-lineup",
		"start-period", "end-period",
		"start-stoppage", "end-stoppage",
		"create-sub", "update-sub", "confirm-sub", "cancel-sub",
		"record-goal":
		s.forward(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleJoinGame(socketId string, msg *comm.WSMessage) {
	if msg.GameId == 0 {
		log.Error("Invalid join-game payload: missing game id")
		return
	}

	s.StoreGame(socketId, msg.GameId)
	log.Infof("socket %s joined game %d", socketId, msg.GameId)

	// prime the new watcher with clock and lineup
	s.forward(socketId, &comm.WSMessage{Type: "get-clock", GameId: msg.GameId})
	s.forward(socketId, &comm.WSMessage{Type: "get-lineup", GameId: msg.GameId})
}

// forward stamps the socket id and room, then hands the command to the
// match service over NATS.
func (s *Ws) forward(socketId string, msg *comm.WSMessage) {
	msg.SocketId = socketId
	if msg.GameId == 0 {
		if gameId, ok := s.GetGame(socketId); ok {
			msg.GameId = gameId
		}
	}

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	topic := "socket.service"
	if err := s.Broker.Publish(topic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", topic, err)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) StoreGame(socketId string, gameId int64) {
	s.gameMap.Store(socketId, gameId)
}

func (s *Ws) GetGame(socketId string) (int64, bool) {
	gameId, ok := s.gameMap.Load(socketId)
	if !ok {
		return 0, false
	}
	return gameId.(int64), true
}

// GetGameSockets lists every socket watching a game.
func (s *Ws) GetGameSockets(gameId int64) ([]string, bool) {
	var sockets []string
	found := false

	s.gameMap.Range(func(key, value interface{}) bool {
		if value.(int64) == gameId {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.gameMap.Delete(socketId)
}
