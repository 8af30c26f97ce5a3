package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/match-services/internal/comm"
)

// Broker relays match service responses back onto websockets: direct
// messages by socket id, broadcasts to every socket in a game room.
type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetGameSockets func(int64) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool),
	fncGetGameSockets func(int64) ([]string, bool)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetGameSockets: fncGetGameSockets,
	}
}

// consume message from the match service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish message for the match service to consume
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessages receives responses and broadcasts from the match service.
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "get-clock-response", "get-lineup-response",
		"start-period-response", "end-period-response",
		"start-stoppage-response", "end-stoppage-response",
		"create-sub-response", "update-sub-response",
		"confirm-sub-response", "cancel-sub-response",
		"record-goal-response":
		b.sendMessage(message)
	case "clock-broadcast", "lineup-broadcast", "stage-change-broadcast", "goal-broadcast":
		b.broadcastToGame(message)
	default:
		log.Error("Unknown message")
		return
	}
}

// send socket message to a single web client
func (b *Broker) sendMessage(m *comm.WSMessage) {
	socketId := m.SocketId
	if conn, ok := b.GetConnection(socketId); ok {
		if err := conn.WriteJSON(m); err != nil {
			log.Println(err)
		}
	}
}

// fan a broadcast out to every socket watching the game
func (b *Broker) broadcastToGame(m *comm.WSMessage) {
	sockets, ok := b.GetGameSockets(m.GameId)
	if !ok {
		return
	}
	for _, socketId := range sockets {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Println(err)
			}
		}
	}
}
