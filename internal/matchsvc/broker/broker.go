package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/matchsvc/session"
)

// Broker serves websocket-originated match commands coming in over NATS and
// publishes responses and room broadcasts back for socketsvc to fan out.
type Broker struct {
	Conn     *nats.Conn
	Sessions *session.Manager
}

func NewBroker(nc *nats.Conn, sessions *session.Manager) *Broker {
	return &Broker{
		Conn:     nc,
		Sessions: sessions,
	}
}

// handleMessage dispatches one socket command against the game's session.
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sess, err := b.Sessions.Get(ctx, msg.GameId)
	if err != nil {
		log.Errorf("Error [Sessions.Get] game %d: %s", msg.GameId, err)
		b.PublishRes(comm.Res{Status: false, Error: "game not available"}, msg.Type, msg.SocketId)
		return
	}

	switch msg.Type {
	case "get-clock":
		b.PublishClock(sess, msg.SocketId)

	case "get-lineup":
		b.PublishLineup(sess, msg.SocketId)

	case "start-period":
		if _, err := sess.StartNextPeriod(ctx); err != nil {
			log.Errorf("Error [StartNextPeriod] game %d: %s", msg.GameId, err)
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "start-period-response", msg.SocketId)
			return
		}
		sess.Stage(ctx)
		b.PublishClockToRoom(sess, msg.GameId)

	case "end-period":
		if _, err := sess.EndCurrentPeriod(ctx); err != nil {
			log.Errorf("Error [EndCurrentPeriod] game %d: %s", msg.GameId, err)
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "end-period-response", msg.SocketId)
			return
		}
		sess.Stage(ctx)
		b.PublishClockToRoom(sess, msg.GameId)

	case "start-stoppage":
		var request struct {
			Reason         string `json:"reason"`
			Details        string `json:"details"`
			ClockShouldRun bool   `json:"clock_should_run"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		st, err := sess.StartStoppage(ctx, request.Reason, request.Details, request.ClockShouldRun)
		if err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "start-stoppage-response", msg.SocketId)
			return
		}
		b.PublishStoppage(comm.StoppageData{Stoppage: st}, "start-stoppage-response", msg.SocketId)
		b.PublishClockToRoom(sess, msg.GameId)

	case "end-stoppage":
		var request struct {
			StoppageId int64 `json:"stoppage_id"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		st, err := sess.EndStoppage(ctx, request.StoppageId)
		if err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "end-stoppage-response", msg.SocketId)
			return
		}
		b.PublishStoppage(comm.StoppageData{Stoppage: st}, "end-stoppage-response", msg.SocketId)
		b.PublishClockToRoom(sess, msg.GameId)

	case "create-sub":
		var request struct {
			InPlayerId  int64 `json:"in_player_id"`
			OutPlayerId int64 `json:"out_player_id"`
			GkSub       bool  `json:"gk_sub"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		sub, err := sess.CreatePendingSub(ctx, request.InPlayerId, request.OutPlayerId, request.GkSub)
		if err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "create-sub-response", msg.SocketId)
			return
		}
		state, _ := sess.SubStateOf(sub.ID)
		b.PublishSub(comm.SubData{Sub: sub, State: state}, "create-sub-response", msg.SocketId)
		b.PublishLineupToRoom(sess, msg.GameId)

	case "update-sub":
		var request struct {
			SubId       int64 `json:"sub_id"`
			InPlayerId  int64 `json:"in_player_id"`
			OutPlayerId int64 `json:"out_player_id"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		sub, err := sess.UpdatePendingSub(ctx, request.SubId, request.InPlayerId, request.OutPlayerId)
		if err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "update-sub-response", msg.SocketId)
			return
		}
		state, _ := sess.SubStateOf(sub.ID)
		b.PublishSub(comm.SubData{Sub: sub, State: state}, "update-sub-response", msg.SocketId)
		b.PublishLineupToRoom(sess, msg.GameId)

	case "confirm-sub":
		var request struct {
			SubId    int64 `json:"sub_id"`
			Override bool  `json:"override"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		sub, warning, err := sess.ConfirmSub(ctx, request.SubId, request.Override)
		if err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "confirm-sub-response", msg.SocketId)
			return
		}
		state, _ := sess.SubStateOf(sub.ID)
		b.PublishSub(comm.SubData{Sub: sub, State: state, Warning: warning}, "confirm-sub-response", msg.SocketId)
		b.PublishLineupToRoom(sess, msg.GameId)

	case "cancel-sub":
		var request struct {
			SubId int64 `json:"sub_id"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		if err := sess.CancelSub(ctx, request.SubId); err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "cancel-sub-response", msg.SocketId)
			return
		}
		b.PublishRes(comm.Res{Status: true}, "cancel-sub-response", msg.SocketId)
		b.PublishLineupToRoom(sess, msg.GameId)

	case "record-goal":
		var request struct {
			TeamSeasonId int64    `json:"team_season_id"`
			ScorerId     int64    `json:"scorer_player_game_id"`
			AssistId     int64    `json:"assist_player_game_id"`
			IsOwnGoal    bool     `json:"is_own_goal"`
			GoalTypes    []string `json:"goal_types"`
		}
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding request: %s", err)
			return
		}
		goal, err := sess.RecordGoal(ctx, request.TeamSeasonId, request.ScorerId, request.AssistId,
			request.IsOwnGoal, request.GoalTypes)
		if err != nil {
			b.PublishRes(comm.Res{Status: false, Error: err.Error()}, "record-goal-response", msg.SocketId)
			return
		}
		home, away := sess.Score()
		b.PublishGoalToRoom(comm.GoalData{Goal: goal, HomeScore: home, AwayScore: away}, msg.GameId)

	default:
		log.Error("Unknown message")
		return
	}
}

// PublishStageChange is wired as the session status hook: it broadcasts
// every successful status sync to the game's room.
func (b *Broker) PublishStageChange(gameID int64, status string, stage session.Stage) {
	data, err := json.Marshal(comm.StageData{GameId: gameID, Stage: stage.String(), Status: status})
	if err != nil {
		log.Errorf("[PublishStageChange] unable to marshal stage data")
		return
	}

	msg := &comm.WSMessage{
		Type:   "stage-change-broadcast",
		Data:   data,
		GameId: gameID,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	topic := "match.service"
	b.Publish(topic, payload)
}

func (b *Broker) PublishClock(sess *session.MatchSession, socketId string) {
	msg := b.clockMessage(sess)
	msg.SocketId = socketId
	msg.Type = "get-clock-response"
	b.publishEnvelope(msg)
}

func (b *Broker) PublishClockToRoom(sess *session.MatchSession, gameId int64) {
	msg := b.clockMessage(sess)
	msg.GameId = gameId
	msg.Type = "clock-broadcast"
	b.publishEnvelope(msg)
}

func (b *Broker) clockMessage(sess *session.MatchSession) *comm.WSMessage {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	game := sess.Game()
	gameTime := sess.GameTime()
	periodTime := sess.PeriodTime()
	home, away := sess.Score()

	clock := comm.ClockData{
		GameId:      game.ID,
		GameTime:    int64(gameTime),
		PeriodTime:  int64(periodTime),
		Period:      sess.CurrentPeriodNumber(),
		Stage:       sess.Stage(ctx).String(),
		GameClock:   gameTime.Clock(),
		PeriodClock: periodTime.Clock(),
		HomeScore:   home,
		AwayScore:   away,
	}

	data, err := json.Marshal(clock)
	if err != nil {
		log.Errorf("unable to marshal clock data for game %d", game.ID)
	}
	return &comm.WSMessage{Data: data, GameId: game.ID}
}

func (b *Broker) PublishLineup(sess *session.MatchSession, socketId string) {
	msg := b.lineupMessage(sess)
	msg.SocketId = socketId
	msg.Type = "get-lineup-response"
	b.publishEnvelope(msg)
}

func (b *Broker) PublishLineupToRoom(sess *session.MatchSession, gameId int64) {
	msg := b.lineupMessage(sess)
	msg.GameId = gameId
	msg.Type = "lineup-broadcast"
	b.publishEnvelope(msg)
}

func (b *Broker) lineupMessage(sess *session.MatchSession) *comm.WSMessage {
	game := sess.Game()
	now := sess.GameTime()
	statuses := sess.FieldStatuses()

	lineup := comm.LineupData{GameId: game.ID}
	for _, p := range sess.Players() {
		pt := sess.PlayerTimesAt(p.ID, now)
		lineup.Players = append(lineup.Players, comm.LineupEntry{
			PlayerGameID: p.ID,
			Name:         p.Name,
			TeamSeasonID: p.TeamSeasonID,
			GameStatus:   p.GameStatus,
			FieldStatus:  string(statuses[p.ID]),
			TotalOn:      int64(pt.Total),
			CurrentOn:    int64(pt.CurrentOn),
			CurrentOff:   int64(pt.CurrentOff),
		})
	}

	data, err := json.Marshal(lineup)
	if err != nil {
		log.Errorf("unable to marshal lineup data for game %d", game.ID)
	}
	return &comm.WSMessage{Data: data, GameId: game.ID}
}

func (b *Broker) PublishSub(sd comm.SubData, msgType, socketId string) {
	data, err := json.Marshal(sd)
	if err != nil {
		log.Errorf("[PublishSub] unable to marshal sub data")
		return
	}
	b.publishEnvelope(&comm.WSMessage{Type: msgType, Data: data, SocketId: socketId})
}

func (b *Broker) PublishStoppage(sd comm.StoppageData, msgType, socketId string) {
	data, err := json.Marshal(sd)
	if err != nil {
		log.Errorf("[PublishStoppage] unable to marshal stoppage data")
		return
	}
	b.publishEnvelope(&comm.WSMessage{Type: msgType, Data: data, SocketId: socketId})
}

func (b *Broker) PublishGoalToRoom(gd comm.GoalData, gameId int64) {
	data, err := json.Marshal(gd)
	if err != nil {
		log.Errorf("[PublishGoalToRoom] unable to marshal goal data")
		return
	}
	b.publishEnvelope(&comm.WSMessage{Type: "goal-broadcast", Data: data, GameId: gameId})
}

func (b *Broker) PublishRes(r comm.Res, msgType, socketId string) {
	data, err := json.Marshal(r)
	if err != nil {
		log.Errorf("[PublishRes] unable to marshal response")
		return
	}
	b.publishEnvelope(&comm.WSMessage{Type: msgType, Data: data, SocketId: socketId})
}

func (b *Broker) publishEnvelope(msg *comm.WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	topic := "match.service"
	b.Publish(topic, payload)
}

// consume commands from the socket service
func (b *Broker) SubscribSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish message for the socket service to consume
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
