package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/matchsvc/session"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	sessions  *session.Manager
}

func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "match service is running at port " + os.Getenv("MATCH_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

// sessionFromURL resolves the game session for the gameID route param.
func (h *Handler) sessionFromURL(w http.ResponseWriter, r *http.Request) (*session.MatchSession, bool) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid game id"})
		return nil, false
	}

	sess, err := h.sessions.Get(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, session.ErrGameNotFound) {
			h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "game not found"})
			return nil, false
		}
		log.Errorf("Error [Sessions.Get] game %d: %s", gameID, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "game not available"})
		return nil, false
	}
	return sess, true
}

// failCode maps session errors onto HTTP codes: validation failures are the
// caller's problem, persistence failures are ours.
func failCode(err error) int {
	var pe *session.PersistError
	if errors.As(err, &pe) {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

func (h *Handler) ClockHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	game := sess.Game()
	gameTime := sess.GameTime()
	periodTime := sess.PeriodTime()
	home, away := sess.Score()

	h.CreateResponse(w, Response{
		Code: http.StatusOK,
		Data: comm.ClockData{
			GameId:      game.ID,
			GameTime:    int64(gameTime),
			PeriodTime:  int64(periodTime),
			Period:      sess.CurrentPeriodNumber(),
			Stage:       sess.Stage(r.Context()).String(),
			GameClock:   gameTime.Clock(),
			PeriodClock: periodTime.Clock(),
			HomeScore:   home,
			AwayScore:   away,
		},
	})
}

func (h *Handler) StartPeriodHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	p, err := sess.StartNextPeriod(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	sess.Stage(r.Context())
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: p})
}

func (h *Handler) EndPeriodHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	p, err := sess.EndCurrentPeriod(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	sess.Stage(r.Context())
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: p})
}

func (h *Handler) StartStoppageHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	var request struct {
		Reason         string `json:"reason"`
		Details        string `json:"details"`
		ClockShouldRun bool   `json:"clock_should_run"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	st, err := sess.StartStoppage(r.Context(), request.Reason, request.Details, request.ClockShouldRun)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: st})
}

func (h *Handler) EndStoppageHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	stoppageID, err := strconv.ParseInt(chi.URLParam(r, "stoppageID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid stoppage id"})
		return
	}

	st, err := sess.EndStoppage(r.Context(), stoppageID)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: st})
}

func (h *Handler) LineupHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

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

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: lineup})
}

func (h *Handler) CreateSubHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	var request struct {
		InPlayerId  int64 `json:"in_player_id"`
		OutPlayerId int64 `json:"out_player_id"`
		GkSub       bool  `json:"gk_sub"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	sub, err := sess.CreatePendingSub(r.Context(), request.InPlayerId, request.OutPlayerId, request.GkSub)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	state, _ := sess.SubStateOf(sub.ID)
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: comm.SubData{Sub: sub, State: state}})
}

func (h *Handler) UpdateSubHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	subID, err := strconv.ParseInt(chi.URLParam(r, "subID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid sub id"})
		return
	}

	var request struct {
		InPlayerId  int64 `json:"in_player_id"`
		OutPlayerId int64 `json:"out_player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	sub, err := sess.UpdatePendingSub(r.Context(), subID, request.InPlayerId, request.OutPlayerId)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	state, _ := sess.SubStateOf(sub.ID)
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: comm.SubData{Sub: sub, State: state}})
}

func (h *Handler) ConfirmSubHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	subID, err := strconv.ParseInt(chi.URLParam(r, "subID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid sub id"})
		return
	}

	var request struct {
		Override bool `json:"override"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
			return
		}
	}

	sub, warning, err := sess.ConfirmSub(r.Context(), subID, request.Override)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	state, _ := sess.SubStateOf(sub.ID)
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: comm.SubData{Sub: sub, State: state, Warning: warning}})
}

func (h *Handler) CancelSubHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	subID, err := strconv.ParseInt(chi.URLParam(r, "subID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid sub id"})
		return
	}

	if err := sess.CancelSub(r.Context(), subID); err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: comm.Res{Status: true}})
}

func (h *Handler) PlusMinusHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	playerID, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid player id"})
		return
	}

	var response struct {
		PlayerGameID int64 `json:"player_game_id"`
		PlusMinus    int   `json:"plus_minus"`
	}
	response.PlayerGameID = playerID
	response.PlusMinus = sess.PlusMinus(playerID)
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: response})
}

func (h *Handler) RecordGoalHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	var request struct {
		TeamSeasonId int64    `json:"team_season_id"`
		ScorerId     int64    `json:"scorer_player_game_id"`
		AssistId     int64    `json:"assist_player_game_id"`
		IsOwnGoal    bool     `json:"is_own_goal"`
		GoalTypes    []string `json:"goal_types"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	goal, err := sess.RecordGoal(r.Context(), request.TeamSeasonId, request.ScorerId, request.AssistId,
		request.IsOwnGoal, request.GoalTypes)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	home, away := sess.Score()
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: comm.GoalData{Goal: goal, HomeScore: home, AwayScore: away}})
}

func (h *Handler) RecordCardHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFromURL(w, r)
	if !ok {
		return
	}

	var request struct {
		TeamSeasonId int64  `json:"team_season_id"`
		PlayerGameId int64  `json:"player_game_id"`
		CardType     string `json:"card_type"`
		CardReason   string `json:"card_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	card, err := sess.RecordCard(r.Context(), request.TeamSeasonId, request.PlayerGameId,
		request.CardType, request.CardReason)
	if err != nil {
		h.CreateResponse(w, Response{Code: failCode(err), Error: err.Error()})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: card})
}
