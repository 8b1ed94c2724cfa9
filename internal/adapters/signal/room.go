package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"giftroom/internal/app"
	"giftroom/internal/domain"
)

func (ctl *Controller) handleCreateRoom(id domain.ConnID, c *wsConn, data []byte) {
	var p struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad create_room payload")
		return
	}

	outs, err := ctl.svc.CreateRoom(id, p.Name)
	if err != nil {
		ctl.sendJSON(c, app.NewErrorEvent(err))
		return
	}
	ctl.deliver(outs)
}

func (ctl *Controller) handleJoinRoom(id domain.ConnID, c *wsConn, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"room_id"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join_room payload")
		return
	}

	outs, err := ctl.svc.JoinRoom(id, p.RoomID, p.Name)
	if err != nil {
		ctl.sendJSON(c, app.NewErrorEvent(err))
		return
	}
	ctl.deliver(outs)
}

func (ctl *Controller) handleReveal(id domain.ConnID, c *wsConn) {
	outs, err := ctl.svc.Reveal(id)
	if err != nil {
		ctl.sendJSON(c, app.NewErrorEvent(err))
		return
	}
	ctl.deliver(outs)
}
