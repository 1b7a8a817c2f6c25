package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/dkeye/roomkit/internal/adapters/store"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string { return e.msg }

var (
	errUnauthorized   = &codedError{wire.CodeUnauthorized, "login required"}
	errBadPayload     = &codedError{wire.CodeBadRequest, "bad payload"}
	errNotInGroup     = &codedError{wire.CodeNotInGroup, "no group joined"}
	errNotInRoom      = &codedError{wire.CodeBadRequest, "not in media room"}
	errOwnerOnly      = &codedError{wire.CodeForbidden, "group owner only"}
	errRateLimited    = &codedError{wire.CodeForbidden, "rate limited"}
	errMemberNotFound = &codedError{wire.CodeMemberNotFound, "member not reachable"}
)

func codeOf(err error) string {
	var ce *codedError
	switch {
	case errors.As(err, &ce):
		return ce.code
	case errors.Is(err, store.ErrGroupExists):
		return wire.CodeGroupExists
	case errors.Is(err, store.ErrGroupNotFound):
		return wire.CodeGroupNotFound
	case errors.Is(err, store.ErrNotMember):
		return wire.CodeMemberNotFound
	}
	return wire.CodeInternal
}

func (ctl *RelayWSController) writePump(ctx context.Context, c *WsRelayConn) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			c.Close()
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *RelayWSController) readPump(ctx context.Context, s *session) {
	defer func() {
		log.Info().Str("module", "signal").Str("user", ctl.userOf(s)).Msg("readPump closing")
		ctl.drop(s)
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if ctl.pingPeriod > 0 {
				_ = s.conn.conn.SetReadDeadline(time.Now().Add(ctl.pingPeriod))
			}
			_, data, err := s.conn.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Warn().Err(err).Str("module", "signal").Msg("readPump read error")
				}
				return
			}
			ctl.handleFrame(ctx, s, data)
		}
	}
}

func (ctl *RelayWSController) handleFrame(ctx context.Context, s *session, data []byte) {
	var f wire.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch f.Type {
	case wire.TypePing:
		ctl.handlePing(s)
		return
	case wire.TypeLogin:
		ctl.handleLogin(s, f)
		return
	}
	if ctl.userOf(s) == "" {
		ctl.reply(s, f, nil, errUnauthorized)
		return
	}

	switch f.Type {
	case wire.TypeLogout:
		ctl.handleLogout(s, f)
	case wire.TypeCreateGroup:
		ctl.handleCreateGroup(ctx, s, f)
	case wire.TypeJoinGroup:
		ctl.handleJoinGroup(ctx, s, f)
	case wire.TypeQuitGroup:
		ctl.handleQuitGroup(ctx, s, f)
	case wire.TypeDismissGroup:
		ctl.handleDismissGroup(ctx, s, f)
	case wire.TypeChangeOwner:
		ctl.handleChangeOwner(ctx, s, f)
	case wire.TypeKickMember:
		ctl.handleKickMember(ctx, s, f)
	case wire.TypeGroupExists:
		ctl.handleGroupExists(ctx, s, f)
	case wire.TypeSetAnnouncement:
		ctl.handleSetAnnouncement(ctx, s, f)
	case wire.TypeMemberProfiles:
		ctl.handleMemberProfiles(ctx, s, f)
	case wire.TypeUpdateProfile:
		ctl.handleUpdateProfile(ctx, s, f)
	case wire.TypeSendChat:
		ctl.handleChat(ctx, s, f)
	case wire.TypeSendCustom:
		ctl.handleCustom(s, f)
	case wire.TypeSendControl:
		ctl.handleControl(s, f)
	case wire.TypeMediaEnter:
		ctl.handleMediaEnter(s, f)
	case wire.TypeMediaExit:
		ctl.handleMediaExit(s, f)
	case wire.TypeMediaState:
		ctl.handleMediaState(s, f)
	default:
		log.Warn().Str("module", "signal").Str("type", f.Type).Msg("unknown frame")
		ctl.reply(s, f, nil, errBadPayload)
	}
}

// reply acks request f. Frames without a request id get no answer.
func (ctl *RelayWSController) reply(s *session, req wire.Frame, v any, err error) {
	if req.ReqID == "" {
		if err != nil {
			log.Warn().Str("module", "signal").Str("type", req.Type).Err(err).Msg("notification failed")
		}
		return
	}
	f, merr := wire.New(wire.TypeAck, req.ReqID, v)
	if merr != nil {
		log.Error().Err(merr).Str("module", "signal").Msg("reply marshal")
		f = wire.Frame{Type: wire.TypeAck, ReqID: req.ReqID, Code: wire.CodeInternal}
	}
	if err != nil {
		f.Code = codeOf(err)
		f.Error = err.Error()
		if f.Code == wire.CodeInternal {
			log.Error().Str("module", "signal").Str("type", req.Type).Err(err).Msg("request failed")
		}
	}
	ctl.sendFrame(s, f)
}

func (ctl *RelayWSController) push(s *session, typ string, v any) {
	f, err := wire.New(typ, "", v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("type", typ).Msg("push marshal")
		return
	}
	ctl.sendFrame(s, f)
}

func (ctl *RelayWSController) pushAll(to []*session, typ string, v any) {
	for _, s := range to {
		ctl.push(s, typ, v)
	}
}

func (ctl *RelayWSController) sendFrame(s *session, f wire.Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendFrame marshal")
		return
	}
	err = s.conn.TrySend(b)
	if err == nil {
		return
	}
	user := ctl.userOf(s)
	if errors.Is(err, ErrBackpressure) && ctl.policy.OnBackpressure(user, f.Type) == Disconnect {
		log.Warn().Str("module", "signal").Str("user", user).Str("type", f.Type).Msg("slow client disconnected")
		s.conn.Close()
		return
	}
	log.Warn().Err(err).Str("module", "signal").Str("user", user).Str("type", f.Type).Msg("frame dropped")
}
