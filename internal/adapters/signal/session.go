package signal

import (
	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/rs/zerolog/log"
)

// session is one websocket client. Mutable fields are guarded by
// RelayWSController.mu.
type session struct {
	conn   *WsRelayConn
	remote string

	userID  string
	appID   uint32
	group   string
	room    uint32
	inRoom  bool
	streams map[string]bool
}

func (ctl *RelayWSController) userOf(s *session) string {
	ctl.mu.RLock()
	defer ctl.mu.RUnlock()
	return s.userID
}

func (ctl *RelayWSController) handleLogin(s *session, f wire.Frame) {
	var p wire.Login
	if err := f.Bind(&p); err != nil || p.UserID == "" {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	if ctl.verifier != nil {
		if err := ctl.verifier.Verify(p.AppID, p.UserID, p.Credential); err != nil {
			log.Warn().Str("module", "signal").Str("user", p.UserID).Err(err).Msg("credential rejected")
			ctl.reply(s, f, nil, &codedError{wire.CodeUnauthorized, "invalid credential"})
			return
		}
	}

	ctl.mu.Lock()
	if s.userID != "" && s.userID != p.UserID {
		ctl.mu.Unlock()
		ctl.reply(s, f, nil, &codedError{wire.CodeBadRequest, "already logged in as " + s.userID})
		return
	}
	prev := ctl.sessions[p.UserID]
	ctl.sessions[p.UserID] = s
	s.userID = p.UserID
	s.appID = p.AppID
	ctl.mu.Unlock()

	if prev != nil && prev != s {
		log.Info().Str("module", "signal").Str("user", p.UserID).Msg("replacing previous session")
		prev.conn.Close()
	}
	log.Info().Str("module", "signal").Str("user", p.UserID).Uint32("app", p.AppID).Msg("login")
	ctl.reply(s, f, nil, nil)
}

func (ctl *RelayWSController) handleLogout(s *session, f wire.Frame) {
	ctl.leaveRoom(s, leaveExited)
	ctl.mu.Lock()
	user := s.userID
	if ctl.sessions[user] == s {
		delete(ctl.sessions, user)
	}
	s.userID = ""
	s.group = ""
	ctl.mu.Unlock()
	if ctl.chat != nil {
		ctl.chat.Forget(user)
	}
	log.Info().Str("module", "signal").Str("user", user).Msg("logout")
	ctl.reply(s, f, nil, nil)
}

// drop forgets a disconnected session. Group membership survives so the
// user can rejoin.
func (ctl *RelayWSController) drop(s *session) {
	ctl.leaveRoom(s, leaveDisconnected)
	ctl.mu.Lock()
	if s.userID != "" && ctl.sessions[s.userID] == s {
		delete(ctl.sessions, s.userID)
	}
	ctl.mu.Unlock()
}

// groupPeers lists the sessions bound to group, except self.
func (ctl *RelayWSController) groupPeers(group string, self *session) []*session {
	ctl.mu.RLock()
	defer ctl.mu.RUnlock()
	var out []*session
	for _, s := range ctl.sessions {
		if s != self && s.group == group {
			out = append(out, s)
		}
	}
	return out
}

func (ctl *RelayWSController) groupOf(s *session) string {
	ctl.mu.RLock()
	defer ctl.mu.RUnlock()
	return s.group
}

func (ctl *RelayWSController) bindGroup(s *session, group string) {
	ctl.mu.Lock()
	s.group = group
	ctl.mu.Unlock()
}
