package signal

import (
	"context"
	"time"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
)

func (ctl *RelayWSController) handlePing(s *session) {
	ctl.push(s, wire.TypePong, nil)
}

func (ctl *RelayWSController) handleChat(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Chat
	if err := f.Bind(&p); err != nil {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	group := ctl.groupOf(s)
	if group == "" {
		ctl.reply(s, f, nil, errNotInGroup)
		return
	}
	user := ctl.userOf(s)
	if ctl.chat != nil && !ctl.chat.Allow(user) {
		ctl.reply(s, f, nil, errRateLimited)
		return
	}

	msg := wire.Chat{
		ID:     newMessageID(),
		From:   user,
		Text:   p.Text,
		SentAt: time.Now().UTC(),
	}
	if ps, err := ctl.store.Profiles(ctx, []string{user}); err == nil && len(ps) == 1 {
		msg.Nick = ps[0].Nick
	}
	ctl.reply(s, f, msg, nil)
	ctl.pushAll(ctl.groupPeers(group, s), wire.TypeChat, msg)
}

func (ctl *RelayWSController) handleCustom(s *session, f wire.Frame) {
	var p wire.Custom
	if err := f.Bind(&p); err != nil || p.Type == "" {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	group := ctl.groupOf(s)
	if group == "" {
		ctl.reply(s, f, nil, errNotInGroup)
		return
	}
	p.From = ctl.userOf(s)
	ctl.reply(s, f, nil, nil)
	ctl.pushAll(ctl.groupPeers(group, s), wire.TypeCustom, p)
}

// handleControl relays an opaque directive to one member of the sender's
// group, or to every other member when To is empty.
func (ctl *RelayWSController) handleControl(s *session, f wire.Frame) {
	var p wire.Control
	if err := f.Bind(&p); err != nil || len(p.Payload) == 0 {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	group := ctl.groupOf(s)
	if group == "" {
		ctl.reply(s, f, nil, errNotInGroup)
		return
	}
	out := wire.Control{From: ctl.userOf(s), Payload: p.Payload}

	if p.To == "" {
		ctl.reply(s, f, nil, nil)
		ctl.pushAll(ctl.groupPeers(group, s), wire.TypeControl, out)
		return
	}

	ctl.mu.RLock()
	target, ok := ctl.sessions[p.To]
	reachable := ok && target != s && target.group == group
	ctl.mu.RUnlock()
	if !reachable {
		ctl.reply(s, f, nil, errMemberNotFound)
		return
	}
	ctl.reply(s, f, nil, nil)
	ctl.push(target, wire.TypeControl, out)
}
