package relay

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrNoGroup = errors.New("relay: no group joined")

// Messaging is the messaging transport backed by relay groups.
type Messaging struct {
	conn *Conn

	mu      sync.RWMutex
	handler func(core.MessagingEvent)
	group   string
}

var _ core.MessagingTransport = (*Messaging)(nil)

func NewMessaging(conn *Conn) *Messaging {
	m := &Messaging{conn: conn}
	conn.Handle(wire.TypeChat, m.onChat)
	conn.Handle(wire.TypeCustom, m.onCustom)
	conn.Handle(wire.TypeControl, m.onControl)
	conn.Handle(wire.TypeGroupDismissed, m.onDismissed)
	conn.Handle(wire.TypeOwnerChanged, m.onOwnerChanged)
	return m
}

func (m *Messaging) Login(ctx context.Context, p core.LoginParams) error {
	return m.conn.Request(ctx, wire.TypeLogin, wire.Login{
		AppID:      p.AppID,
		UserID:     p.UserID,
		Credential: p.Credential,
	}, nil)
}

func (m *Messaging) Logout(ctx context.Context) error {
	m.setGroup("")
	return m.conn.Request(ctx, wire.TypeLogout, nil, nil)
}

// CreateGroup returns the stored group together with core.ErrGroupExists
// when the id is taken.
func (m *Messaging) CreateGroup(ctx context.Context, groupID, announcement string) (core.GroupInfo, error) {
	var out wire.Group
	err := m.conn.Request(ctx, wire.TypeCreateGroup, wire.Group{GroupID: groupID, Announcement: announcement}, &out)
	if err != nil {
		return groupInfo(out), err
	}
	m.setGroup(groupID)
	return groupInfo(out), nil
}

func (m *Messaging) JoinGroup(ctx context.Context, groupID string) (core.GroupInfo, error) {
	var out wire.Group
	if err := m.conn.Request(ctx, wire.TypeJoinGroup, wire.Group{GroupID: groupID}, &out); err != nil {
		return core.GroupInfo{}, err
	}
	m.setGroup(groupID)
	return groupInfo(out), nil
}

func (m *Messaging) QuitGroup(ctx context.Context) error {
	if m.currentGroup() == "" {
		return nil
	}
	err := m.conn.Request(ctx, wire.TypeQuitGroup, nil, nil)
	m.setGroup("")
	return err
}

func (m *Messaging) DismissGroup(ctx context.Context) error {
	if m.currentGroup() == "" {
		return ErrNoGroup
	}
	if err := m.conn.Request(ctx, wire.TypeDismissGroup, nil, nil); err != nil {
		return err
	}
	m.setGroup("")
	return nil
}

func (m *Messaging) ChangeGroupOwner(ctx context.Context, userID string) error {
	return m.conn.Request(ctx, wire.TypeChangeOwner, wire.User{UserID: userID}, nil)
}

func (m *Messaging) KickGroupMember(ctx context.Context, userID string) error {
	return m.conn.Request(ctx, wire.TypeKickMember, wire.User{UserID: userID}, nil)
}

func (m *Messaging) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var out wire.Exists
	if err := m.conn.Request(ctx, wire.TypeGroupExists, wire.Group{GroupID: groupID}, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (m *Messaging) SetGroupAnnouncement(ctx context.Context, announcement string) error {
	return m.conn.Request(ctx, wire.TypeSetAnnouncement, wire.Group{Announcement: announcement}, nil)
}

func (m *Messaging) GroupMemberProfiles(ctx context.Context, userIDs []string) ([]domain.Profile, error) {
	var out wire.Profiles
	if err := m.conn.Request(ctx, wire.TypeMemberProfiles, wire.Profiles{UserIDs: userIDs}, &out); err != nil {
		return nil, err
	}
	ps := make([]domain.Profile, 0, len(out.Profiles))
	for _, p := range out.Profiles {
		ps = append(ps, domain.Profile{UserID: p.UserID, Nick: p.Nick, Avatar: p.Avatar})
	}
	return ps, nil
}

func (m *Messaging) SendChatMessage(ctx context.Context, text string) error {
	return m.conn.Request(ctx, wire.TypeSendChat, wire.Chat{Text: text}, nil)
}

func (m *Messaging) SendCustomMessage(ctx context.Context, msgType, data string) error {
	return m.conn.Request(ctx, wire.TypeSendCustom, wire.Custom{Type: msgType, Data: data}, nil)
}

func (m *Messaging) SendControlMessage(ctx context.Context, to string, payload []byte) error {
	return m.conn.Request(ctx, wire.TypeSendControl, wire.Control{To: to, Payload: payload}, nil)
}

func (m *Messaging) UpdateProfile(ctx context.Context, p domain.Profile) error {
	return m.conn.Request(ctx, wire.TypeUpdateProfile, wire.Profile{UserID: p.UserID, Nick: p.Nick, Avatar: p.Avatar}, nil)
}

func (m *Messaging) OnEvent(h func(core.MessagingEvent)) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

func (m *Messaging) Close() error {
	return m.conn.Close()
}

func (m *Messaging) setGroup(id string) {
	m.mu.Lock()
	m.group = id
	m.mu.Unlock()
}

func (m *Messaging) currentGroup() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.group
}

func (m *Messaging) emit(ev core.MessagingEvent) {
	m.mu.RLock()
	h := m.handler
	m.mu.RUnlock()
	if h != nil {
		h(ev)
	}
}

func (m *Messaging) onChat(f wire.Frame) {
	var c wire.Chat
	if err := f.Bind(&c); err != nil {
		log.Error().Err(err).Str("module", "relay.messaging").Msg("bad chat push")
		return
	}
	m.emit(core.ChatMessageReceived{Messages: []core.ChatMessage{{
		ID:     c.ID,
		From:   c.From,
		Nick:   c.Nick,
		Text:   c.Text,
		SentAt: c.SentAt,
	}}})
}

func (m *Messaging) onCustom(f wire.Frame) {
	var c wire.Custom
	if err := f.Bind(&c); err != nil {
		log.Error().Err(err).Str("module", "relay.messaging").Msg("bad custom push")
		return
	}
	m.emit(core.CustomMessageReceived{From: c.From, Type: c.Type, Data: c.Data})
}

func (m *Messaging) onControl(f wire.Frame) {
	var c wire.Control
	if err := f.Bind(&c); err != nil {
		log.Error().Err(err).Str("module", "relay.messaging").Msg("bad control push")
		return
	}
	m.emit(core.ControlMessageReceived{From: c.From, Payload: c.Payload})
}

func (m *Messaging) onDismissed(f wire.Frame) {
	var g wire.Group
	if err := f.Bind(&g); err != nil {
		log.Error().Err(err).Str("module", "relay.messaging").Msg("bad dismiss push")
		return
	}
	m.mu.Lock()
	if m.group == g.GroupID {
		m.group = ""
	}
	m.mu.Unlock()
	m.emit(core.GroupDismissed{GroupID: g.GroupID})
}

func (m *Messaging) onOwnerChanged(f wire.Frame) {
	var g wire.Group
	if err := f.Bind(&g); err != nil {
		log.Error().Err(err).Str("module", "relay.messaging").Msg("bad owner push")
		return
	}
	m.emit(core.GroupOwnerChanged{GroupID: g.GroupID, OwnerID: g.OwnerID})
}

func groupInfo(g wire.Group) core.GroupInfo {
	return core.GroupInfo{GroupID: g.GroupID, OwnerID: g.OwnerID, Announcement: g.Announcement}
}
