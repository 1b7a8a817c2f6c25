// Package lifecycle drives join and leave of the single room slot across the
// media and messaging transports.
package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/roomkit/internal/app/auth"
	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

// Session is bound to the room while it is active.
type Session interface {
	Attach(room domain.RoomInfo)
	Detach()
}

type Deps struct {
	Auth      *auth.Gateway
	State     core.RoomState
	Media     core.MediaTransport
	Messaging core.MessagingTransport
	Events    events.Publisher
	Session   Session
}

// Manager is not serialized: callers must not run create, enter, exit and
// destroy concurrently. The phase guard only rejects overlapping joins.
type Manager struct {
	mu    sync.Mutex
	phase Phase

	auth    *auth.Gateway
	state   core.RoomState
	media   core.MediaTransport
	im      core.MessagingTransport
	pub     events.Publisher
	session Session
}

func New(d Deps) *Manager {
	return &Manager{
		auth:    d.Auth,
		state:   d.State,
		media:   d.Media,
		im:      d.Messaging,
		pub:     d.Events,
		session: d.Session,
	}
}

func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Manager) setPhase(p Phase) {
	m.mu.Lock()
	m.phase = p
	m.mu.Unlock()
}

// begin moves Absent to p, reporting false when a room is already held or joining.
func (m *Manager) begin(p Phase) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != Absent {
		return false
	}
	m.phase = p
	return true
}

func (m *Manager) CreateRoom(ctx context.Context, roomID domain.RoomID, mode domain.SpeechMode) error {
	if err := m.auth.Check(); err != nil {
		return err
	}
	if roomID == 0 {
		return domain.ErrInvalidRoomID
	}
	if !mode.Valid() {
		return domain.NewError(domain.KindInvalidParam, "invalid speech mode")
	}
	if !m.begin(Creating) {
		return domain.ErrAlreadyInRoom
	}

	self := m.auth.Session().UserID
	cfg := m.state.Room().RoomConfig
	cfg.SpeechMode = mode
	cfg.StartTime = domain.NowMillis()
	m.state.SetRoom(func(r *domain.RoomInfo) { r.RoomConfig = cfg })

	groupID := roomID.GroupID()
	created := true
	info, err := m.im.CreateGroup(ctx, groupID, cfg.Announcement())
	if errors.Is(err, core.ErrGroupExists) {
		created = false
		if info.OwnerID != self {
			err = domain.ErrRoomIDOccupied
		} else if info, err = m.im.JoinGroup(ctx, groupID); err == nil && info.Announcement != "" {
			m.mergeAnnouncement(info.Announcement)
		}
	}
	if err != nil {
		return m.failJoin(err, domain.ErrCreateRoom, roomID)
	}

	if err := m.media.EnterRoom(ctx, m.mediaParams(roomID)); err != nil {
		m.releaseGroup(ctx, created)
		return m.failJoin(err, domain.ErrCreateRoom, roomID)
	}

	m.state.SetRoom(func(r *domain.RoomInfo) {
		r.RoomID = roomID
		r.OwnerID = self
	})
	local := m.state.SetLocal(func(u *domain.RoomUser) { u.Role = domain.RoleMaster })
	m.activate()
	log.Info().Str("module", "app.lifecycle").Uint32("room", uint32(roomID)).Str("user", self).Msg("room created")
	m.pub.Emit(events.UserEnteredEvent{User: local})
	return nil
}

func (m *Manager) EnterRoom(ctx context.Context, roomID domain.RoomID) error {
	if err := m.auth.Check(); err != nil {
		return err
	}
	if roomID == 0 {
		return domain.ErrInvalidRoomID
	}
	if !m.begin(Entering) {
		return domain.ErrAlreadyInRoom
	}

	info, err := m.im.JoinGroup(ctx, roomID.GroupID())
	if err != nil {
		return m.failJoin(err, domain.ErrEnterRoom, roomID)
	}
	if info.Announcement != "" {
		m.mergeAnnouncement(info.Announcement)
	}

	if err := m.media.EnterRoom(ctx, m.mediaParams(roomID)); err != nil {
		m.releaseGroup(ctx, false)
		return m.failJoin(err, domain.ErrEnterRoom, roomID)
	}

	m.state.SetRoom(func(r *domain.RoomInfo) {
		r.RoomID = roomID
		r.OwnerID = info.OwnerID
	})
	local := m.state.SetLocal(func(u *domain.RoomUser) { u.Role = domain.RoleAnchor })
	m.activate()
	log.Info().Str("module", "app.lifecycle").Uint32("room", uint32(roomID)).Str("owner", info.OwnerID).Msg("room entered")
	m.pub.Emit(events.UserEnteredEvent{User: local})
	return nil
}

func (m *Manager) mergeAnnouncement(a string) {
	var merr error
	m.state.SetRoom(func(r *domain.RoomInfo) { merr = r.RoomConfig.Merge([]byte(a)) })
	if merr != nil {
		log.Warn().Str("module", "app.lifecycle").Err(merr).Msg("ignore malformed room announcement")
	}
}

func (m *Manager) ExitRoom(ctx context.Context) error {
	if !m.state.Room().Active() && m.Phase() == Absent {
		return nil
	}
	if err := m.auth.Check(); err != nil {
		return err
	}
	m.setPhase(Exiting)

	mediaErr := m.media.ExitRoom(ctx)
	imErr := m.im.QuitGroup(ctx)
	room, local := m.teardown()
	m.pub.Emit(events.UserLeftEvent{User: local})

	if err := errors.Join(mediaErr, imErr); err != nil {
		log.Error().Str("module", "app.lifecycle").Uint32("room", uint32(room.RoomID)).Err(err).Msg("exit room")
		return domain.Wrap(err, domain.ErrExitRoom)
	}
	log.Info().Str("module", "app.lifecycle").Uint32("room", uint32(room.RoomID)).Msg("room exited")
	return nil
}

func (m *Manager) DestroyRoom(ctx context.Context) error {
	if err := m.auth.Check(); err != nil {
		return err
	}
	if !m.state.Local().Role.CanControl() {
		return domain.ErrNoPrivilege
	}
	m.setPhase(Destroying)

	mediaErr := m.media.ExitRoom(ctx)
	imErr := m.im.DismissGroup(ctx)
	room, local := m.teardown()
	m.pub.Emit(events.UserLeftEvent{User: local})

	if err := errors.Join(mediaErr, imErr); err != nil {
		log.Error().Str("module", "app.lifecycle").Uint32("room", uint32(room.RoomID)).Err(err).Msg("destroy room")
		return domain.Wrap(err, domain.ErrDestroyRoom)
	}
	log.Info().Str("module", "app.lifecycle").Uint32("room", uint32(room.RoomID)).Msg("room destroyed")
	return nil
}

// HandleRoomDestroyed reacts to the group being dismissed by someone else.
func (m *Manager) HandleRoomDestroyed(ctx context.Context) {
	if !m.state.Room().Active() {
		return
	}
	if err := m.media.ExitRoom(ctx); err != nil {
		log.Warn().Str("module", "app.lifecycle").Err(err).Msg("media exit after dismiss")
	}
	room, _ := m.teardown()
	log.Info().Str("module", "app.lifecycle").Uint32("room", uint32(room.RoomID)).Msg("room dismissed remotely")
	m.pub.Emit(events.RoomDestroyedEvent{Room: room})
}

// HandleKicked reacts to a host removing the local user.
func (m *Manager) HandleKicked(ctx context.Context, by string) {
	if !m.state.Room().Active() {
		return
	}
	if err := m.media.ExitRoom(ctx); err != nil {
		log.Warn().Str("module", "app.lifecycle").Err(err).Msg("media exit after kick")
	}
	if err := m.im.QuitGroup(ctx); err != nil && !errors.Is(err, core.ErrMemberNotFound) {
		log.Warn().Str("module", "app.lifecycle").Err(err).Msg("quit group after kick")
	}
	room, _ := m.teardown()
	log.Info().Str("module", "app.lifecycle").Uint32("room", uint32(room.RoomID)).Str("by", by).Msg("kicked off")
	m.pub.Emit(events.KickedOffEvent{Room: room, By: by})
}

func (m *Manager) CheckRoomExistence(ctx context.Context, roomID domain.RoomID) (bool, error) {
	if err := m.auth.Check(); err != nil {
		return false, err
	}
	if roomID == 0 {
		return false, domain.ErrInvalidRoomID
	}
	ok, err := m.im.GroupExists(ctx, roomID.GroupID())
	if err != nil {
		return false, domain.Transport("check room existence", err)
	}
	return ok, nil
}

func (m *Manager) TransferRoomMaster(ctx context.Context, userID string) error {
	if err := m.auth.Check(); err != nil {
		return err
	}
	room, local := m.state.Snapshot()
	if !room.Active() {
		return domain.ErrRoomNotEntered
	}
	if local.Role != domain.RoleMaster {
		return domain.ErrNoPrivilege
	}
	if userID == "" || userID == local.UserID {
		return domain.ErrInvalidUserID
	}
	if err := m.im.ChangeGroupOwner(ctx, userID); err != nil {
		return domain.Transport("change group owner", err)
	}

	m.state.SetRoom(func(r *domain.RoomInfo) { r.OwnerID = userID })
	local = m.state.SetLocal(func(u *domain.RoomUser) { u.Role = domain.RoleAnchor })
	log.Info().Str("module", "app.lifecycle").Str("to", userID).Msg("room master transferred")
	m.pub.Emit(events.UserStateChangedEvent{User: local})
	return nil
}

// HandleOwnerChanged applies an ownership notification from the group.
func (m *Manager) HandleOwnerChanged(ownerID string) {
	room, local := m.state.Snapshot()
	if !room.Active() || ownerID == "" {
		return
	}
	prev := room.OwnerID
	m.state.SetRoom(func(r *domain.RoomInfo) { r.OwnerID = ownerID })

	var changed []domain.RoomUser
	if prev != ownerID && prev != local.UserID {
		if u, ok := m.state.UpdateUser(prev, func(u *domain.RoomUser) {
			if u.Role == domain.RoleMaster {
				u.Role = domain.RoleAnchor
			}
		}); ok {
			changed = append(changed, u)
		}
	}
	if ownerID == local.UserID {
		if local.Role != domain.RoleMaster {
			changed = append(changed, m.state.SetLocal(func(u *domain.RoomUser) { u.Role = domain.RoleMaster }))
		}
	} else if u, ok := m.state.UpdateUser(ownerID, func(u *domain.RoomUser) { u.Role = domain.RoleMaster }); ok {
		changed = append(changed, u)
	}

	log.Info().Str("module", "app.lifecycle").Str("owner", ownerID).Msg("room owner changed")
	for _, u := range changed {
		m.pub.Emit(events.UserStateChangedEvent{User: u})
	}
}

func (m *Manager) mediaParams(roomID domain.RoomID) core.MediaRoomParams {
	s := m.auth.Session()
	return core.MediaRoomParams{AppID: s.AppID, UserID: s.UserID, Credential: s.Credential, RoomID: roomID}
}

func (m *Manager) releaseGroup(ctx context.Context, created bool) {
	var err error
	if created {
		err = m.im.DismissGroup(ctx)
	} else {
		err = m.im.QuitGroup(ctx)
	}
	if err != nil {
		log.Warn().Str("module", "app.lifecycle").Err(err).Msg("release group after failed join")
	}
}

func (m *Manager) failJoin(err error, sentinel *domain.Error, roomID domain.RoomID) error {
	m.state.Reset()
	m.setPhase(Absent)
	log.Error().Str("module", "app.lifecycle").Uint32("room", uint32(roomID)).Err(err).Msg(sentinel.Message)
	return domain.Wrap(err, sentinel)
}

func (m *Manager) activate() {
	m.setPhase(Active)
	if m.session != nil {
		m.session.Attach(m.state.Room())
	}
}

// teardown resets the slot and returns what it held.
func (m *Manager) teardown() (domain.RoomInfo, domain.RoomUser) {
	room, local := m.state.Snapshot()
	m.state.Reset()
	if m.session != nil {
		m.session.Detach()
	}
	m.setPhase(Absent)
	return room, local
}
