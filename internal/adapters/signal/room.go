package signal

import (
	"context"
	"errors"
	"slices"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/dkeye/roomkit/internal/adapters/store"
	"github.com/rs/zerolog/log"
)

func toWireGroup(g store.Group) wire.Group {
	return wire.Group{GroupID: g.ID, OwnerID: g.OwnerID, Announcement: g.Announcement}
}

// handleCreateGroup answers group_exists together with the stored group so
// the client can tell whether it already owns it.
func (ctl *RelayWSController) handleCreateGroup(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Group
	if err := f.Bind(&p); err != nil || p.GroupID == "" {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	user := ctl.userOf(s)
	g := store.Group{ID: p.GroupID, OwnerID: user, Announcement: p.Announcement, Members: []string{user}}

	err := ctl.store.CreateGroup(ctx, g)
	if errors.Is(err, store.ErrGroupExists) {
		existing, gerr := ctl.store.Group(ctx, p.GroupID)
		if gerr != nil {
			ctl.reply(s, f, nil, gerr)
			return
		}
		ctl.reply(s, f, toWireGroup(existing), err)
		return
	}
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	ctl.bindGroup(s, g.ID)
	log.Info().Str("module", "signal").Str("group", g.ID).Str("owner", user).Msg("group created")
	ctl.reply(s, f, toWireGroup(g), nil)
}

func (ctl *RelayWSController) handleJoinGroup(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Group
	if err := f.Bind(&p); err != nil || p.GroupID == "" {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	g, err := ctl.store.AddMember(ctx, p.GroupID, ctl.userOf(s))
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	ctl.bindGroup(s, g.ID)
	ctl.reply(s, f, toWireGroup(g), nil)
}

func (ctl *RelayWSController) handleQuitGroup(ctx context.Context, s *session, f wire.Frame) {
	group := ctl.groupOf(s)
	if group == "" {
		ctl.reply(s, f, nil, errNotInGroup)
		return
	}
	err := ctl.store.RemoveMember(ctx, group, ctl.userOf(s))
	ctl.bindGroup(s, "")
	ctl.reply(s, f, nil, err)
}

// ownedGroup loads the caller's group and checks they own it.
func (ctl *RelayWSController) ownedGroup(ctx context.Context, s *session) (store.Group, error) {
	group := ctl.groupOf(s)
	if group == "" {
		return store.Group{}, errNotInGroup
	}
	g, err := ctl.store.Group(ctx, group)
	if err != nil {
		return g, err
	}
	if g.OwnerID != ctl.userOf(s) {
		return g, errOwnerOnly
	}
	return g, nil
}

func (ctl *RelayWSController) handleDismissGroup(ctx context.Context, s *session, f wire.Frame) {
	g, err := ctl.ownedGroup(ctx, s)
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	if err := ctl.store.DeleteGroup(ctx, g.ID); err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	peers := ctl.groupPeers(g.ID, s)
	ctl.mu.Lock()
	s.group = ""
	for _, p := range peers {
		p.group = ""
	}
	ctl.mu.Unlock()

	log.Info().Str("module", "signal").Str("group", g.ID).Int("notified", len(peers)).Msg("group dismissed")
	ctl.reply(s, f, nil, nil)
	ctl.pushAll(peers, wire.TypeGroupDismissed, wire.Group{GroupID: g.ID})
}

func (ctl *RelayWSController) handleChangeOwner(ctx context.Context, s *session, f wire.Frame) {
	var p wire.User
	if err := f.Bind(&p); err != nil || p.UserID == "" {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	g, err := ctl.ownedGroup(ctx, s)
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	if !slices.Contains(g.Members, p.UserID) {
		ctl.reply(s, f, nil, store.ErrNotMember)
		return
	}
	if err := ctl.store.SetOwner(ctx, g.ID, p.UserID); err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	ctl.reply(s, f, nil, nil)
	ctl.pushAll(ctl.groupPeers(g.ID, s), wire.TypeOwnerChanged, wire.Group{GroupID: g.ID, OwnerID: p.UserID})
}

// handleKickMember removes the member from the group but leaves their
// session bound, so a directed notice can still reach them.
func (ctl *RelayWSController) handleKickMember(ctx context.Context, s *session, f wire.Frame) {
	var p wire.User
	if err := f.Bind(&p); err != nil || p.UserID == "" || p.UserID == ctl.userOf(s) {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	g, err := ctl.ownedGroup(ctx, s)
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	err = ctl.store.RemoveMember(ctx, g.ID, p.UserID)
	if err == nil {
		log.Info().Str("module", "signal").Str("group", g.ID).Str("user", p.UserID).Msg("member kicked")
	}
	ctl.reply(s, f, nil, err)
}

func (ctl *RelayWSController) handleGroupExists(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Group
	if err := f.Bind(&p); err != nil || p.GroupID == "" {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	ok, err := ctl.store.GroupExists(ctx, p.GroupID)
	ctl.reply(s, f, wire.Exists{Exists: ok}, err)
}

func (ctl *RelayWSController) handleSetAnnouncement(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Group
	if err := f.Bind(&p); err != nil {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	g, err := ctl.ownedGroup(ctx, s)
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	ctl.reply(s, f, nil, ctl.store.SetAnnouncement(ctx, g.ID, p.Announcement))
}

func (ctl *RelayWSController) handleMemberProfiles(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Profiles
	if err := f.Bind(&p); err != nil {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	ps, err := ctl.store.Profiles(ctx, p.UserIDs)
	if err != nil {
		ctl.reply(s, f, nil, err)
		return
	}
	out := wire.Profiles{Profiles: make([]wire.Profile, 0, len(ps))}
	for _, sp := range ps {
		out.Profiles = append(out.Profiles, wire.Profile{UserID: sp.UserID, Nick: sp.Nick, Avatar: sp.Avatar})
	}
	ctl.reply(s, f, out, nil)
}

func (ctl *RelayWSController) handleUpdateProfile(ctx context.Context, s *session, f wire.Frame) {
	var p wire.Profile
	if err := f.Bind(&p); err != nil {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	err := ctl.store.SetProfile(ctx, store.Profile{UserID: ctl.userOf(s), Nick: p.Nick, Avatar: p.Avatar})
	ctl.reply(s, f, nil, err)
}
