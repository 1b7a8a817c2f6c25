package signal

import (
	"maps"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/rs/zerolog/log"
)

// Leave reasons reported in media_user_left.
const (
	leaveExited       = 0
	leaveDisconnected = 1
)

type peerState struct {
	userID  string
	streams map[string]bool
}

// handleMediaEnter acks first, then replays the room to the newcomer and
// announces them to everyone else.
func (ctl *RelayWSController) handleMediaEnter(s *session, f wire.Frame) {
	var p wire.MediaEnter
	if err := f.Bind(&p); err != nil || p.RoomID == 0 {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	ctl.leaveRoom(s, leaveExited)

	ctl.mu.Lock()
	members := ctl.rooms[p.RoomID]
	if members == nil {
		members = make(map[string]*session)
		ctl.rooms[p.RoomID] = members
	}
	existing := make([]peerState, 0, len(members))
	peers := make([]*session, 0, len(members))
	for _, m := range members {
		existing = append(existing, peerState{userID: m.userID, streams: maps.Clone(m.streams)})
		peers = append(peers, m)
	}
	members[s.userID] = s
	s.room = p.RoomID
	s.inRoom = true
	s.streams = make(map[string]bool)
	user := s.userID
	ctl.mu.Unlock()

	log.Info().Str("module", "signal").Uint32("room", p.RoomID).Str("user", user).Int("peers", len(peers)).Msg("media enter")
	ctl.reply(s, f, nil, nil)

	for _, e := range existing {
		ctl.push(s, wire.TypeMediaEntered, wire.MediaPresence{UserID: e.userID})
		for stream, on := range e.streams {
			if on {
				ctl.push(s, wire.TypeMediaAvailable, wire.MediaState{UserID: e.userID, Stream: stream, Available: true})
			}
		}
	}
	ctl.pushAll(peers, wire.TypeMediaEntered, wire.MediaPresence{UserID: user})
}

func (ctl *RelayWSController) handleMediaExit(s *session, f wire.Frame) {
	ctl.leaveRoom(s, leaveExited)
	ctl.reply(s, f, nil, nil)
}

func (ctl *RelayWSController) handleMediaState(s *session, f wire.Frame) {
	var p wire.MediaState
	if err := f.Bind(&p); err != nil {
		ctl.reply(s, f, nil, errBadPayload)
		return
	}
	switch p.Stream {
	case wire.StreamCamera, wire.StreamScreen, wire.StreamAudio:
	default:
		ctl.reply(s, f, nil, errBadPayload)
		return
	}

	ctl.mu.Lock()
	if !s.inRoom {
		ctl.mu.Unlock()
		ctl.reply(s, f, nil, errNotInRoom)
		return
	}
	s.streams[p.Stream] = p.Available
	peers := ctl.roomPeersLocked(s)
	user := s.userID
	ctl.mu.Unlock()

	ctl.reply(s, f, nil, nil)
	ctl.pushAll(peers, wire.TypeMediaAvailable, wire.MediaState{UserID: user, Stream: p.Stream, Available: p.Available})
}

// leaveRoom takes s out of its media room and tells the others.
func (ctl *RelayWSController) leaveRoom(s *session, reason int) {
	ctl.mu.Lock()
	if !s.inRoom {
		ctl.mu.Unlock()
		return
	}
	room := s.room
	var peers []*session
	// a replaced session may no longer own its slot
	if members := ctl.rooms[room]; members[s.userID] == s {
		delete(members, s.userID)
		if len(members) == 0 {
			delete(ctl.rooms, room)
		}
		peers = ctl.roomPeersLocked(s)
	}
	user := s.userID
	s.inRoom = false
	s.room = 0
	s.streams = nil
	ctl.mu.Unlock()

	log.Info().Str("module", "signal").Uint32("room", room).Str("user", user).Int("reason", reason).Msg("media leave")
	ctl.pushAll(peers, wire.TypeMediaLeft, wire.MediaPresence{UserID: user, Reason: reason})
}

func (ctl *RelayWSController) roomPeersLocked(s *session) []*session {
	var out []*session
	for _, m := range ctl.rooms[s.room] {
		if m != s {
			out = append(out, m)
		}
	}
	return out
}
