package orch

import (
	"context"
	"time"

	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

// localMedia lets the coordinator apply directives through the same path as
// the API, so the usual availability events fire.
type localMedia struct{ o *Orchestrator }

func (m localMedia) SetMicrophoneMuted(mute bool) error { return m.o.MuteLocalMicrophone(mute) }
func (m localMedia) SetCameraMuted(mute bool) error     { return m.o.MuteLocalCamera(mute) }

func (o *Orchestrator) StartCameraPreview(ctx context.Context, view core.View) error {
	if err := o.media.StartLocalVideo(ctx, view); err != nil {
		return domain.Transport("start local video", err)
	}
	o.setLocalVideo(domain.StreamCamera, true)
	return nil
}

func (o *Orchestrator) StopCameraPreview() error {
	if err := o.media.StopLocalVideo(); err != nil {
		return domain.Transport("stop local video", err)
	}
	o.setLocalVideo(domain.StreamCamera, false)
	return nil
}

func (o *Orchestrator) MuteLocalCamera(mute bool) error {
	if err := o.media.MuteLocalVideo(mute); err != nil {
		return domain.Transport("mute local video", err)
	}
	o.setLocalVideo(domain.StreamCamera, !mute)
	return nil
}

func (o *Orchestrator) StartMicrophone(ctx context.Context, quality core.AudioQuality) error {
	if err := o.media.StartLocalAudio(ctx, quality); err != nil {
		return domain.Transport("start local audio", err)
	}
	o.setLocalAudio(true)
	return nil
}

func (o *Orchestrator) StopMicrophone() error {
	if err := o.media.StopLocalAudio(); err != nil {
		return domain.Transport("stop local audio", err)
	}
	o.setLocalAudio(false)
	return nil
}

func (o *Orchestrator) MuteLocalMicrophone(mute bool) error {
	if err := o.media.MuteLocalAudio(mute); err != nil {
		return domain.Transport("mute local audio", err)
	}
	o.setLocalAudio(!mute)
	return nil
}

func (o *Orchestrator) StartScreenCapture(ctx context.Context, view core.View) error {
	if err := o.media.StartScreenCapture(ctx, view); err != nil {
		return domain.Transport("start screen capture", err)
	}
	o.setLocalVideo(domain.StreamScreen, true)
	return nil
}

func (o *Orchestrator) PauseScreenCapture() error {
	return domain.Transport("pause screen capture", o.media.PauseScreenCapture())
}

func (o *Orchestrator) ResumeScreenCapture() error {
	return domain.Transport("resume screen capture", o.media.ResumeScreenCapture())
}

func (o *Orchestrator) StopScreenCapture() error {
	if err := o.media.StopScreenCapture(); err != nil {
		return domain.Transport("stop screen capture", err)
	}
	o.setLocalVideo(domain.StreamScreen, false)
	return nil
}

func (o *Orchestrator) setLocalVideo(stream domain.StreamType, on bool) {
	local := o.state.SetLocal(func(u *domain.RoomUser) { setVideo(u, stream, on) })
	o.events.Emit(events.UserVideoAvailableEvent{UserID: local.UserID, Available: on, Stream: stream})
	o.events.Emit(events.UserStateChangedEvent{User: local})
}

func (o *Orchestrator) setLocalAudio(on bool) {
	local := o.state.SetLocal(func(u *domain.RoomUser) { u.IsAudioStreamAvailable = on })
	o.events.Emit(events.UserAudioAvailableEvent{UserID: local.UserID, Available: on})
	o.events.Emit(events.UserStateChangedEvent{User: local})
}

func setVideo(u *domain.RoomUser, stream domain.StreamType, on bool) {
	if stream == domain.StreamScreen {
		u.IsScreenStreamAvailable = on
		return
	}
	u.IsVideoStreamAvailable = on
}

func (o *Orchestrator) StartRemoteView(userID string, view core.View, stream domain.StreamType) error {
	return domain.Transport("start remote view", o.media.StartRemoteView(userID, view, stream))
}

func (o *Orchestrator) StopRemoteView(userID string, stream domain.StreamType) error {
	return domain.Transport("stop remote view", o.media.StopRemoteView(userID, stream))
}

func (o *Orchestrator) MuteRemoteCamera(userID string, mute bool) error {
	return domain.Transport("mute remote video", o.media.MuteRemoteVideo(userID, mute))
}

func (o *Orchestrator) MuteRemoteAudio(userID string, mute bool) error {
	return domain.Transport("mute remote audio", o.media.MuteRemoteAudio(userID, mute))
}

func (o *Orchestrator) Devices(ctx context.Context, t core.DeviceType) ([]core.DeviceInfo, error) {
	list, err := o.media.Devices(ctx, t)
	if err != nil {
		return nil, domain.Transport("list devices", err)
	}
	return list, nil
}

func (o *Orchestrator) CurrentDevice(t core.DeviceType) (*core.DeviceInfo, error) {
	d, err := o.media.CurrentDevice(t)
	if err != nil {
		return nil, domain.Transport("current device", err)
	}
	return d, nil
}

func (o *Orchestrator) SetCurrentDevice(ctx context.Context, t core.DeviceType, deviceID string) error {
	return domain.Transport("set current device", o.media.SetCurrentDevice(ctx, t, deviceID))
}

func (o *Orchestrator) EnableAudioVolumeEvaluation(interval time.Duration) error {
	return domain.Transport("enable volume evaluation", o.media.EnableAudioVolumeEvaluation(interval))
}

func (o *Orchestrator) onMediaEvent(ev core.MediaEvent) {
	switch e := ev.(type) {
	case core.RemoteUserEntered:
		o.remoteUserEntered(e.UserID)
	case core.RemoteUserLeft:
		o.bumpPresence(e.UserID)
		if u, ok := o.state.RemoveUser(e.UserID); ok {
			o.events.Emit(events.UserLeftEvent{User: u})
		}
	case core.VideoAvailable:
		if !o.state.Room().Active() {
			return
		}
		o.upsertRemote(e.UserID, func(u *domain.RoomUser) { setVideo(u, e.Stream, e.Available) })
		o.events.Emit(events.UserVideoAvailableEvent{UserID: e.UserID, Available: e.Available, Stream: e.Stream})
	case core.AudioAvailable:
		if !o.state.Room().Active() {
			return
		}
		o.upsertRemote(e.UserID, func(u *domain.RoomUser) { u.IsAudioStreamAvailable = e.Available })
		o.events.Emit(events.UserAudioAvailableEvent{UserID: e.UserID, Available: e.Available})
	case core.FirstVideoFrame:
		o.events.Emit(events.FirstVideoFrameEvent{UserID: e.UserID, Stream: e.Stream, Width: e.Width, Height: e.Height})
	case core.VoiceVolume:
		o.events.Emit(events.UserVoiceVolumeEvent{Volumes: e.Volumes, Total: e.Total})
	case core.NetworkQuality:
		o.events.Emit(events.NetworkQualityEvent{Local: e.Local, Remote: e.Remote})
	case core.Statistics:
		o.events.Emit(events.StatisticsEvent{Stats: e})
	case core.DeviceChanged:
		o.events.Emit(events.DeviceChangeEvent{DeviceID: e.DeviceID, Type: e.Type, State: e.State})
	case core.ScreenShareStopped:
		o.state.SetLocal(func(u *domain.RoomUser) { u.IsScreenStreamAvailable = false })
		o.events.Emit(events.WebScreenShareStoppedEvent{})
	default:
		log.Warn().Str("module", "app.orch").Msgf("unhandled media event %T", ev)
	}
}

// upsertRemote applies fn and reports the change: entered for a user the
// roster has not seen yet, state-changed otherwise.
func (o *Orchestrator) upsertRemote(userID string, fn func(u *domain.RoomUser)) domain.RoomUser {
	owner := o.state.Room().OwnerID
	u, created := o.state.UpsertUser(userID, func(u *domain.RoomUser) {
		if u.Role == domain.RoleGuest {
			u.Role = remoteRole(userID, owner)
		}
		fn(u)
	})
	if created {
		o.events.Emit(events.UserEnteredEvent{User: u})
	} else {
		o.events.Emit(events.UserStateChangedEvent{User: u})
	}
	return u
}

func remoteRole(userID, owner string) domain.Role {
	if userID == owner {
		return domain.RoleMaster
	}
	return domain.RoleAnchor
}

func (o *Orchestrator) bumpPresence(userID string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.presence[userID]++
	return o.presence[userID]
}

func (o *Orchestrator) presenceGen(userID string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.presence[userID]
}

// remoteUserEntered looks the profile up off the loop and applies the result
// only if the user is still in this room.
func (o *Orchestrator) remoteUserEntered(userID string) {
	room := o.state.Room()
	if !room.Active() || userID == "" {
		return
	}
	gen := o.bumpPresence(userID)
	go func() {
		var profile domain.Profile
		profiles, err := o.im.GroupMemberProfiles(o.ctx, []string{userID})
		if err != nil {
			log.Warn().Str("module", "app.orch").Str("user", userID).Err(err).Msg("profile lookup")
		}
		for _, p := range profiles {
			if p.UserID == userID {
				profile = p
			}
		}
		o.post(func() { o.applyEntered(room.RoomID, userID, gen, profile) })
	}()
}

func (o *Orchestrator) applyEntered(roomID domain.RoomID, userID string, gen uint64, p domain.Profile) {
	if cur := o.state.Room(); !cur.Active() || cur.RoomID != roomID {
		log.Debug().Str("module", "app.orch").Str("user", userID).Msg("room left during profile lookup")
		return
	}
	if o.presenceGen(userID) != gen {
		log.Debug().Str("module", "app.orch").Str("user", userID).Msg("presence changed during profile lookup")
		return
	}
	o.upsertRemote(userID, func(u *domain.RoomUser) {
		if p.Nick != "" {
			u.Name = p.Nick
		}
		if p.Avatar != "" {
			u.Avatar = p.Avatar
		}
	})
}
