package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/roomkit/internal/adapters/relay/wire"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	SDKVersion     = "roomkit-relay/1.0"
	requestTimeout = 5 * time.Second
)

var (
	ErrNotInRoom     = errors.New("relay: not in media room")
	ErrUnknownDevice = errors.New("relay: unknown device")
)

var virtualDevices = []core.DeviceInfo{
	{DeviceID: "relay-camera", DeviceName: "Relay Camera", Type: core.DeviceCamera},
	{DeviceID: "relay-microphone", DeviceName: "Relay Microphone", Type: core.DeviceMicrophone},
	{DeviceID: "relay-speaker", DeviceName: "Relay Speaker", Type: core.DeviceSpeaker},
}

type localStream struct {
	on    bool
	muted bool
}

func (s localStream) available() bool { return s.on && !s.muted }

// Media carries stream presence only. No audio or video is captured or
// rendered; peers learn who publishes what.
type Media struct {
	conn *Conn

	mu      sync.Mutex
	handler func(core.MediaEvent)
	inRoom  bool
	camera  localStream
	audio   localStream
	screen  localStream
	current map[core.DeviceType]string
	muted   map[string]bool
	volume  time.Duration
}

var _ core.MediaTransport = (*Media)(nil)

func NewMedia(conn *Conn) *Media {
	m := &Media{
		conn:    conn,
		current: make(map[core.DeviceType]string),
		muted:   make(map[string]bool),
	}
	for _, d := range virtualDevices {
		m.current[d.Type] = d.DeviceID
	}
	conn.Handle(wire.TypeMediaEntered, m.onEntered)
	conn.Handle(wire.TypeMediaLeft, m.onLeft)
	conn.Handle(wire.TypeMediaAvailable, m.onAvailable)
	return m
}

// EnterRoom joins the presence room and republishes streams started before
// entering.
func (m *Media) EnterRoom(ctx context.Context, p core.MediaRoomParams) error {
	// presence pushes may arrive before the ack is consumed
	m.mu.Lock()
	m.inRoom = true
	m.mu.Unlock()
	if err := m.conn.Request(ctx, wire.TypeMediaEnter, wire.MediaEnter{RoomID: uint32(p.RoomID)}, nil); err != nil {
		m.mu.Lock()
		m.inRoom = false
		m.mu.Unlock()
		return err
	}
	m.mu.Lock()
	states := []wire.MediaState{
		{Stream: wire.StreamCamera, Available: m.camera.available()},
		{Stream: wire.StreamAudio, Available: m.audio.available()},
		{Stream: wire.StreamScreen, Available: m.screen.available()},
	}
	m.mu.Unlock()
	for _, s := range states {
		if s.Available {
			m.notify(ctx, s)
		}
	}
	return nil
}

func (m *Media) ExitRoom(ctx context.Context) error {
	m.mu.Lock()
	was := m.inRoom
	m.inRoom = false
	m.camera, m.audio, m.screen = localStream{}, localStream{}, localStream{}
	m.muted = make(map[string]bool)
	m.mu.Unlock()
	if !was {
		return nil
	}
	return m.conn.Request(ctx, wire.TypeMediaExit, nil, nil)
}

func (m *Media) StartLocalVideo(_ context.Context, _ core.View) error {
	return m.update(wire.StreamCamera, &m.camera, func(s *localStream) { s.on = true })
}

func (m *Media) StopLocalVideo() error {
	return m.update(wire.StreamCamera, &m.camera, func(s *localStream) { *s = localStream{} })
}

func (m *Media) MuteLocalVideo(mute bool) error {
	return m.update(wire.StreamCamera, &m.camera, func(s *localStream) { s.muted = mute })
}

func (m *Media) StartLocalAudio(_ context.Context, _ core.AudioQuality) error {
	return m.update(wire.StreamAudio, &m.audio, func(s *localStream) { s.on = true })
}

func (m *Media) StopLocalAudio() error {
	return m.update(wire.StreamAudio, &m.audio, func(s *localStream) { *s = localStream{} })
}

func (m *Media) MuteLocalAudio(mute bool) error {
	return m.update(wire.StreamAudio, &m.audio, func(s *localStream) { s.muted = mute })
}

func (m *Media) StartScreenCapture(_ context.Context, _ core.View) error {
	return m.update(wire.StreamScreen, &m.screen, func(s *localStream) { s.on, s.muted = true, false })
}

// PauseScreenCapture keeps the capture running but stops publishing it.
func (m *Media) PauseScreenCapture() error {
	return m.update(wire.StreamScreen, &m.screen, func(s *localStream) { s.muted = true })
}

func (m *Media) ResumeScreenCapture() error {
	return m.update(wire.StreamScreen, &m.screen, func(s *localStream) { s.muted = false })
}

func (m *Media) StopScreenCapture() error {
	return m.update(wire.StreamScreen, &m.screen, func(s *localStream) { *s = localStream{} })
}

// update applies fn to s and publishes the change while in a room.
func (m *Media) update(stream string, s *localStream, fn func(*localStream)) error {
	m.mu.Lock()
	before := s.available()
	fn(s)
	after := s.available()
	inRoom := m.inRoom
	m.mu.Unlock()

	if !inRoom || before == after {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return m.notify(ctx, wire.MediaState{Stream: stream, Available: after})
}

func (m *Media) notify(ctx context.Context, s wire.MediaState) error {
	if err := m.conn.Notify(ctx, wire.TypeMediaState, s); err != nil {
		log.Warn().Str("module", "relay.media").Str("stream", s.Stream).Err(err).Msg("publish state")
		return err
	}
	return nil
}

func (m *Media) StartRemoteView(userID string, _ core.View, _ domain.StreamType) error {
	return m.requireRoom(userID)
}

func (m *Media) StopRemoteView(userID string, _ domain.StreamType) error {
	return m.requireRoom(userID)
}

func (m *Media) MuteRemoteVideo(userID string, mute bool) error {
	return m.requireRoom(userID)
}

// MuteRemoteAudio records the local playback state for userID.
func (m *Media) MuteRemoteAudio(userID string, mute bool) error {
	if err := m.requireRoom(userID); err != nil {
		return err
	}
	m.mu.Lock()
	m.muted[userID] = mute
	m.mu.Unlock()
	return nil
}

func (m *Media) requireRoom(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inRoom {
		return ErrNotInRoom
	}
	if userID == "" {
		return domain.ErrInvalidUserID
	}
	return nil
}

func (m *Media) Devices(_ context.Context, t core.DeviceType) ([]core.DeviceInfo, error) {
	var out []core.DeviceInfo
	for _, d := range virtualDevices {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Media) CurrentDevice(t core.DeviceType) (*core.DeviceInfo, error) {
	m.mu.Lock()
	id := m.current[t]
	m.mu.Unlock()
	for _, d := range virtualDevices {
		if d.Type == t && d.DeviceID == id {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s selected", ErrUnknownDevice, t)
}

func (m *Media) SetCurrentDevice(_ context.Context, t core.DeviceType, deviceID string) error {
	found := false
	for _, d := range virtualDevices {
		if d.Type == t && d.DeviceID == deviceID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s %q", ErrUnknownDevice, t, deviceID)
	}
	m.mu.Lock()
	m.current[t] = deviceID
	m.mu.Unlock()
	m.emit(core.DeviceChanged{DeviceID: deviceID, Type: t, State: core.DeviceActive})
	return nil
}

// EnableAudioVolumeEvaluation is accepted but no volume is reported since
// nothing is captured.
func (m *Media) EnableAudioVolumeEvaluation(interval time.Duration) error {
	m.mu.Lock()
	m.volume = interval
	m.mu.Unlock()
	return nil
}

func (m *Media) SDKVersion() string { return SDKVersion }

func (m *Media) OnEvent(h func(core.MediaEvent)) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

func (m *Media) Close() error {
	return m.conn.Close()
}

func (m *Media) emit(ev core.MediaEvent) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(ev)
	}
}

func (m *Media) active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inRoom
}

func (m *Media) onEntered(f wire.Frame) {
	var p wire.MediaPresence
	if err := f.Bind(&p); err != nil || !m.active() {
		return
	}
	m.emit(core.RemoteUserEntered{UserID: p.UserID})
}

func (m *Media) onLeft(f wire.Frame) {
	var p wire.MediaPresence
	if err := f.Bind(&p); err != nil || !m.active() {
		return
	}
	m.emit(core.RemoteUserLeft{UserID: p.UserID, Reason: p.Reason})
}

func (m *Media) onAvailable(f wire.Frame) {
	var s wire.MediaState
	if err := f.Bind(&s); err != nil {
		log.Error().Err(err).Str("module", "relay.media").Msg("bad state push")
		return
	}
	if !m.active() {
		return
	}
	switch s.Stream {
	case wire.StreamCamera:
		m.emit(core.VideoAvailable{UserID: s.UserID, Stream: domain.StreamCamera, Available: s.Available})
	case wire.StreamScreen:
		m.emit(core.VideoAvailable{UserID: s.UserID, Stream: domain.StreamScreen, Available: s.Available})
	case wire.StreamAudio:
		m.emit(core.AudioAvailable{UserID: s.UserID, Available: s.Available})
	default:
		log.Warn().Str("module", "relay.media").Str("stream", s.Stream).Msg("unknown stream")
	}
}
