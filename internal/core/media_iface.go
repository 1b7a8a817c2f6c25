package core

import (
	"context"
	"time"

	"github.com/dkeye/roomkit/internal/domain"
)

//go:generate mockgen -source=media_iface.go -destination=mocks/mock_media.go -package=mocks

// View is an opaque render target owned by the host application.
type View any

type AudioQuality int

const (
	AudioQualityDefault AudioQuality = iota
	AudioQualitySpeech
	AudioQualityMusic
)

type DeviceType string

const (
	DeviceCamera     DeviceType = "camera"
	DeviceMicrophone DeviceType = "microphone"
	DeviceSpeaker    DeviceType = "speaker"
)

type DeviceInfo struct {
	DeviceID   string     `json:"deviceId"`
	DeviceName string     `json:"deviceName"`
	Type       DeviceType `json:"type"`
}

type MediaRoomParams struct {
	AppID      uint32
	UserID     string
	Credential string
	RoomID     domain.RoomID
}

// MediaTransport abstracts the real-time audio/video SDK.
// Events are delivered to the handler installed with OnEvent, possibly from
// a transport goroutine.
type MediaTransport interface {
	EnterRoom(ctx context.Context, p MediaRoomParams) error
	ExitRoom(ctx context.Context) error

	StartLocalVideo(ctx context.Context, view View) error
	StopLocalVideo() error
	MuteLocalVideo(mute bool) error
	StartLocalAudio(ctx context.Context, quality AudioQuality) error
	StopLocalAudio() error
	MuteLocalAudio(mute bool) error

	StartRemoteView(userID string, view View, stream domain.StreamType) error
	StopRemoteView(userID string, stream domain.StreamType) error
	MuteRemoteVideo(userID string, mute bool) error
	MuteRemoteAudio(userID string, mute bool) error

	Devices(ctx context.Context, t DeviceType) ([]DeviceInfo, error)
	CurrentDevice(t DeviceType) (*DeviceInfo, error)
	SetCurrentDevice(ctx context.Context, t DeviceType, deviceID string) error

	StartScreenCapture(ctx context.Context, view View) error
	PauseScreenCapture() error
	ResumeScreenCapture() error
	StopScreenCapture() error

	EnableAudioVolumeEvaluation(interval time.Duration) error
	SDKVersion() string

	OnEvent(h func(MediaEvent))
	Close() error
}
