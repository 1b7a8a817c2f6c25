package core

import "github.com/dkeye/roomkit/internal/domain"

// MediaEvent is the closed set of callbacks raised by the media transport.
type MediaEvent interface {
	mediaEvent()
}

type RemoteUserEntered struct {
	UserID string
}

type RemoteUserLeft struct {
	UserID string
	Reason int
}

// VideoAvailable covers both the camera (main) and the screen (sub) stream.
type VideoAvailable struct {
	UserID    string
	Stream    domain.StreamType
	Available bool
}

type AudioAvailable struct {
	UserID    string
	Available bool
}

// FirstVideoFrame with an empty UserID refers to the local preview.
type FirstVideoFrame struct {
	UserID string
	Stream domain.StreamType
	Width  int
	Height int
}

type VolumeInfo struct {
	UserID string `json:"userId"`
	Volume int    `json:"volume"`
}

type VoiceVolume struct {
	Volumes []VolumeInfo
	Total   int
}

type QualityInfo struct {
	UserID  string `json:"userId"`
	Quality int    `json:"quality"`
}

type NetworkQuality struct {
	Local  QualityInfo
	Remote []QualityInfo
}

type Statistics struct {
	UpLoss        int   `json:"upLoss"`
	DownLoss      int   `json:"downLoss"`
	RTT           int   `json:"rtt"`
	SentBytes     int64 `json:"sentBytes"`
	ReceivedBytes int64 `json:"receivedBytes"`
}

type DeviceState int

const (
	DeviceAdded DeviceState = iota
	DeviceRemoved
	DeviceActive
)

type DeviceChanged struct {
	DeviceID string
	Type     DeviceType
	State    DeviceState
}

type ScreenShareStopped struct{}

func (RemoteUserEntered) mediaEvent()  {}
func (RemoteUserLeft) mediaEvent()     {}
func (VideoAvailable) mediaEvent()     {}
func (AudioAvailable) mediaEvent()     {}
func (FirstVideoFrame) mediaEvent()    {}
func (VoiceVolume) mediaEvent()        {}
func (NetworkQuality) mediaEvent()     {}
func (Statistics) mediaEvent()         {}
func (DeviceChanged) mediaEvent()      {}
func (ScreenShareStopped) mediaEvent() {}
