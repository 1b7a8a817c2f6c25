package domain

import (
	"encoding/json"
	"time"
)

type SpeechMode string

const (
	FreeSpeech  SpeechMode = "FreeSpeech"
	ApplySpeech SpeechMode = "ApplySpeech"
)

func (m SpeechMode) Valid() bool {
	return m == FreeSpeech || m == ApplySpeech
}

// RoomConfig travels as the messaging group announcement, so the json names
// are part of the wire contract.
type RoomConfig struct {
	SpeechMode                   SpeechMode `json:"speechMode"`
	IsChatRoomMuted              bool       `json:"isChatRoomMuted"`
	IsSpeechApplicationForbidden bool       `json:"isSpeechApplicationForbidden"`
	IsAllCameraMuted             bool       `json:"isAllCameraMuted"`
	IsAllMicMuted                bool       `json:"isAllMicMuted"`
	IsCallingRoll                bool       `json:"isCallingRoll"`
	StartTime                    int64      `json:"startTime"`
}

func DefaultRoomConfig() RoomConfig {
	return RoomConfig{SpeechMode: ApplySpeech}
}

// Merge overlays the fields present in a JSON document onto c.
// Fields absent from data keep their current values.
func (c *RoomConfig) Merge(data []byte) error {
	next := *c
	if err := json.Unmarshal(data, &next); err != nil {
		return err
	}
	if !next.SpeechMode.Valid() {
		next.SpeechMode = c.SpeechMode
	}
	*c = next
	return nil
}

func (c RoomConfig) Announcement() string {
	b, _ := json.Marshal(c)
	return string(b)
}

// RoomConfigPatch is a partial update; nil fields are left untouched.
type RoomConfigPatch struct {
	SpeechMode                   *SpeechMode `json:"speechMode,omitempty"`
	IsChatRoomMuted              *bool       `json:"isChatRoomMuted,omitempty"`
	IsSpeechApplicationForbidden *bool       `json:"isSpeechApplicationForbidden,omitempty"`
	IsAllCameraMuted             *bool       `json:"isAllCameraMuted,omitempty"`
	IsAllMicMuted                *bool       `json:"isAllMicMuted,omitempty"`
	IsCallingRoll                *bool       `json:"isCallingRoll,omitempty"`
	StartTime                    *int64      `json:"startTime,omitempty"`
}

func (c RoomConfig) Apply(p RoomConfigPatch) RoomConfig {
	if p.SpeechMode != nil && p.SpeechMode.Valid() {
		c.SpeechMode = *p.SpeechMode
	}
	if p.IsChatRoomMuted != nil {
		c.IsChatRoomMuted = *p.IsChatRoomMuted
	}
	if p.IsSpeechApplicationForbidden != nil {
		c.IsSpeechApplicationForbidden = *p.IsSpeechApplicationForbidden
	}
	if p.IsAllCameraMuted != nil {
		c.IsAllCameraMuted = *p.IsAllCameraMuted
	}
	if p.IsAllMicMuted != nil {
		c.IsAllMicMuted = *p.IsAllMicMuted
	}
	if p.IsCallingRoll != nil {
		c.IsCallingRoll = *p.IsCallingRoll
	}
	if p.StartTime != nil {
		c.StartTime = *p.StartTime
	}
	return c
}

type RoomID uint32

type RoomInfo struct {
	RoomID     RoomID     `json:"roomId"`
	OwnerID    string     `json:"ownerId"`
	RoomConfig RoomConfig `json:"roomConfig"`
}

func EmptyRoomInfo() RoomInfo {
	return RoomInfo{RoomConfig: DefaultRoomConfig()}
}

// Active reports whether the slot currently holds a room.
func (r RoomInfo) Active() bool { return r.RoomID != 0 }

func NowMillis() int64 { return time.Now().UnixMilli() }
