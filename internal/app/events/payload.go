package events

import (
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
)

// Event is implemented by exactly one payload type per Kind.
type Event interface {
	Kind() Kind
}

type UserEnteredEvent struct{ User domain.RoomUser }
type UserLeftEvent struct{ User domain.RoomUser }
type UserStateChangedEvent struct{ User domain.RoomUser }

type UserVideoAvailableEvent struct {
	UserID    string
	Available bool
	Stream    domain.StreamType
}

type UserAudioAvailableEvent struct {
	UserID    string
	Available bool
}

type FirstVideoFrameEvent struct {
	UserID string
	Stream domain.StreamType
	Width  int
	Height int
}

type UserVoiceVolumeEvent struct {
	Volumes []core.VolumeInfo
	Total   int
}

type NetworkQualityEvent struct {
	Local  core.QualityInfo
	Remote []core.QualityInfo
}

type StatisticsEvent struct{ Stats core.Statistics }

type DeviceChangeEvent struct {
	DeviceID string
	Type     core.DeviceType
	State    core.DeviceState
}

type WebScreenShareStoppedEvent struct{}

type ChatMessageReceivedEvent struct{ Messages []core.ChatMessage }

type CustomMessageReceivedEvent struct {
	From string
	Type string
	Data string
}

type RoomDestroyedEvent struct{ Room domain.RoomInfo }

type KickedOffEvent struct {
	Room domain.RoomInfo
	By   string
}

type RoomConfigChangedEvent struct{ Config domain.RoomConfig }

type CallingRollStartedEvent struct{ By string }
type CallingRollStoppedEvent struct{ By string }
type UserRepliedCallingRollEvent struct{ UserID string }

type MicrophoneMutedEvent struct {
	Muted bool
	By    string
}

type CameraMutedEvent struct {
	Muted bool
	By    string
}

type ChatRoomMutedEvent struct {
	Muted bool
	By    string
}

type SpeechInvitationReceivedEvent struct {
	InvitationID string
	Inviter      string
}

type SpeechInvitationCancelledEvent struct {
	InvitationID string
	Inviter      string
}

// SpeechInvitationTimeoutEvent is raised on both sides; UserID is the invitee.
type SpeechInvitationTimeoutEvent struct {
	InvitationID string
	UserID       string
}

type SpeechInvitationRepliedEvent struct {
	InvitationID string
	UserID       string
	Agree        bool
}

type SpeechApplicationReceivedEvent struct {
	ApplicationID string
	UserID        string
}

type SpeechApplicationCancelledEvent struct {
	ApplicationID string
	UserID        string
}

// SpeechApplicationTimeoutEvent is raised on both sides; UserID is the applicant.
type SpeechApplicationTimeoutEvent struct {
	ApplicationID string
	UserID        string
}

type SpeechApplicationRepliedEvent struct {
	ApplicationID string
	By            string
	Agree         bool
}

type SpeechApplicationForbiddenEvent struct {
	Forbidden bool
	By        string
}

type SpeechExitOrderedEvent struct{ By string }

func (UserEnteredEvent) Kind() Kind                { return UserEntered }
func (UserLeftEvent) Kind() Kind                   { return UserLeft }
func (UserStateChangedEvent) Kind() Kind           { return UserStateChanged }
func (UserVideoAvailableEvent) Kind() Kind         { return UserVideoAvailable }
func (UserAudioAvailableEvent) Kind() Kind         { return UserAudioAvailable }
func (FirstVideoFrameEvent) Kind() Kind            { return FirstVideoFrame }
func (UserVoiceVolumeEvent) Kind() Kind            { return UserVoiceVolume }
func (NetworkQualityEvent) Kind() Kind             { return NetworkQuality }
func (StatisticsEvent) Kind() Kind                 { return Statistics }
func (DeviceChangeEvent) Kind() Kind               { return DeviceChange }
func (WebScreenShareStoppedEvent) Kind() Kind      { return WebScreenShareStopped }
func (ChatMessageReceivedEvent) Kind() Kind        { return ChatMessageReceived }
func (CustomMessageReceivedEvent) Kind() Kind      { return CustomMessageReceived }
func (RoomDestroyedEvent) Kind() Kind              { return RoomDestroyed }
func (KickedOffEvent) Kind() Kind                  { return KickedOff }
func (RoomConfigChangedEvent) Kind() Kind          { return RoomConfigChanged }
func (CallingRollStartedEvent) Kind() Kind         { return CallingRollStarted }
func (CallingRollStoppedEvent) Kind() Kind         { return CallingRollStopped }
func (UserRepliedCallingRollEvent) Kind() Kind     { return UserRepliedCallingRoll }
func (MicrophoneMutedEvent) Kind() Kind            { return MicrophoneMuted }
func (CameraMutedEvent) Kind() Kind                { return CameraMuted }
func (ChatRoomMutedEvent) Kind() Kind              { return ChatRoomMuted }
func (SpeechInvitationReceivedEvent) Kind() Kind   { return SpeechInvitationReceived }
func (SpeechInvitationCancelledEvent) Kind() Kind  { return SpeechInvitationCancelled }
func (SpeechInvitationTimeoutEvent) Kind() Kind    { return SpeechInvitationTimeout }
func (SpeechInvitationRepliedEvent) Kind() Kind    { return SpeechInvitationReplied }
func (SpeechApplicationReceivedEvent) Kind() Kind  { return SpeechApplicationReceived }
func (SpeechApplicationCancelledEvent) Kind() Kind { return SpeechApplicationCancelled }
func (SpeechApplicationTimeoutEvent) Kind() Kind   { return SpeechApplicationTimeout }
func (SpeechApplicationRepliedEvent) Kind() Kind   { return SpeechApplicationReplied }
func (SpeechApplicationForbiddenEvent) Kind() Kind { return SpeechApplicationForbidden }
func (SpeechExitOrderedEvent) Kind() Kind          { return SpeechExitOrdered }
