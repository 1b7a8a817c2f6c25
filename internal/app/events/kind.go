// Package events is the single outward event vocabulary of a room session.
package events

type Kind string

const (
	UserEntered           Kind = "user-entered"
	UserLeft              Kind = "user-left"
	UserStateChanged      Kind = "user-state-changed"
	UserVideoAvailable    Kind = "user-video-available"
	UserAudioAvailable    Kind = "user-audio-available"
	FirstVideoFrame       Kind = "first-video-frame"
	UserVoiceVolume       Kind = "user-voice-volume"
	NetworkQuality        Kind = "network-quality"
	Statistics            Kind = "statistics"
	DeviceChange          Kind = "device-change"
	WebScreenShareStopped Kind = "web-screen-share-stopped"
	ChatMessageReceived   Kind = "chat-message-received"
	CustomMessageReceived Kind = "custom-message-received"
	RoomDestroyed         Kind = "room-destroyed"
	KickedOff             Kind = "kicked-off"
	RoomConfigChanged     Kind = "room-config-changed"

	CallingRollStarted     Kind = "calling-roll-started"
	CallingRollStopped     Kind = "calling-roll-stopped"
	UserRepliedCallingRoll Kind = "user-replied-calling-roll"
	MicrophoneMuted        Kind = "microphone-muted"
	CameraMuted            Kind = "camera-muted"
	ChatRoomMuted          Kind = "chat-room-muted"

	SpeechInvitationReceived  Kind = "speech-invitation-received"
	SpeechInvitationCancelled Kind = "speech-invitation-cancelled"
	SpeechInvitationTimeout   Kind = "speech-invitation-timeout"
	SpeechInvitationReplied   Kind = "speech-invitation-replied"

	SpeechApplicationReceived  Kind = "speech-application-received"
	SpeechApplicationCancelled Kind = "speech-application-cancelled"
	SpeechApplicationTimeout   Kind = "speech-application-timeout"
	SpeechApplicationReplied   Kind = "speech-application-replied"
	SpeechApplicationForbidden Kind = "speech-application-forbidden"
	SpeechExitOrdered          Kind = "speech-exit-ordered"
)

// All lists the closed vocabulary in declaration order.
var All = []Kind{
	UserEntered, UserLeft, UserStateChanged, UserVideoAvailable, UserAudioAvailable,
	FirstVideoFrame, UserVoiceVolume, NetworkQuality, Statistics, DeviceChange,
	WebScreenShareStopped, ChatMessageReceived, CustomMessageReceived, RoomDestroyed,
	KickedOff, RoomConfigChanged,
	CallingRollStarted, CallingRollStopped, UserRepliedCallingRoll,
	MicrophoneMuted, CameraMuted, ChatRoomMuted,
	SpeechInvitationReceived, SpeechInvitationCancelled, SpeechInvitationTimeout, SpeechInvitationReplied,
	SpeechApplicationReceived, SpeechApplicationCancelled, SpeechApplicationTimeout,
	SpeechApplicationReplied, SpeechApplicationForbidden, SpeechExitOrdered,
}

func (k Kind) Valid() bool {
	for _, v := range All {
		if v == k {
			return true
		}
	}
	return false
}
