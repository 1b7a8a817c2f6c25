package coord

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/roomkit/internal/domain"
)

type Cmd string

const (
	CmdRoomConfig    Cmd = "room_config"
	CmdMuteMic       Cmd = "mute_mic"
	CmdMuteAllMic    Cmd = "mute_all_mic"
	CmdMuteCamera    Cmd = "mute_camera"
	CmdMuteAllCamera Cmd = "mute_all_camera"
	CmdMuteChat      Cmd = "mute_chat"
	CmdKickOff       Cmd = "kick_off"

	CmdRollStart Cmd = "roll_start"
	CmdRollStop  Cmd = "roll_stop"
	CmdRollReply Cmd = "roll_reply"

	CmdInvite        Cmd = "speech_invite"
	CmdInviteCancel  Cmd = "speech_invite_cancel"
	CmdInviteReply   Cmd = "speech_invite_reply"
	CmdInviteTimeout Cmd = "speech_invite_timeout"

	CmdApply        Cmd = "speech_apply"
	CmdApplyCancel  Cmd = "speech_apply_cancel"
	CmdApplyReply   Cmd = "speech_apply_reply"
	CmdApplyTimeout Cmd = "speech_apply_timeout"
	CmdApplyForbid  Cmd = "speech_apply_forbid"

	CmdSendOffSpeaker     Cmd = "send_off_speaker"
	CmdSendOffAllSpeakers Cmd = "send_off_all_speakers"
	CmdExitSpeech         Cmd = "exit_speech"
)

// Envelope is the control message carried by the messaging transport.
type Envelope struct {
	Cmd    Cmd             `json:"cmd"`
	RoomID domain.RoomID   `json:"roomId"`
	ID     string          `json:"id,omitempty"`
	From   string          `json:"from"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type flagData struct {
	On bool `json:"on"`
}

type replyData struct {
	Agree bool `json:"agree"`
}

type inviteData struct {
	TimeoutMs int64 `json:"timeoutMs"`
}

func encodeEnvelope(env Envelope, data any) ([]byte, error) {
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s data: %w", env.Cmd, err)
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

func decodeEnvelope(p []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(p, &env); err != nil {
		return env, err
	}
	if env.Cmd == "" {
		return env, fmt.Errorf("control message without cmd")
	}
	return env, nil
}

// bind decodes the data section; a missing section leaves v zeroed.
func (e Envelope) bind(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
