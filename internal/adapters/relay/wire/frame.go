// Package wire is the JSON protocol spoken between relay clients and the
// relay server.
package wire

import (
	"encoding/json"
	"time"
)

// Request types. The server answers each with TypeAck carrying the same ReqID.
const (
	TypeLogin           = "login"
	TypeLogout          = "logout"
	TypeCreateGroup     = "create_group"
	TypeJoinGroup       = "join_group"
	TypeQuitGroup       = "quit_group"
	TypeDismissGroup    = "dismiss_group"
	TypeChangeOwner     = "change_owner"
	TypeKickMember      = "kick_member"
	TypeGroupExists     = "group_exists"
	TypeSetAnnouncement = "set_announcement"
	TypeMemberProfiles  = "member_profiles"
	TypeSendChat        = "send_chat"
	TypeSendCustom      = "send_custom"
	TypeSendControl     = "send_control"
	TypeUpdateProfile   = "update_profile"
	TypeMediaEnter      = "media_enter"
	TypeMediaExit       = "media_exit"
	TypeMediaState      = "media_state"
	TypePing            = "ping"
)

// Server pushes.
const (
	TypeAck            = "ack"
	TypePong           = "pong"
	TypeChat           = "chat"
	TypeCustom         = "custom"
	TypeControl        = "control"
	TypeGroupDismissed = "group_dismissed"
	TypeOwnerChanged   = "owner_changed"
	TypeMediaEntered   = "media_user_entered"
	TypeMediaLeft      = "media_user_left"
	TypeMediaAvailable = "media_available"
)

// Error codes that map onto transport sentinels on the client side.
const (
	CodeGroupExists    = "group_exists"
	CodeGroupNotFound  = "group_not_found"
	CodeMemberNotFound = "member_not_found"
	CodeUnauthorized   = "unauthorized"
	CodeBadRequest     = "bad_request"
	CodeNotInGroup     = "not_in_group"
	CodeForbidden      = "forbidden"
	CodeInternal       = "internal"
)

type Frame struct {
	Type  string          `json:"type"`
	ReqID string          `json:"reqId,omitempty"`
	Code  string          `json:"code,omitempty"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// New builds a frame with v marshalled into Data.
func New(typ, reqID string, v any) (Frame, error) {
	f := Frame{Type: typ, ReqID: reqID}
	if v == nil {
		return f, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return f, err
	}
	f.Data = raw
	return f, nil
}

func (f Frame) Bind(v any) error {
	if len(f.Data) == 0 {
		return nil
	}
	return json.Unmarshal(f.Data, v)
}

func (f Frame) Failed() bool { return f.Code != "" }

type Login struct {
	AppID      uint32 `json:"appId"`
	UserID     string `json:"userId"`
	Credential string `json:"credential"`
}

type Group struct {
	GroupID      string `json:"groupId"`
	OwnerID      string `json:"ownerId,omitempty"`
	Announcement string `json:"announcement,omitempty"`
}

type User struct {
	UserID string `json:"userId"`
}

type Exists struct {
	Exists bool `json:"exists"`
}

type Profile struct {
	UserID string `json:"userId"`
	Nick   string `json:"nick"`
	Avatar string `json:"avatar"`
}

type Profiles struct {
	UserIDs  []string  `json:"userIds,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

type Chat struct {
	ID     string    `json:"id,omitempty"`
	From   string    `json:"from,omitempty"`
	Nick   string    `json:"nick,omitempty"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt,omitempty"`
}

type Custom struct {
	From string `json:"from,omitempty"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Control carries an opaque directive; To empty means every other member.
type Control struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Payload []byte `json:"payload"`
}

type MediaEnter struct {
	RoomID uint32 `json:"roomId"`
}

// Stream names used in MediaState.
const (
	StreamCamera = "camera"
	StreamScreen = "screen"
	StreamAudio  = "audio"
)

type MediaState struct {
	UserID    string `json:"userId,omitempty"`
	Stream    string `json:"stream"`
	Available bool   `json:"available"`
}

type MediaPresence struct {
	UserID string `json:"userId"`
	Reason int    `json:"reason,omitempty"`
}
