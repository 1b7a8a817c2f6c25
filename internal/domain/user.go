// Package domain contains room entities without transport logic.
package domain

type Role string

const (
	RoleMaster  Role = "master"
	RoleAnchor  Role = "anchor"
	RoleManager Role = "manager"
	RoleGuest   Role = "guest"
)

// CanControl reports whether the role may issue classroom directives.
func (r Role) CanControl() bool {
	return r == RoleMaster || r == RoleManager
}

type StreamType string

const (
	StreamCamera StreamType = "camera"
	StreamScreen StreamType = "screen"
)

type RoomUser struct {
	UserID                  string `json:"userId"`
	Name                    string `json:"name"`
	Avatar                  string `json:"avatar"`
	Role                    Role   `json:"role"`
	IsVideoStreamAvailable  bool   `json:"isVideoStreamAvailable"`
	IsAudioStreamAvailable  bool   `json:"isAudioStreamAvailable"`
	IsScreenStreamAvailable bool   `json:"isScreenStreamAvailable"`
}

// NewRoomUser avoids ad-hoc literals in event handlers.
func NewRoomUser(userID string) RoomUser {
	return RoomUser{UserID: userID, Role: RoleGuest}
}
