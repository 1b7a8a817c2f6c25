package core

import (
	"context"
	"errors"

	"github.com/dkeye/roomkit/internal/domain"
)

//go:generate mockgen -source=signal_iface.go -destination=mocks/mock_signal.go -package=mocks

var (
	// ErrGroupExists is returned by CreateGroup together with the existing
	// group's info, so callers can tell whether they own it.
	ErrGroupExists    = errors.New("group already exists")
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found")
)

type LoginParams struct {
	AppID      uint32
	UserID     string
	Credential string
}

type GroupInfo struct {
	GroupID      string
	OwnerID      string
	Announcement string
}

// MessagingTransport abstracts the IM/signaling SDK. Only one group is
// joined at a time; group-scoped calls act on it.
type MessagingTransport interface {
	Login(ctx context.Context, p LoginParams) error
	Logout(ctx context.Context) error

	CreateGroup(ctx context.Context, groupID, announcement string) (GroupInfo, error)
	JoinGroup(ctx context.Context, groupID string) (GroupInfo, error)
	QuitGroup(ctx context.Context) error
	DismissGroup(ctx context.Context) error
	ChangeGroupOwner(ctx context.Context, userID string) error
	KickGroupMember(ctx context.Context, userID string) error
	GroupExists(ctx context.Context, groupID string) (bool, error)
	SetGroupAnnouncement(ctx context.Context, announcement string) error
	GroupMemberProfiles(ctx context.Context, userIDs []string) ([]domain.Profile, error)

	SendChatMessage(ctx context.Context, text string) error
	SendCustomMessage(ctx context.Context, msgType, data string) error
	// SendControlMessage delivers a directive to one member, or to every
	// other member when to is empty.
	SendControlMessage(ctx context.Context, to string, payload []byte) error
	UpdateProfile(ctx context.Context, p domain.Profile) error

	OnEvent(h func(MessagingEvent))
	Close() error
}
