package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotLogin                   ErrorKind = "NOT_LOGIN"
	KindInvalidParam               ErrorKind = "INVALID_PARAM"
	KindNoPrivilege                ErrorKind = "NO_PRIVILEGE"
	KindCreateRoom                 ErrorKind = "CREATE_ROOM_ERROR"
	KindEnterRoom                  ErrorKind = "ENTER_ROOM_ERROR"
	KindExitRoom                   ErrorKind = "EXIT_ROOM_ERROR"
	KindDestroyRoom                ErrorKind = "DESTROY_ROOM_ERROR"
	KindRoomNotEntered             ErrorKind = "ROOM_NOT_ENTERED"
	KindSpeechMode                 ErrorKind = "SPEECH_MODE"
	KindSpeechApplicationForbidden ErrorKind = "SPEECH_APPLICATION_FORBIDDEN"
	KindInvitationExpired          ErrorKind = "INVITATION_EXPIRED"
	KindCallingRollState           ErrorKind = "CALLING_ROLL_STATE"
	KindNotSpeaking                ErrorKind = "NOT_SPEAKING"
	KindTransport                  ErrorKind = "TRANSPORT_ERROR"
)

// Error is what every public operation fails with.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of the first domain error in the chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsDomain reports whether err already carries a domain kind.
func IsDomain(err error) bool {
	return KindOf(err) != ""
}

var (
	ErrNotLogin       = NewError(KindNotLogin, "not logged in")
	ErrNoPrivilege    = NewError(KindNoPrivilege, "no privilege")
	ErrRoomNotEntered = NewError(KindRoomNotEntered, "room not entered")
	ErrAlreadyInRoom  = NewError(KindInvalidParam, "already in a room")
	ErrInvalidRoomID  = NewError(KindInvalidParam, "invalid room id")
	ErrInvalidUserID  = NewError(KindInvalidParam, "invalid user id")
	ErrOtherUser      = NewError(KindInvalidParam, "already logged in as another user")
	ErrRoomIDOccupied = NewError(KindCreateRoom, "room id already occupied")

	ErrCreateRoom  = NewError(KindCreateRoom, "create room failed")
	ErrEnterRoom   = NewError(KindEnterRoom, "enter room failed")
	ErrExitRoom    = NewError(KindExitRoom, "exit room failed")
	ErrDestroyRoom = NewError(KindDestroyRoom, "destroy room failed")

	ErrNotApplySpeechMode   = NewError(KindSpeechMode, "room is not in apply-to-speak mode")
	ErrApplicationForbidden = NewError(KindSpeechApplicationForbidden, "speech application is forbidden")
	ErrNoApplication        = NewError(KindInvalidParam, "no pending speech application")
	ErrInvitationExpired    = NewError(KindInvitationExpired, "no valid speech invitation")
	ErrRollAlreadyStarted   = NewError(KindCallingRollState, "calling roll already started")
	ErrRollNotStarted       = NewError(KindCallingRollState, "calling roll not started")
	ErrNotSpeaking          = NewError(KindNotSpeaking, "not speaking")
	ErrChatRoomMuted        = NewError(KindNoPrivilege, "chat room is muted")
)

// Wrap keeps domain errors untouched and wraps anything else with kind.
func Wrap(err error, sentinel *Error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return WrapError(sentinel.Kind, sentinel.Message, err)
}

// Transport wraps a pass-through failure from a device or media call.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return WrapError(KindTransport, op, err)
}
