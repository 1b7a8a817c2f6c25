// Package store keeps relay groups and member profiles.
package store

import (
	"context"
	"errors"
)

var (
	ErrGroupExists   = errors.New("store: group exists")
	ErrGroupNotFound = errors.New("store: group not found")
	ErrNotMember     = errors.New("store: not a member")
)

type Group struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"ownerId"`
	Announcement string   `json:"announcement"`
	Members      []string `json:"members,omitempty"`
}

type Profile struct {
	UserID string `json:"userId"`
	Nick   string `json:"nick"`
	Avatar string `json:"avatar"`
}

type Store interface {
	CreateGroup(ctx context.Context, g Group) error
	Group(ctx context.Context, id string) (Group, error)
	GroupExists(ctx context.Context, id string) (bool, error)
	AddMember(ctx context.Context, id, userID string) (Group, error)
	RemoveMember(ctx context.Context, id, userID string) error
	SetOwner(ctx context.Context, id, ownerID string) error
	SetAnnouncement(ctx context.Context, id, announcement string) error
	DeleteGroup(ctx context.Context, id string) error

	SetProfile(ctx context.Context, p Profile) error
	Profiles(ctx context.Context, userIDs []string) ([]Profile, error)

	Close() error
}
