package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGroupLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.CreateGroup(ctx, Group{ID: "1001", OwnerID: "teacher", Members: []string{"teacher"}}))
	assert.ErrorIs(t, s.CreateGroup(ctx, Group{ID: "1001", OwnerID: "bob"}), ErrGroupExists)

	ok, err := s.GroupExists(ctx, "1001")
	require.NoError(t, err)
	assert.True(t, ok)

	g, err := s.AddMember(ctx, "1001", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"teacher", "bob"}, g.Members)

	g, err = s.AddMember(ctx, "1001", "bob")
	require.NoError(t, err)
	assert.Len(t, g.Members, 2)

	require.NoError(t, s.SetOwner(ctx, "1001", "bob"))
	require.NoError(t, s.SetAnnouncement(ctx, "1001", `{"speechMode":"ApplySpeech"}`))
	g, err = s.Group(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "bob", g.OwnerID)
	assert.Equal(t, `{"speechMode":"ApplySpeech"}`, g.Announcement)

	require.NoError(t, s.RemoveMember(ctx, "1001", "teacher"))
	assert.ErrorIs(t, s.RemoveMember(ctx, "1001", "teacher"), ErrNotMember)

	require.NoError(t, s.DeleteGroup(ctx, "1001"))
	_, err = s.Group(ctx, "1001")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.ErrorIs(t, s.DeleteGroup(ctx, "1001"), ErrGroupNotFound)
	_, err = s.AddMember(ctx, "1001", "bob")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestMemoryGroupIsCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	members := []string{"teacher"}
	require.NoError(t, s.CreateGroup(ctx, Group{ID: "1", Members: members}))
	members[0] = "mallory"

	g, err := s.Group(ctx, "1")
	require.NoError(t, err)
	g.Members[0] = "eve"

	g, err = s.Group(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"teacher"}, g.Members)
}

func TestMemoryProfiles(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.SetProfile(ctx, Profile{UserID: "bob", Nick: "Bob", Avatar: "b.png"}))

	ps, err := s.Profiles(ctx, []string{"bob", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, []Profile{
		{UserID: "bob", Nick: "Bob", Avatar: "b.png"},
		{UserID: "ghost"},
	}, ps)
}
