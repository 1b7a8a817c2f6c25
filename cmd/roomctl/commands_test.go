package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomkit/internal/domain"
)

func TestParsePatch(t *testing.T) {
	p, err := parsePatch("chat-muted", "on")
	require.NoError(t, err)
	require.NotNil(t, p.IsChatRoomMuted)
	assert.True(t, *p.IsChatRoomMuted)
	assert.Nil(t, p.SpeechMode)

	p, err = parsePatch("mode", "free")
	require.NoError(t, err)
	require.NotNil(t, p.SpeechMode)
	assert.Equal(t, domain.FreeSpeech, *p.SpeechMode)

	_, err = parsePatch("mode", "loud")
	assert.ErrorIs(t, err, errUsage)
	_, err = parsePatch("colour", "on")
	assert.ErrorIs(t, err, errUsage)
	_, err = parsePatch("all-mic-muted", "maybe")
	assert.ErrorIs(t, err, errUsage)
}

func TestParseOnOff(t *testing.T) {
	for _, s := range []string{"on", "TRUE", "yes", "1"} {
		v, err := parseOnOff(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "false", "no", "0"} {
		v, err := parseOnOff(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
}

func TestShellUsage(t *testing.T) {
	var out bytes.Buffer
	sh := newShell(nil, &out)
	ctx := context.Background()

	assert.False(t, sh.exec(ctx, ""))
	assert.False(t, sh.exec(ctx, "create"))
	assert.Contains(t, out.String(), "usage: create <room> [free|apply]")

	out.Reset()
	assert.False(t, sh.exec(ctx, "create abc"))
	assert.Contains(t, out.String(), "usage: create")

	out.Reset()
	assert.False(t, sh.exec(ctx, "frobnicate"))
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)

	out.Reset()
	sh.exec(ctx, "help")
	assert.Contains(t, out.String(), "invite-reply")

	assert.True(t, sh.exec(ctx, "quit"))
}
