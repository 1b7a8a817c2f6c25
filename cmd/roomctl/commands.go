package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/dkeye/roomkit/internal/app/orch"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	args  int
	run   func(ctx context.Context, o *orch.Orchestrator, args []string) error
}

type shell struct {
	o    *orch.Orchestrator
	out  io.Writer
	cmds map[string]command
	dump spew.ConfigState
}

func newShell(o *orch.Orchestrator, out io.Writer) *shell {
	sh := &shell{
		o:    o,
		out:  out,
		dump: spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true},
	}
	sh.cmds = commands(sh)
	return sh
}

// exec runs one input line and reports whether the shell should quit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "quit":
		return true
	case "help":
		sh.help()
		return false
	}
	cmd, ok := sh.cmds[name]
	if !ok {
		fmt.Fprintf(sh.out, "unknown command %q, type help\n", name)
		return false
	}
	if len(args) < cmd.args {
		fmt.Fprintf(sh.out, "usage: %s %s\n", name, cmd.usage)
		return false
	}
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cmd.run(cctx, sh.o, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(sh.out, "usage: %s %s\n", name, cmd.usage)
			return false
		}
		fmt.Fprintf(sh.out, "error: %v\n", err)
		return false
	}
	fmt.Fprintln(sh.out, "ok")
	return false
}

func (sh *shell) help() {
	names := make([]string, 0, len(sh.cmds))
	for n := range sh.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(sh.out, "  %-22s %s\n", n, sh.cmds[n].usage)
	}
	fmt.Fprintf(sh.out, "  %-22s\n", "quit")
}

func parseRoom(s string) (domain.RoomID, error) {
	id, err := domain.ParseRoomID(s)
	if err != nil {
		return 0, fmt.Errorf("%w: room id", errUsage)
	}
	return id, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on/off", errUsage)
}

func parseMode(s string) (domain.SpeechMode, error) {
	switch strings.ToLower(s) {
	case "free":
		return domain.FreeSpeech, nil
	case "apply":
		return domain.ApplySpeech, nil
	}
	m := domain.SpeechMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: mode is free or apply", errUsage)
	}
	return m, nil
}

func parseDevice(s string) (core.DeviceType, error) {
	switch t := core.DeviceType(s); t {
	case core.DeviceCamera, core.DeviceMicrophone, core.DeviceSpeaker:
		return t, nil
	}
	return "", fmt.Errorf("%w: device is camera, microphone or speaker", errUsage)
}

func flagCmd(usage string, fn func(*orch.Orchestrator, context.Context, bool) error) command {
	return command{usage: usage, args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
		on, err := parseOnOff(a[0])
		if err != nil {
			return err
		}
		return fn(o, ctx, on)
	}}
}

func userFlagCmd(usage string, fn func(*orch.Orchestrator, context.Context, string, bool) error) command {
	return command{usage: usage, args: 2, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
		on, err := parseOnOff(a[1])
		if err != nil {
			return err
		}
		return fn(o, ctx, a[0], on)
	}}
}

func userCmd(usage string, fn func(*orch.Orchestrator, context.Context, string) error) command {
	return command{usage: usage, args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
		return fn(o, ctx, a[0])
	}}
}

func plainCmd(fn func(*orch.Orchestrator, context.Context) error) command {
	return command{run: func(ctx context.Context, o *orch.Orchestrator, _ []string) error {
		return fn(o, ctx)
	}}
}

func commands(sh *shell) map[string]command {
	return map[string]command{
		"create": {usage: "<room> [free|apply]", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			id, err := parseRoom(a[0])
			if err != nil {
				return err
			}
			mode := domain.ApplySpeech
			if len(a) > 1 {
				if mode, err = parseMode(a[1]); err != nil {
					return err
				}
			}
			return o.CreateRoom(ctx, id, mode)
		}},
		"enter": {usage: "<room>", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			id, err := parseRoom(a[0])
			if err != nil {
				return err
			}
			return o.EnterRoom(ctx, id)
		}},
		"exists": {usage: "<room>", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			id, err := parseRoom(a[0])
			if err != nil {
				return err
			}
			ok, err := o.CheckRoomExistence(ctx, id)
			if err == nil {
				fmt.Fprintf(sh.out, "room %s exists: %t\n", id, ok)
			}
			return err
		}},
		"exit":     plainCmd((*orch.Orchestrator).ExitRoom),
		"destroy":  plainCmd((*orch.Orchestrator).DestroyRoom),
		"transfer": userCmd("<user>", (*orch.Orchestrator).TransferRoomMaster),
		"state": {run: func(context.Context, *orch.Orchestrator, []string) error {
			fmt.Fprintf(sh.out, "phase: %s\n", sh.o.Phase())
			sh.dump.Fdump(sh.out, sh.o.RoomInfo(), sh.o.RoomUsers())
			fmt.Fprintf(sh.out, "pending invitations: %v\npending applications: %v\n",
				sh.o.PendingInvitations(), sh.o.PendingApplications())
			return nil
		}},
		"user": {usage: "<user>", args: 1, run: func(_ context.Context, o *orch.Orchestrator, a []string) error {
			u, err := o.UserInfo(a[0])
			if err == nil {
				sh.dump.Fdump(sh.out, u)
			}
			return err
		}},
		"profile": {usage: "<name> [avatar]", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			avatar := ""
			if len(a) > 1 {
				avatar = a[1]
			}
			return o.UpdateMyProfile(ctx, a[0], avatar)
		}},
		"say": {usage: "<text...>", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			return o.SendChatMessage(ctx, strings.Join(a, " "))
		}},
		"custom": {usage: "<type> <data...>", args: 2, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			return o.SendCustomMessage(ctx, a[0], strings.Join(a[1:], " "))
		}},

		"camera": flagCmd("on|off", func(o *orch.Orchestrator, ctx context.Context, on bool) error {
			if on {
				return o.StartCameraPreview(ctx, nil)
			}
			return o.StopCameraPreview()
		}),
		"mic": flagCmd("on|off", func(o *orch.Orchestrator, ctx context.Context, on bool) error {
			if on {
				return o.StartMicrophone(ctx, core.AudioQualitySpeech)
			}
			return o.StopMicrophone()
		}),
		"mute-camera": flagCmd("on|off", func(o *orch.Orchestrator, _ context.Context, on bool) error {
			return o.MuteLocalCamera(on)
		}),
		"mute-mic": flagCmd("on|off", func(o *orch.Orchestrator, _ context.Context, on bool) error {
			return o.MuteLocalMicrophone(on)
		}),
		"screen": {usage: "start|pause|resume|stop", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			switch a[0] {
			case "start":
				return o.StartScreenCapture(ctx, nil)
			case "pause":
				return o.PauseScreenCapture()
			case "resume":
				return o.ResumeScreenCapture()
			case "stop":
				return o.StopScreenCapture()
			}
			return errUsage
		}},
		"devices": {usage: "<camera|microphone|speaker>", args: 1, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			t, err := parseDevice(a[0])
			if err != nil {
				return err
			}
			ds, err := o.Devices(ctx, t)
			if err != nil {
				return err
			}
			cur, _ := o.CurrentDevice(t)
			for _, d := range ds {
				mark := " "
				if cur != nil && cur.DeviceID == d.DeviceID {
					mark = "*"
				}
				fmt.Fprintf(sh.out, "%s %s  %s\n", mark, d.DeviceID, d.DeviceName)
			}
			return nil
		}},
		"use-device": {usage: "<camera|microphone|speaker> <id>", args: 2, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			t, err := parseDevice(a[0])
			if err != nil {
				return err
			}
			return o.SetCurrentDevice(ctx, t, a[1])
		}},
		"volume": {usage: "<interval, e.g. 300ms>", args: 1, run: func(_ context.Context, o *orch.Orchestrator, a []string) error {
			d, err := time.ParseDuration(a[0])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return o.EnableAudioVolumeEvaluation(d)
		}},
		"mute-remote-audio": {usage: "<user> on|off", args: 2, run: func(_ context.Context, o *orch.Orchestrator, a []string) error {
			on, err := parseOnOff(a[1])
			if err != nil {
				return err
			}
			return o.MuteRemoteAudio(a[0], on)
		}},

		"mute-user-mic":    userFlagCmd("<user> on|off", (*orch.Orchestrator).MuteUserMicrophone),
		"mute-user-camera": userFlagCmd("<user> on|off", (*orch.Orchestrator).MuteUserCamera),
		"mute-all-mic":     flagCmd("on|off", (*orch.Orchestrator).MuteAllUsersMicrophone),
		"mute-all-camera":  flagCmd("on|off", (*orch.Orchestrator).MuteAllUsersCamera),
		"mute-chat":        flagCmd("on|off", (*orch.Orchestrator).MuteChatRoom),
		"forbid-apply":     flagCmd("on|off", (*orch.Orchestrator).ForbidSpeechApplication),
		"kick":             userCmd("<user>", (*orch.Orchestrator).KickOffUser),
		"roll-start":       plainCmd((*orch.Orchestrator).StartCallingRoll),
		"roll-stop":        plainCmd((*orch.Orchestrator).StopCallingRoll),
		"roll-reply":       plainCmd((*orch.Orchestrator).ReplyCallingRoll),
		"invite":           userCmd("<user>", (*orch.Orchestrator).SendSpeechInvitation),
		"invite-cancel":    userCmd("<user>", (*orch.Orchestrator).CancelSpeechInvitation),
		"invite-reply":     flagCmd("yes|no", (*orch.Orchestrator).ReplySpeechInvitation),
		"apply":            plainCmd((*orch.Orchestrator).SendSpeechApplication),
		"apply-cancel":     plainCmd((*orch.Orchestrator).CancelSpeechApplication),
		"apply-reply":      userFlagCmd("<user> yes|no", (*orch.Orchestrator).ReplySpeechApplication),
		"send-off":         userCmd("<user>", (*orch.Orchestrator).SendOffSpeaker),
		"send-off-all":     plainCmd((*orch.Orchestrator).SendOffAllSpeakers),
		"exit-speech":      plainCmd((*orch.Orchestrator).ExitSpeechState),
		"config": {usage: "<chat-muted|apply-forbidden|all-camera-muted|all-mic-muted|mode> <value>", args: 2, run: func(ctx context.Context, o *orch.Orchestrator, a []string) error {
			patch, err := parsePatch(a[0], a[1])
			if err != nil {
				return err
			}
			return o.SetRoomConfig(ctx, patch)
		}},
	}
}

func parsePatch(key, value string) (domain.RoomConfigPatch, error) {
	var p domain.RoomConfigPatch
	if key == "mode" {
		m, err := parseMode(value)
		if err != nil {
			return p, err
		}
		p.SpeechMode = &m
		return p, nil
	}
	on, err := parseOnOff(value)
	if err != nil {
		return p, err
	}
	switch key {
	case "chat-muted":
		p.IsChatRoomMuted = &on
	case "apply-forbidden":
		p.IsSpeechApplicationForbidden = &on
	case "all-camera-muted":
		p.IsAllCameraMuted = &on
	case "all-mic-muted":
		p.IsAllMicMuted = &on
	default:
		return p, fmt.Errorf("%w: unknown key %s", errUsage, strconv.Quote(key))
	}
	return p, nil
}
