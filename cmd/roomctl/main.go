package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/dkeye/roomkit/internal/adapters/relay"
	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/app/orch"
	"github.com/dkeye/roomkit/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	v := config.New()
	fs := pflag.NewFlagSet("roomctl", pflag.ExitOnError)
	fs.StringP("user", "u", "", "user id to log in as")
	fs.StringP("credential", "c", "", "signed credential; fetched from the relay when empty")
	fs.String("relay-url", v.GetString("relay_url"), "relay websocket url")
	fs.Uint32("sdk-app-id", v.GetUint32("sdk_app_id"), "application id")
	fs.String("log-level", v.GetString("log_level"), "log level")
	fs.Duration("invitation-timeout", v.GetDuration("invitation_timeout"), "speech invitation timeout")
	fs.Duration("application-timeout", v.GetDuration("application_timeout"), "speech application timeout")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to parse command line arguments")
	}
	for flag, key := range map[string]string{
		"relay-url":           "relay_url",
		"sdk-app-id":          "sdk_app_id",
		"log-level":           "log_level",
		"invitation-timeout":  "invitation_timeout",
		"application-timeout": "application_timeout",
	} {
		_ = v.BindPFlag(key, fs.Lookup(flag))
	}
	_ = v.BindPFlags(fs)

	cfg, err := config.Decode(v)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	user := v.GetString("user")
	if user == "" {
		log.Fatal().Msg("--user is required")
	}

	conn, err := relay.Dial(ctx, cfg.RelayURL, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("dial relay")
	}
	o, err := orch.New(orch.Options{
		Media:              relay.NewMedia(conn),
		Messaging:          relay.NewMessaging(conn),
		InvitationTimeout:  cfg.InvitationTimeout,
		ApplicationTimeout: cfg.ApplicationTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("orchestrator")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := o.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}()
	o.OnAll(printEvent)

	cred := v.GetString("credential")
	if cred == "" {
		if cred, err = fetchCredential(ctx, cfg.RelayURL, cfg.SDKAppID, user); err != nil {
			log.Fatal().Err(err).Msg("fetch credential")
		}
	}
	if err := o.Login(ctx, cfg.SDKAppID, user, cred); err != nil {
		log.Fatal().Err(err).Msg("login")
	}
	log.Info().Str("user", user).Str("sdk", o.SDKVersion()).Msg("ready, type help")

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	sh := newShell(o, os.Stdout)
	for {
		fmt.Fprint(os.Stdout, "> ")
		select {
		case <-ctx.Done():
			return
		case <-conn.Done():
			log.Error().Err(conn.Err()).Msg("relay connection lost")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := sh.exec(ctx, line); quit {
				return
			}
		}
	}
}

func printEvent(ev events.Event) {
	log.Info().Str("module", "roomctl").Str("event", string(ev.Kind())).Interface("payload", ev).Msg("event")
}

// fetchCredential asks the relay's dev signing endpoint for a credential.
func fetchCredential(ctx context.Context, relayURL string, appID uint32, userID string) (string, error) {
	u, err := url.Parse(relayURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "wss":
		u.Scheme = "https"
	default:
		u.Scheme = "http"
	}
	u.Path = strings.TrimSuffix(u.Path, "/ws/relay") + "/credential"

	body, _ := json.Marshal(map[string]any{"appId": appID, "userId": userID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("credential endpoint: %s", resp.Status)
	}
	var out struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Credential, nil
}
