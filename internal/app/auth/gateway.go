// Package auth tracks the messaging login that every room operation requires.
package auth

import (
	"context"
	"sync"

	"github.com/dkeye/roomkit/internal/core"
	"github.com/dkeye/roomkit/internal/domain"
	"github.com/rs/zerolog/log"
)

type Session struct {
	AppID      uint32
	UserID     string
	Credential string
}

type Gateway struct {
	mu       sync.RWMutex
	session  Session
	loggedIn bool

	im    core.MessagingTransport
	state core.RoomState
}

func NewGateway(im core.MessagingTransport, state core.RoomState) *Gateway {
	return &Gateway{im: im, state: state}
}

// Login refreshes the credential of a live login without asking the
// transport again. Identity only changes once the transport accepts it.
func (g *Gateway) Login(ctx context.Context, appID uint32, userID, credential string) error {
	if userID == "" {
		return domain.ErrInvalidUserID
	}
	session := Session{AppID: appID, UserID: userID, Credential: credential}

	g.mu.Lock()
	if g.loggedIn {
		current := g.session.UserID
		if current != userID {
			g.mu.Unlock()
			log.Warn().Str("module", "app.auth").Str("user", userID).Str("current", current).Msg("login as another user refused")
			return domain.ErrOtherUser
		}
		g.session = session
		g.mu.Unlock()
		g.state.SetLocal(func(u *domain.RoomUser) { u.UserID = userID })
		log.Debug().Str("module", "app.auth").Str("user", userID).Msg("already logged in")
		return nil
	}
	g.mu.Unlock()

	err := g.im.Login(ctx, core.LoginParams{AppID: appID, UserID: userID, Credential: credential})
	if err != nil {
		log.Error().Str("module", "app.auth").Str("user", userID).Err(err).Msg("login failed")
		return domain.WrapError(domain.KindNotLogin, "login failed", err)
	}

	g.mu.Lock()
	g.session = session
	g.loggedIn = true
	g.mu.Unlock()
	g.state.SetLocal(func(u *domain.RoomUser) { u.UserID = userID })
	log.Info().Str("module", "app.auth").Str("user", userID).Msg("logged in")
	return nil
}

func (g *Gateway) Logout(ctx context.Context) error {
	g.mu.Lock()
	if !g.loggedIn {
		g.mu.Unlock()
		return nil
	}
	g.loggedIn = false
	g.mu.Unlock()

	if err := g.im.Logout(ctx); err != nil {
		log.Warn().Str("module", "app.auth").Err(err).Msg("logout failed")
		return domain.Transport("logout", err)
	}
	log.Info().Str("module", "app.auth").Msg("logged out")
	return nil
}

// Check fails with NOT_LOGIN when no login is live.
func (g *Gateway) Check() error {
	if !g.LoggedIn() {
		return domain.ErrNotLogin
	}
	return nil
}

func (g *Gateway) LoggedIn() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loggedIn
}

func (g *Gateway) Session() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}
