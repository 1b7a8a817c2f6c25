// Package orch is the outward room API. It wires the auth gateway, the
// lifecycle manager and the interaction coordinator over one state store and
// one event stream.
package orch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/roomkit/internal/app/auth"
	"github.com/dkeye/roomkit/internal/app/coord"
	"github.com/dkeye/roomkit/internal/app/events"
	"github.com/dkeye/roomkit/internal/app/lifecycle"
	"github.com/dkeye/roomkit/internal/core"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Media     core.MediaTransport
	Messaging core.MessagingTransport

	InvitationTimeout  time.Duration
	ApplicationTimeout time.Duration
}

// Orchestrator owns one room session. Create, enter, exit and destroy must
// be called from one goroutine at a time; everything else is safe to call
// concurrently.
type Orchestrator struct {
	media core.MediaTransport
	im    core.MessagingTransport

	state  core.RoomState
	events *events.Emitter
	auth   *auth.Gateway
	rooms  *lifecycle.Manager
	coord  *coord.Coordinator

	ctx    context.Context
	cancel context.CancelFunc
	inbox  *inbox
	loop   sync.WaitGroup

	mu       sync.Mutex
	presence map[string]uint64
	closed   bool
}

func New(opts Options) (*Orchestrator, error) {
	if opts.Media == nil || opts.Messaging == nil {
		return nil, errors.New("orch: both transports are required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		media:    opts.Media,
		im:       opts.Messaging,
		state:    core.NewRoomState(),
		events:   events.NewEmitter(),
		ctx:      ctx,
		cancel:   cancel,
		inbox:    newInbox(),
		presence: make(map[string]uint64),
	}
	o.auth = auth.NewGateway(o.im, o.state)
	o.coord = coord.New(coord.Deps{
		Auth:               o.auth,
		State:              o.state,
		Messaging:          o.im,
		Events:             o.events,
		Media:              localMedia{o},
		OnKicked:           func(by string) { o.rooms.HandleKicked(o.ctx, by) },
		InvitationTimeout:  opts.InvitationTimeout,
		ApplicationTimeout: opts.ApplicationTimeout,
	})
	o.rooms = lifecycle.New(lifecycle.Deps{
		Auth:      o.auth,
		State:     o.state,
		Media:     o.media,
		Messaging: o.im,
		Events:    o.events,
		Session:   o.coord,
	})

	o.loop.Add(1)
	go o.run()
	o.media.OnEvent(func(ev core.MediaEvent) { o.post(func() { o.onMediaEvent(ev) }) })
	o.im.OnEvent(func(ev core.MessagingEvent) { o.post(func() { o.onMessagingEvent(ev) }) })
	log.Info().Str("module", "app.orch").Str("sdk", o.media.SDKVersion()).Msg("orchestrator ready")
	return o, nil
}

// run drains transport callbacks in arrival order.
func (o *Orchestrator) run() {
	defer o.loop.Done()
	for {
		select {
		case <-o.ctx.Done():
			return
		case <-o.inbox.wake:
		}
		for _, fn := range o.inbox.take() {
			if o.ctx.Err() != nil {
				return
			}
			fn()
		}
	}
}

func (o *Orchestrator) post(fn func()) {
	if o.ctx.Err() != nil {
		return
	}
	o.inbox.put(fn)
}

func (o *Orchestrator) On(kind events.Kind, h events.Handler) events.Subscription {
	return o.events.On(kind, h)
}

func (o *Orchestrator) OnAll(h events.Handler) events.Subscription {
	return o.events.OnAll(h)
}

func (o *Orchestrator) Off(sub events.Subscription) {
	o.events.Off(sub)
}

func (o *Orchestrator) SDKVersion() string {
	return o.media.SDKVersion()
}

// Close leaves the room, logs out and releases both transports. The
// orchestrator is unusable afterwards.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	o.mu.Unlock()

	var errs []error
	if o.state.Room().Active() {
		errs = append(errs, o.rooms.ExitRoom(ctx))
	}
	errs = append(errs, o.auth.Logout(ctx))

	o.media.OnEvent(nil)
	o.im.OnEvent(nil)
	o.cancel()
	o.loop.Wait()

	o.coord.Detach()
	o.state.Reset()
	o.events.Clear()

	errs = append(errs, o.media.Close(), o.im.Close())
	if err := errors.Join(errs...); err != nil {
		log.Warn().Str("module", "app.orch").Err(err).Msg("close")
		return err
	}
	log.Info().Str("module", "app.orch").Msg("orchestrator closed")
	return nil
}

// inbox is an unbounded FIFO so transport goroutines never block on us.
type inbox struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func newInbox() *inbox {
	return &inbox{wake: make(chan struct{}, 1)}
}

func (b *inbox) put(fn func()) {
	b.mu.Lock()
	b.queue = append(b.queue, fn)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *inbox) take() []func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queue
	b.queue = nil
	return q
}
