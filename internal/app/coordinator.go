package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"setgame/internal/domain"
	"setgame/internal/ports"
)

// Coordinator is the single serialized state machine for every room.
// Commands are queued and executed one at a time by Run; room state is
// loaded from and written back to the shared store on every command.
type Coordinator struct {
	rooms       *RoomStore
	sessions    *SessionRegistry
	broadcaster *Broadcaster
	rules       ports.RuleEngine
	tracer      trace.Tracer

	commands chan request
	stopped  chan struct{}
	running  atomic.Bool
}

type request struct {
	ctx   context.Context
	cmd   Command
	reply chan error
}

// Option customizes a Coordinator.
type Option func(*options)

type options struct {
	queueSize      int
	tracerProvider trace.TracerProvider
}

// WithQueueSize bounds the command queue.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

var errAlreadyRunning = errors.New("coordinator already running")

// NewCoordinator constructs a Coordinator over the shared store and rule engine.
func NewCoordinator(store ports.KeyValueStore, rules ports.RuleEngine, opts ...Option) *Coordinator {
	o := options{queueSize: DefaultCommandQueueSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}

	sessions := NewSessionRegistry()
	return &Coordinator{
		rooms:       NewRoomStore(store),
		sessions:    sessions,
		broadcaster: NewBroadcaster(sessions),
		rules:       rules,
		tracer:      o.tracerProvider.Tracer(tracerName),
		commands:    make(chan request, o.queueSize),
		stopped:     make(chan struct{}),
	}
}

// Sessions exposes the registry so transports can unbind closed connections.
func (c *Coordinator) Sessions() *SessionRegistry {
	return c.sessions
}

// Run processes queued commands until ctx is cancelled. It may only be called once.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	defer close(c.stopped)

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-c.commands:
			req.reply <- c.execute(req.ctx, req.cmd)
		}
	}
}

// Submit queues cmd and waits for its result. It blocks while the queue is full
// until ctx is done. A queued command that Run has not picked up before it stops
// is abandoned and Submit returns ErrCoordinatorStopped.
func (c *Coordinator) Submit(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", ErrInvalidCommand)
	}
	req := request{ctx: ctx, cmd: cmd, reply: make(chan error, 1)}

	select {
	case c.commands <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopped:
		return ErrCoordinatorStopped
	}

	select {
	case err := <-req.reply:
		return err
	case <-c.stopped:
		select {
		case err := <-req.reply:
			return err
		default:
			return ErrCoordinatorStopped
		}
	}
}

func (c *Coordinator) execute(ctx context.Context, cmd Command) (err error) {
	ctx, span := c.tracer.Start(ctx, "coordinator."+cmd.commandName(),
		trace.WithAttributes(attribute.String("setgame.room", cmd.room())),
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s command panicked: %v", cmd.commandName(), r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, ErrorCode(err))
		}
		span.End()
	}()

	switch cmd := cmd.(type) {
	case Join:
		return c.join(ctx, cmd)
	case SetGameType:
		return c.setGameType(ctx, cmd)
	case StartGame:
		return c.startGame(ctx, cmd)
	case VerifySet:
		return c.verifySet(ctx, cmd)
	case Leave:
		return c.leave(ctx, cmd)
	default:
		return fmt.Errorf("%w: unsupported command %T", ErrInvalidCommand, cmd)
	}
}

func (c *Coordinator) join(ctx context.Context, cmd Join) error {
	if cmd.UserID == "" || cmd.RoomName == "" {
		return fmt.Errorf("%w: join requires user id and room name", ErrInvalidCommand)
	}
	if cmd.Sink != nil {
		c.sessions.Register(cmd.UserID, cmd.Sink)
	}

	room, err := c.rooms.GetOrCreate(ctx, cmd.RoomName)
	if err != nil {
		return err
	}
	room.AddUser(cmd.UserID, cmd.Username)
	if err := c.rooms.Save(ctx, cmd.RoomName, room); err != nil {
		return err
	}

	_, err = c.broadcaster.Users(room)
	return err
}

func (c *Coordinator) setGameType(ctx context.Context, cmd SetGameType) error {
	if cmd.RoomName == "" {
		return fmt.Errorf("%w: room name is required", ErrInvalidCommand)
	}

	room, err := c.rooms.Get(ctx, cmd.RoomName)
	if err != nil {
		return err
	}
	gameType := cmd.GameType
	room.GameType = &gameType
	if err := c.rooms.Save(ctx, cmd.RoomName, room); err != nil {
		return err
	}

	_, err = c.broadcaster.GameType(room, gameType)
	return err
}

func (c *Coordinator) startGame(ctx context.Context, cmd StartGame) error {
	if cmd.RoomName == "" {
		return fmt.Errorf("%w: room name is required", ErrInvalidCommand)
	}

	room, err := c.rooms.Get(ctx, cmd.RoomName)
	if err != nil {
		return err
	}

	deck := c.rules.InitDeck()
	update := c.rules.UpdateBoard(deck, "")
	room.GameState = &domain.GameState{
		NumberOfSets: update.Sets,
		Deck:         update.Deck,
		Board:        update.Board,
	}
	if err := c.rooms.Save(ctx, cmd.RoomName, room); err != nil {
		return err
	}

	_, err = c.broadcaster.GameUpdate(room)
	return err
}

func (c *Coordinator) verifySet(ctx context.Context, cmd VerifySet) error {
	if cmd.UserID == "" || cmd.RoomName == "" {
		return fmt.Errorf("%w: verify requires user id and room name", ErrInvalidCommand)
	}

	room, err := c.rooms.Get(ctx, cmd.RoomName)
	if err != nil {
		return err
	}
	if !room.Started() {
		return fmt.Errorf("%w: room %q", ErrGameNotStarted, cmd.RoomName)
	}
	user, ok := room.Users[cmd.UserID]
	if !ok {
		return fmt.Errorf("%w: user %q in room %q", ErrUserNotFound, cmd.UserID, cmd.RoomName)
	}

	current := room.GameState
	if c.rules.IsSet(cmd.Selected) {
		room.AdjustPoints(cmd.UserID, 1)
		update := c.rules.UpdateBoard(current.Deck, domain.RemoveFromBoard(current.Board, cmd.Selected))
		room.GameState = &domain.GameState{
			NumberOfSets: update.Sets,
			Deck:         update.Deck,
			Board:        update.Board,
			PreviousSelection: &domain.Selection{
				User:      user.Name,
				Valid:     true,
				Selection: cmd.Selected,
			},
		}
	} else {
		room.AdjustPoints(cmd.UserID, -1)
		current.PreviousSelection = &domain.Selection{
			User:      user.Name,
			Valid:     false,
			Selection: cmd.Selected,
		}
	}

	if err := c.rooms.Save(ctx, cmd.RoomName, room); err != nil {
		return err
	}

	if _, err := c.broadcaster.GameUpdate(room); err != nil {
		return err
	}
	_, err = c.broadcaster.Users(room)
	return err
}

func (c *Coordinator) leave(ctx context.Context, cmd Leave) error {
	if cmd.UserID == "" || cmd.RoomName == "" {
		return fmt.Errorf("%w: leave requires user id and room name", ErrInvalidCommand)
	}
	c.sessions.Unregister(cmd.UserID, cmd.Sink)

	room, err := c.rooms.Get(ctx, cmd.RoomName)
	if err != nil {
		return err
	}
	if !room.RemoveUser(cmd.UserID) {
		return nil
	}
	if err := c.rooms.Save(ctx, cmd.RoomName, room); err != nil {
		return err
	}

	_, err = c.broadcaster.Users(room)
	return err
}
