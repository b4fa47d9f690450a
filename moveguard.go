// Package moveguard verifies the movement reported by game clients against what the rules of the game
// allow, and decides which updates to accept.
package moveguard

import (
	"time"

	"github.com/google/uuid"
	"github.com/oomph-ac/moveguard/diag"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/player/component"
	"github.com/oomph-ac/moveguard/player/detection"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/protocol"
	"github.com/oomph-ac/moveguard/session"
	"github.com/oomph-ac/moveguard/settings"
	"github.com/oomph-ac/moveguard/worker"
	"github.com/oomph-ac/moveguard/world"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

// Config holds the collaborators an Engine is created with.
type Config struct {
	Settings settings.Settings
	Log      *logrus.Logger
	// Capabilities of the protocol revision served. They are fixed for the lifetime of the engine.
	Capabilities protocol.Capabilities
	// Geometry answers the block queries of every player. It must be safe for concurrent reads.
	Geometry world.Geometry
	// Handler decides what happens on a violation. If nil, updates are cancelled from the cancel levels in
	// the detection settings.
	Handler player.ViolationHandler
}

// Engine evaluates the movement of every player in a session.
type Engine struct {
	log      *logrus.Logger
	settings settings.Settings
	models   movement.Models
	caps     protocol.Capabilities
	geometry world.Geometry
	handler  player.ViolationHandler

	counters  *diag.Counters
	limiter   *rate.Limiter
	scheduler worker.Scheduler
	players   *session.Store[*player.Player]

	closed atomic.Bool
}

// New creates an Engine with the config passed.
func New(conf Config) (*Engine, error) {
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	models, err := movement.BuildModels(conf.Settings)
	if err != nil {
		return nil, err
	}
	scheduler, err := worker.New(conf.Settings.Engine.Scheduler, conf.Settings.Engine.Regions, conf.Log)
	if err != nil {
		return nil, err
	}
	if conf.Handler == nil {
		conf.Handler = player.NewThresholdHandler(conf.Log, detection.CancelLevels(conf.Settings))
	}

	e := &Engine{
		log:      conf.Log,
		settings: conf.Settings,
		models:   models,
		caps:     conf.Capabilities,
		geometry: conf.Geometry,
		handler:  conf.Handler,

		counters:  diag.NewCounters(),
		limiter:   rate.NewLimiter(rate.Every(time.Duration(conf.Settings.Engine.MalformedLogInterval)*time.Millisecond), 1),
		scheduler: scheduler,
		players:   session.NewStore[*player.Player](),
	}
	if !e.caps.ConfirmationChannel {
		e.counters.Inc(diag.Degraded)
		e.log.Warnf("%v: %s protocol %d cannot confirm relocations, moves are re-synchronised instead", oerror.ErrDegradedProtocolCapability, e.caps.Edition, e.caps.Protocol)
	}
	return e, nil
}

// OnSessionStart creates the player for a session that just started, spawned at the location passed. If the
// session already has a player, it is returned as is.
func (e *Engine) OnSessionStart(id uuid.UUID, name string, spawn player.Location) *player.Player {
	p, _ := e.players.GetOrCreate(id, func() *player.Player {
		p := player.New(id, player.Config{
			Name:             name,
			Log:              e.log,
			Settings:         e.settings,
			Models:           e.models,
			Capabilities:     e.caps,
			Geometry:         e.geometry,
			World:            spawn.World,
			Handler:          e.handler,
			Counters:         e.counters,
			MalformedLimiter: e.limiter,
		})
		component.Register(p)
		detection.Register(p)
		p.Spawn(spawn)
		return p
	})
	return p
}

// OnSessionEnd closes the player of the session. Updates still in flight for it are abandoned.
func (e *Engine) OnSessionEnd(id uuid.UUID) {
	if p, ok := e.players.Delete(id); ok {
		p.Close()
	}
}

// Player returns the player of the session, if it is still running.
func (e *Engine) Player(id uuid.UUID) (*player.Player, bool) {
	return e.players.Get(id)
}

// EvaluateIncomingUpdate evaluates an update received from the session at the server time passed, in
// milliseconds. Updates of one session must be evaluated in the order they were received.
func (e *Engine) EvaluateIncomingUpdate(id uuid.UUID, raw protocol.RawUpdate, now int64) player.Decision {
	p, ok := e.players.Get(id)
	if !ok {
		e.counters.Inc(diag.Abandoned)
		return player.Decision{Verdict: player.VerdictReject, Reason: oerror.ErrSessionClosed}
	}
	return p.HandleUpdate(raw, now)
}

// Dispatch queues the update on the loop owning the session and calls done with the decision. done may be
// nil.
func (e *Engine) Dispatch(id uuid.UUID, raw protocol.RawUpdate, now int64, done func(player.Decision)) *worker.Handle {
	return e.scheduler.RunOnOwner(id, func() {
		d := e.EvaluateIncomingUpdate(id, raw, now)
		if done != nil {
			done(d)
		}
	})
}

// CurrentSetBackFor returns the set-back of the session, if it has one.
func (e *Engine) CurrentSetBackFor(id uuid.UUID) (player.Location, bool) {
	p, ok := e.players.Get(id)
	if !ok {
		return player.Location{}, false
	}
	return p.CurrentSetBack()
}

// ForceSetBack relocates the player of the session to its set-back.
func (e *Engine) ForceSetBack(id uuid.UUID) (player.Relocation, error) {
	p, ok := e.players.Get(id)
	if !ok {
		return player.Relocation{}, oerror.ErrSessionClosed
	}
	return p.ForceSetBack()
}

// Capabilities returns the capabilities of the protocol the engine serves.
func (e *Engine) Capabilities() protocol.Capabilities {
	return e.caps
}

// Counters returns a snapshot of the diagnostic counters of the engine.
func (e *Engine) Counters() map[string]uint64 {
	return e.counters.Snapshot()
}

// Close stops the scheduler and closes every player.
func (e *Engine) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.scheduler.Close()

	var ids []uuid.UUID
	e.players.Range(func(id uuid.UUID, _ *player.Player) bool {
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		e.OnSessionEnd(id)
	}
}
