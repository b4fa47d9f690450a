package player

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
	"github.com/oomph-ac/moveguard/diag"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/protocol"
	"github.com/oomph-ac/moveguard/settings"
	"github.com/oomph-ac/moveguard/utils"
	"github.com/oomph-ac/moveguard/world"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

const (
	frequencyBuckets        = 10
	frequencyBucketDuration = 100
)

// Config holds the collaborators and settings a Player is created with.
type Config struct {
	Name string
	Log  *logrus.Logger

	Settings     settings.Settings
	Models       movement.Models
	Capabilities protocol.Capabilities

	Geometry world.Geometry
	World    string

	Handler  ViolationHandler
	Counters *diag.Counters
	// MalformedLimiter limits how often malformed updates are logged. It may be shared between players.
	MalformedLimiter *rate.Limiter
	// RecoverFunc is called after a panic during evaluation was recovered.
	RecoverFunc func(p *Player, err any)
}

// Player holds all the movement state of a single entity. All of its state is owned by the player and
// guarded by its mutex for the duration of an evaluation.
type Player struct {
	mu     sync.Mutex
	closed atomic.Bool

	id   uuid.UUID
	name string
	log  *logrus.Logger

	settings settings.Settings
	models   movement.Models
	caps     protocol.Capabilities

	geometry   world.Geometry
	world      string
	worldRange cube.Range

	handler          ViolationHandler
	counters         *diag.Counters
	malformedLimiter *rate.Limiter
	recoverFunc      func(p *Player, err any)

	Dbg *Debugger

	tick int64
	now  int64

	last    ResolvedLocation
	hasLast bool

	gameMode  GameMode
	flying    bool
	mayFly    bool
	flySpeed  float64
	sprinting bool
	gliding   bool
	inVehicle bool

	width, height float64

	// takeoffSetBackY is the height of the set-back when the player last left the ground.
	takeoffSetBackY   float64
	hasTakeoffSetBack bool

	frequency *utils.ActionFrequency

	acks    AcknowledgementComponent
	history HistoryComponent
	setBack SetBackComponent
	fall    FallComponent
	effects EffectsComponent

	detections []Detection
}

// New creates a new player. Components and detections must be registered before the player is spawned.
func New(id uuid.UUID, conf Config) *Player {
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}
	if conf.Handler == nil {
		conf.Handler = NopViolationHandler{}
	}
	if conf.Counters == nil {
		conf.Counters = diag.NewCounters()
	}
	if conf.MalformedLimiter == nil {
		conf.MalformedLimiter = rate.NewLimiter(rate.Inf, 1)
	}
	if conf.Name == "" {
		conf.Name = id.String()
	}

	p := &Player{
		id:   id,
		name: conf.Name,
		log:  conf.Log,

		settings: conf.Settings,
		models:   conf.Models,
		caps:     conf.Capabilities,

		geometry:   conf.Geometry,
		world:      conf.World,
		worldRange: world.RangeOf(conf.Settings.DimensionOf(conf.World)),

		handler:          conf.Handler,
		counters:         conf.Counters,
		malformedLimiter: conf.MalformedLimiter,
		recoverFunc:      conf.RecoverFunc,

		flySpeed: conf.Settings.Physics.DefaultFlySpeed,
		width:    game.DefaultPlayerWidth,
		height:   game.DefaultPlayerHeight,

		frequency: utils.NewActionFrequency(frequencyBuckets, frequencyBucketDuration),
	}
	p.Dbg = NewDebugger(p)
	if conf.Settings.Engine.Debug {
		p.Dbg.Enable()
	}
	return p
}

// ID returns the session identity of the player.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Name returns the name the player is logged with.
func (p *Player) Name() string {
	return p.name
}

// Log returns the logger of the player.
func (p *Player) Log() *logrus.Logger {
	return p.log
}

// Settings returns the settings the player was created with.
func (p *Player) Settings() settings.Settings {
	return p.settings
}

// Capabilities returns the capabilities of the protocol the player is connected with.
func (p *Player) Capabilities() protocol.Capabilities {
	return p.caps
}

// Counters returns the diagnostic counters the player reports to.
func (p *Player) Counters() *diag.Counters {
	return p.counters
}

// Tick returns the server tick of the last update that was evaluated.
func (p *Player) Tick() int64 {
	return p.tick
}

// Frequency returns the rolling count of movement updates sent by the player.
func (p *Player) Frequency() *utils.ActionFrequency {
	return p.frequency
}

// Location returns the last location of the player that was accepted.
func (p *Player) Location() ResolvedLocation {
	return p.last
}

// Closed returns true if the session of the player has ended.
func (p *Player) Closed() bool {
	return p.closed.Load()
}

// Close ends the session of the player. An evaluation that is in flight is abandoned, and all state is
// torn down once it is done.
func (p *Player) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.history != nil {
		p.history.Clear()
	}
	if p.acks != nil {
		p.acks.Reset()
	}
	if p.effects != nil {
		p.effects.Clear()
	}
	if p.setBack != nil {
		p.setBack.Clear()
	}
	if p.fall != nil {
		p.fall.Reset(ResetLifecycle, 0)
	}
	p.frequency.Clear(p.now)
	p.detections = nil
	p.hasLast = false
	p.hasTakeoffSetBack = false
}

func (p *Player) ACKs() AcknowledgementComponent {
	return p.acks
}

func (p *Player) SetACKs(c AcknowledgementComponent) {
	p.acks = c
}

func (p *Player) History() HistoryComponent {
	return p.history
}

func (p *Player) SetHistory(c HistoryComponent) {
	p.history = c
}

func (p *Player) SetBack() SetBackComponent {
	return p.setBack
}

func (p *Player) SetSetBack(c SetBackComponent) {
	p.setBack = c
}

func (p *Player) Fall() FallComponent {
	return p.fall
}

func (p *Player) SetFall(c FallComponent) {
	p.fall = c
}

func (p *Player) Effects() EffectsComponent {
	return p.effects
}

func (p *Player) SetEffects(c EffectsComponent) {
	p.effects = c
}

// worldTop returns the highest buildable y of the world the player is in.
func (p *Player) worldTop() float64 {
	return float64(p.worldRange.Max())
}

// worldFloor returns the lowest buildable y of the world the player is in.
func (p *Player) worldFloor() float64 {
	return float64(p.worldRange.Min())
}
