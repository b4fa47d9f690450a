package main

import (
	"fmt"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/moveguard"
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/protocol"
	"github.com/oomph-ac/moveguard/protocol/java"
	"github.com/oomph-ac/moveguard/settings"
	"github.com/oomph-ac/moveguard/world"
	"github.com/sirupsen/logrus"
)

const settingsPath = "moveguard.toml"

// The following program replays a short movement trace of a player walking, jumping and then speeding
// across a flat platform, and prints the decision made for every update.
func main() {
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(settingsPath); err != nil {
			panic(err)
		}
	}
	s, err := settings.Load(settingsPath)
	if err != nil {
		panic(err)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	log.SetLevel(logrus.DebugLevel)

	w := world.New()
	w.Fill(cube.Pos{-32, 63, -32}, cube.Pos{32, 63, 32}, world.Stone)

	caps := java.Capabilities(765)
	e, err := moveguard.New(moveguard.Config{
		Settings:     s,
		Log:          log,
		Capabilities: caps,
		Geometry:     w,
	})
	if err != nil {
		panic(err)
	}
	defer e.Close()

	id := uuid.New()
	e.OnSessionStart(id, "Replay", player.Location{World: "world", Position: mgl64.Vec3{0.5, 64, 0.5}})

	var now int64
	for _, u := range trace(caps) {
		now += 50
		d := e.EvaluateIncomingUpdate(id, u, now)
		fmt.Printf("t=%dms %s class=%s score=%.2f\n", now, d.Verdict, d.Class, d.Score)

		if d.Relocation != nil {
			t := d.Relocation.Target
			pk := java.Relocation(t.Position, t.Yaw, t.Pitch, d.Relocation.ID)
			fmt.Printf("  relocation %d to %s (%d bytes)\n", d.Relocation.ID, t, len(pk.Data))

			// The client confirms the relocation one tick later.
			now += 50
			d = e.EvaluateIncomingUpdate(id, protocol.Confirmation(d.Relocation.ID), now)
			fmt.Printf("t=%dms %s class=%s\n", now, d.Verdict, d.Class)
		}
	}
	fmt.Println(e.Counters())
}

// trace returns the updates of a player walking, jumping once and then moving twice as fast as it may.
func trace(caps protocol.Capabilities) []protocol.RawUpdate {
	var (
		updates []protocol.RawUpdate
		pos     = mgl64.Vec3{0.5, 64, 0.5}
	)
	move := func(dx, dy float64, onGround bool) {
		pos = pos.Add(mgl64.Vec3{dx, dy, 0})
		p := pos
		updates = append(updates, protocol.Movement(caps, onGround, false, &p, nil))
	}

	for i := 0; i < 10; i++ {
		move(0.2, 0, true)
	}
	jump := []float64{0.42, 0.3332, 0.2478, -0.2478, -0.3332, -0.42}
	for i, dy := range jump {
		move(0.2, dy, i == len(jump)-1)
	}
	for i := 0; i < 5; i++ {
		move(0.4, 0, true)
	}
	return updates
}
