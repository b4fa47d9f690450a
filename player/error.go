package player

import (
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/moveguard/oerror"
)

// recoverError recovers from a panic raised while evaluating an update. The update is rejected and the
// panic is reported, so that one bad update never ends a session.
func (p *Player) recoverError(d *Decision) {
	v := recover()
	if v == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("player", p.name)
		scope.SetTag("entity", p.id.String())
	})
	hub.Recover(v)

	p.log.Errorf("%s: recovered from panic while evaluating update: %v", p.name, v)
	*d = reject(ClassOrdinary, oerror.New("recovered from panic: %v", v))
	if recvFn := p.recoverFunc; recvFn != nil {
		recvFn(p, v)
	}
}
