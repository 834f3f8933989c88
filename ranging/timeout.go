package ranging

import "sync/atomic"

// TimeoutMonitor bounds how long a session may wait for its echo.
type TimeoutMonitor struct {
	alarm   Alarm
	post    func(event)
	session atomic.Uint32
	expired atomic.Uint32 // session that ran out of time
}

// Arm starts the countdown for session.
func (t *TimeoutMonitor) Arm(session, windowTicks uint32) {
	t.expired.Store(0)
	t.session.Store(session)
	t.alarm.Arm(windowTicks, t.fire)
}

func (t *TimeoutMonitor) Cancel() {
	t.session.Store(0)
	t.alarm.Cancel()
}

//go:noinline
func (t *TimeoutMonitor) fire() {
	s := t.session.Load()
	if s == 0 {
		return
	}
	t.expired.Store(s)
	t.post(event{kind: eventTimeout, session: s})
}

// Expired reports whether session ran out of time. The flag stays set even if
// the timeout event itself was dropped.
func (t *TimeoutMonitor) Expired(session uint32) bool {
	return session != 0 && t.expired.Load() == session
}
