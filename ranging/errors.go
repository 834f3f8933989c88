package ranging

// error definitions
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrBusy            = Error("ranging session already in progress")
	ErrTimeout         = Error("echo timeout")
	ErrOutOfRange      = Error("distance out of range")
	ErrPulseWidth      = Error("trigger pulse shorter than sensor minimum")
	ErrInvalidPinMode  = Error("invalid pin mode")
	ErrInvalidCapacity = Error("invalid history capacity")
	ErrInvalidClock    = Error("invalid timer clock")
	ErrNoCounter       = Error("no counter configured")
	ErrNoAlarm         = Error("no alarm configured")
)
