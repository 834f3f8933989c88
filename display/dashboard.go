package display

import (
	"errors"
	"fmt"
	"time"

	"github.com/itohio/sonar/config"
	"github.com/itohio/sonar/ranging"
)

const (
	textHeight = 10
	barGap     = 2
)

// FormatDistance renders a distance the way the dashboard shows it.
func FormatDistance(cm float64) string {
	return fmt.Sprintf("%.2f cm", cm)
}

// ErrorText is the message shown for a failed reading.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, ranging.ErrTimeout):
		return "ERROR: timeout"
	case errors.Is(err, ranging.ErrOutOfRange):
		return "ERROR: range"
	}
	return "ERROR"
}

// Dashboard shows the last reading on the top line and the history as a bar
// graph below it, most recent bar on the left.
type Dashboard struct {
	screen   *Screen
	slots    int
	maxRange float64
	hold     time.Duration

	errorUntil time.Time
	showsError bool
}

func NewDashboard(screen *Screen, cal config.Calibration) *Dashboard {
	slots := cal.HistorySize
	if slots < 1 {
		slots = 1
	}
	return &Dashboard{
		screen:   screen,
		slots:    slots,
		maxRange: cal.MaxRange,
		hold:     time.Duration(cal.ErrorHold),
	}
}

// Render draws reading and history and flushes the screen.
func (d *Dashboard) Render(reading ranging.Reading, history []float64, now time.Time) error {
	w, _ := d.screen.Size()

	d.screen.ClearRegion(0, 0, w, textHeight)
	if reading.Valid {
		d.screen.DrawString(FormatDistance(reading.Cm), 0, 0)
		d.showsError = false
	} else {
		d.screen.DrawString(ErrorText(reading.Err), 0, 0)
		d.showsError = true
		d.errorUntil = now.Add(d.hold)
	}

	d.drawBars(history)
	return d.screen.Flush()
}

// Expire clears an error message once it has been shown long enough and
// reports whether it did.
func (d *Dashboard) Expire(now time.Time) (bool, error) {
	if !d.showsError || now.Before(d.errorUntil) {
		return false, nil
	}
	w, _ := d.screen.Size()
	d.screen.ClearRegion(0, 0, w, textHeight)
	d.showsError = false
	return true, d.screen.Flush()
}

// BarHeight scales a distance to a bar of at most limit pixels. Any positive
// distance gets at least one pixel.
func BarHeight(cm, maxRange float64, limit int16) int16 {
	if cm <= 0 || maxRange <= 0 || limit <= 0 {
		return 0
	}
	if cm >= maxRange {
		return limit
	}
	h := int16(cm / maxRange * float64(limit))
	if h < 1 {
		h = 1
	}
	return h
}

func (d *Dashboard) drawBars(history []float64) {
	w, h := d.screen.Size()
	area := h - textHeight
	d.screen.ClearRegion(0, textHeight, w, area)

	slot := w / int16(d.slots)
	for i, v := range history {
		if i >= d.slots {
			break
		}
		bh := BarHeight(v, d.maxRange, area)
		if bh == 0 {
			continue
		}
		d.screen.DrawFilledRect(int16(i)*slot, h-bh, slot-barGap, bh)
	}
}
