package services

import (
	"fmt"
	"time"

	"swear-jar/config"
)

// Gate admits count-mutating actions inside a fixed daily window.
// Both ends are inclusive at second resolution.
type Gate struct {
	start int // seconds since midnight
	end   int
	loc   *time.Location
}

type GateStatus struct {
	Open     bool   `json:"open"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

func NewGate(conf config.GateConfig) (*Gate, error) {
	start, err := parseClock(conf.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid gate start: %w", err)
	}
	end, err := parseClock(conf.End)
	if err != nil {
		return nil, fmt.Errorf("invalid gate end: %w", err)
	}

	loc := time.Local
	if conf.Timezone != "" {
		if loc, err = time.LoadLocation(conf.Timezone); err != nil {
			return nil, fmt.Errorf("invalid gate timezone: %w", err)
		}
	}

	return &Gate{start: start, end: end, loc: loc}, nil
}

func (g *Gate) IsAdmitted(now time.Time) bool {
	t := now.In(g.loc)
	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	if g.start <= g.end {
		return g.start <= sec && sec <= g.end
	}
	// window wraps midnight
	return sec >= g.start || sec <= g.end
}

func (g *Gate) Status(now time.Time) GateStatus {
	return GateStatus{
		Open:     g.IsAdmitted(now),
		Start:    formatClock(g.start),
		End:      formatClock(g.end),
		Timezone: g.loc.String(),
	}
}

func parseClock(s string) (int, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
		}
	}
	return 0, fmt.Errorf("%q is not HH:MM or HH:MM:SS", s)
}

func formatClock(sec int) string {
	if sec%60 != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
	}
	return fmt.Sprintf("%02d:%02d", sec/3600, sec%3600/60)
}
