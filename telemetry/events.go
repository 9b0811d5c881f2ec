// Package telemetry provides population statistics, event detection and
// experiment output for the simulation.
package telemetry

import (
	"fmt"
	"log/slog"
)

// EventType identifies the kind of population event.
type EventType string

const (
	EventExtinction       EventType = "extinction"
	EventPopulationCrash  EventType = "population_crash"
	EventPopulationBoom   EventType = "population_boom"
	EventStablePopulation EventType = "stable_population"
	EventStillLife        EventType = "still_life"
)

// Event is an automatically detected moment in a run.
type Event struct {
	Type        EventType `csv:"type"`
	Tick        uint64    `csv:"tick"`
	Alive       int       `csv:"alive"`
	Description string    `csv:"description"`
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	slog.Info("event",
		"type", string(e.Type),
		"tick", e.Tick,
		"alive", e.Alive,
		"description", e.Description,
	)
}

// EventThresholds tunes the detector.
type EventThresholds struct {
	CrashDrop     float64 // fractional drop from the recent peak
	CrashMinPeak  int     // peaks below this are ignored
	BoomRise      float64 // fractional rise over the recent trough
	BoomMinBase   int     // troughs below this are ignored
	StableCV      float64 // within-window coefficient of variation
	StableWindows int     // consecutive stable windows before reporting
}

// EventDetector detects interesting moments from a sequence of windows.
type EventDetector struct {
	thresholds EventThresholds

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPeak   int
	recentTrough int
	stableCount  int
	extinct      bool
	still        bool
}

// NewEventDetector creates a detector with the given history size.
func NewEventDetector(historySize int, th EventThresholds) *EventDetector {
	if historySize < 2 {
		historySize = 2
	}
	if th.StableWindows < 1 {
		th.StableWindows = 1
	}
	return &EventDetector{
		thresholds:   th,
		history:      make([]WindowStats, historySize),
		historySize:  historySize,
		recentTrough: -1,
	}
}

// Check analyzes the latest window and returns any triggered events.
func (d *EventDetector) Check(stats WindowStats) []Event {
	var events []Event

	if e := d.checkExtinction(stats); e != nil {
		events = append(events, *e)
	}
	if d.historyIdx > 0 || d.historyFull {
		if e := d.checkCrash(stats); e != nil {
			events = append(events, *e)
		}
		if e := d.checkBoom(stats); e != nil {
			events = append(events, *e)
		}
	}
	if e := d.checkStable(stats); e != nil {
		events = append(events, *e)
	}
	if e := d.checkStillLife(stats); e != nil {
		events = append(events, *e)
	}

	d.addToHistory(stats)

	if stats.Alive > d.recentPeak {
		d.recentPeak = stats.Alive
	}
	if d.recentTrough < 0 || stats.Alive < d.recentTrough {
		d.recentTrough = stats.Alive
	}

	return events
}

// History returns recorded windows, oldest first.
func (d *EventDetector) History() []WindowStats {
	if !d.historyFull {
		return append([]WindowStats(nil), d.history[:d.historyIdx]...)
	}
	out := make([]WindowStats, 0, d.historySize)
	out = append(out, d.history[d.historyIdx:]...)
	return append(out, d.history[:d.historyIdx]...)
}

func (d *EventDetector) addToHistory(stats WindowStats) {
	d.history[d.historyIdx] = stats
	d.historyIdx = (d.historyIdx + 1) % d.historySize
	if d.historyIdx == 0 {
		d.historyFull = true
	}
}

func (d *EventDetector) checkExtinction(stats WindowStats) *Event {
	if stats.Alive > 0 {
		d.extinct = false
		return nil
	}
	if d.extinct {
		return nil
	}
	d.extinct = true
	return &Event{
		Type:        EventExtinction,
		Tick:        stats.WindowEndTick,
		Description: "no live cells remain",
	}
}

func (d *EventDetector) checkCrash(stats WindowStats) *Event {
	if d.recentPeak < d.thresholds.CrashMinPeak || d.recentPeak == 0 {
		return nil
	}
	drop := 1.0 - float64(stats.Alive)/float64(d.recentPeak)
	if drop <= d.thresholds.CrashDrop {
		return nil
	}

	// Reset peak after crash
	oldPeak := d.recentPeak
	d.recentPeak = stats.Alive
	return &Event{
		Type:        EventPopulationCrash,
		Tick:        stats.WindowEndTick,
		Alive:       stats.Alive,
		Description: fmt.Sprintf("population fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Alive),
	}
}

func (d *EventDetector) checkBoom(stats WindowStats) *Event {
	if d.recentTrough < d.thresholds.BoomMinBase || d.recentTrough <= 0 {
		return nil
	}
	rise := float64(stats.Alive)/float64(d.recentTrough) - 1.0
	if rise <= d.thresholds.BoomRise {
		return nil
	}

	oldTrough := d.recentTrough
	d.recentTrough = stats.Alive
	return &Event{
		Type:        EventPopulationBoom,
		Tick:        stats.WindowEndTick,
		Alive:       stats.Alive,
		Description: fmt.Sprintf("population rose %.0f%% from trough %d to %d", rise*100, oldTrough, stats.Alive),
	}
}

func (d *EventDetector) checkStable(stats WindowStats) *Event {
	if stats.Alive == 0 || stats.AliveMean == 0 {
		d.stableCount = 0
		return nil
	}

	cv := stats.AliveStd / stats.AliveMean
	if cv < d.thresholds.StableCV {
		d.stableCount++
	} else {
		d.stableCount = 0
	}

	if d.stableCount == d.thresholds.StableWindows { // trigger once per stable run
		return &Event{
			Type:        EventStablePopulation,
			Tick:        stats.WindowEndTick,
			Alive:       stats.Alive,
			Description: fmt.Sprintf("population steady near %.0f for %d windows", stats.AliveMean, d.stableCount),
		}
	}
	return nil
}

func (d *EventDetector) checkStillLife(stats WindowStats) *Event {
	frozen := stats.Ticks > 0 && stats.Alive > 0 && stats.Births == 0 && stats.Deaths == 0
	if !frozen {
		d.still = false
		return nil
	}
	if d.still {
		return nil
	}
	d.still = true
	return &Event{
		Type:        EventStillLife,
		Tick:        stats.WindowEndTick,
		Alive:       stats.Alive,
		Description: fmt.Sprintf("no births or deaths over %d ticks", stats.Ticks),
	}
}
