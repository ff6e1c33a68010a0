package tabu

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

type Field string

const (
	FieldIteration           Field = "iteration"
	FieldCurrentScore        Field = "current_score"
	FieldBestScore           Field = "best_score"
	FieldNoChangeStreak      Field = "no_change_streak"
	FieldNoImprovementStreak Field = "no_improvement_streak"
	FieldElapsed             Field = "elapsed_ms"
)

var fields = []Field{FieldIteration, FieldCurrentScore, FieldBestScore, FieldNoChangeStreak, FieldNoImprovementStreak, FieldElapsed}

func ParseField(name string) (Field, error) {
	if !lo.Contains(fields, Field(name)) {
		return "", fmt.Errorf("unknown progress field \"%v\"", name)
	}
	return Field(name), nil
}

// Snapshot carries only the fields the caller asked for
type Snapshot struct {
	Values map[Field]float64
	Final  bool
}

// Progress is the caller's subscription to partial statistics. Snapshots are delivered on the run's goroutine
type Progress struct {
	Callback func(snapshot Snapshot)
	Fields   []Field
	Interval time.Duration // Minimum time between two snapshots, the final one excepted
}

type progressReporter struct {
	progress *Progress
	last     map[Field]float64
	lastSent time.Time
}

func newProgressReporter(progress *Progress) *progressReporter {
	return &progressReporter{progress: progress}
}

// report delivers a snapshot when a requested field changed and the interval elapsed. Final snapshots are always delivered
func (reporter *progressReporter) report(values map[Field]float64, now time.Time, final bool) {
	if reporter.progress == nil || reporter.progress.Callback == nil {
		return
	}

	requested := lo.PickByKeys(values, reporter.progress.Fields)
	changed := reporter.last == nil || !lo.EveryBy(reporter.progress.Fields, func(field Field) bool {
		return reporter.last[field] == requested[field]
	})

	if !final && (!changed || now.Sub(reporter.lastSent) < reporter.progress.Interval) {
		return
	}

	reporter.last = requested
	reporter.lastSent = now
	reporter.progress.Callback(Snapshot{Values: requested, Final: final})
}
