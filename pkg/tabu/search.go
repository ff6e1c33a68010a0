package tabu

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/assignment/pkg/model"
	"github.com/limaJavier/assignment/pkg/neighborhood"
	"github.com/limaJavier/assignment/pkg/objective"
	"go.uber.org/zap"
)

type Reason string

const (
	ReasonStopCriterion Reason = "stop_criterion"
	ReasonInterrupted   Reason = "interrupted"
	ReasonNoCandidates  Reason = "no_candidates"
	ReasonAborted       Reason = "aborted"
)

type Result struct {
	RunID      uuid.UUID       `json:"runId"`
	Best       *model.Solution `json:"best"`
	Statistics Statistics      `json:"statistics"`
	Reason     Reason          `json:"reason"`
	Criterion  StopKind        `json:"criterion,omitempty"` // Set when a stop criterion ended the run
}

type Searcher interface {
	// Run searches from the input's assignment until a stop criterion holds, the run is interrupted or it aborts.
	// An aborted run returns the best solution found so far together with the evaluation error
	Run(ctx context.Context, input model.ModelInput) (*Result, error)
}

type searcherStandard struct {
	config   Config
	logger   *zap.Logger
	function func(solution *model.Solution) objective.Evaluation
}

func NewSearcher(config Config) Searcher {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &searcherStandard{
		config:   config,
		logger:   logger,
		function: config.function().Evaluate,
	}
}

type scoredCandidate struct {
	candidate   neighborhood.Candidate
	solution    *model.Solution
	evaluation  objective.Evaluation
	fingerprint uint64
}

// searchRun holds the state a single run owns
type searchRun struct {
	config      Config
	logger      *zap.Logger
	space       *model.Space
	memory      Memory
	aspirations []Aspiration
	evaluator   evaluator
	reporter    *progressReporter
	statistics  Statistics

	current       *model.Solution
	best          *model.Solution
	bestFeasible  bool
	older         *model.Solution // Solution held two iterations before the current one
	noChange      int
	noImprovement int
	stall         int
	start         time.Time
}

func (searcher *searcherStandard) Run(ctx context.Context, input model.ModelInput) (*Result, error) {
	//** Pre-flight
	if err := searcher.config.Validate(); err != nil {
		return nil, err
	}

	space, err := model.NewSpace(input)
	if err != nil {
		return nil, dataIntegrityError("input must reference known and unique entities", err)
	}
	initial, err := space.NewSolution(input.Assignment)
	if err != nil {
		return nil, dataIntegrityError("assignment must reference known teachers and courses", err)
	}

	//** Initialize
	runID := uuid.New()
	run := &searchRun{
		config:      searcher.config,
		logger:      searcher.logger.With(zap.String("run_id", runID.String())),
		space:       space,
		memory:      newMemory(searcher.config.Memory),
		aspirations: slices.Clone(searcher.config.Aspirations), // Criteria state is never shared between runs
		evaluator:   evaluator{function: searcher.function},
		reporter:    newProgressReporter(searcher.config.Progress),
		statistics:  newStatistics(),
		current:     initial,
		start:       time.Now(),
	}
	evaluation, err := run.evaluator.evaluate(initial)
	if err != nil {
		return nil, err
	}
	initial.Score = evaluation.Score
	run.best = initial.Clone()
	run.bestFeasible = evaluation.Feasible
	for i := range run.aspirations {
		run.aspirations[i].Reset(initial.Score)
	}
	run.memory.Record(neighborhood.Candidate{}, initial.Fingerprint())

	run.logger.Info("search started",
		zap.Uint64("teachers", space.TeacherCount()),
		zap.Uint64("courses", space.CourseCount()),
		zap.String("memory", string(searcher.config.Memory.Mode)),
		zap.Float64("initial_score", initial.Score),
	)

	//** Iterate
	reason, criterion, err := run.iterate(ctx)
	if err != nil {
		reason = ReasonAborted
		run.logger.Error("search aborted", zap.Error(err))
	}

	//** Finalize
	run.statistics.summarize(run.best, run.config.Constraints, run.bestFeasible)
	run.reporter.report(run.values(), time.Now(), true)

	run.logger.Info("search finished",
		zap.String("reason", string(reason)),
		zap.Int("iterations", run.statistics.Iterations),
		zap.Float64("best_score", run.best.Score),
		zap.Bool("feasible", run.bestFeasible),
		zap.Duration("elapsed", time.Since(run.start)),
	)

	return &Result{
		RunID:      runID,
		Best:       run.best,
		Statistics: run.statistics,
		Reason:     reason,
		Criterion:  criterion,
	}, err
}

func (run *searchRun) interrupted(ctx context.Context) bool {
	return ctx.Err() != nil || (run.config.Interrupt != nil && run.config.Interrupt())
}

func (run *searchRun) iterate(ctx context.Context) (Reason, StopKind, error) {
	direction := run.config.Direction

	for iteration := 1; ; iteration++ {
		if run.interrupted(ctx) {
			run.statistics.Interrupted = true
			return ReasonInterrupted, "", nil
		}
		iterationStart := time.Now()

		//** Generate and score the neighborhood
		var admissible, overall *scoredCandidate
		candidates := 0
		for candidate := range neighborhood.Generate(run.current, run.config.Strategies) {
			candidates++

			scored, err := run.score(candidate)
			if err != nil {
				return ReasonAborted, "", err
			}

			// Strict comparisons keep the first generated among equals
			if overall == nil || direction.Better(scored.solution.Score, overall.solution.Score) {
				overall = scored
			}
			if run.memory.IsTabu(candidate, scored.fingerprint) && !aspirated(run.aspirations, scored.solution.Score, run.best.Score, direction) {
				continue
			}
			if admissible == nil || direction.Better(scored.solution.Score, admissible.solution.Score) {
				admissible = scored
			}
		}

		if candidates == 0 {
			run.logger.Warn("empty neighborhood", zap.Int("iteration", iteration))
			return ReasonNoCandidates, "", nil
		}

		//** Select
		chosen := admissible
		if chosen == nil {
			run.stall++
			if run.stall >= run.config.StallLimit {
				chosen = overall
				run.logger.Warn("every candidate is tabu, forcing the best one",
					zap.Int("iteration", iteration),
					zap.Int("stall", run.stall),
				)
			} else {
				run.logger.Warn("every candidate is tabu, stalling", zap.Int("iteration", iteration), zap.Int("stall", run.stall))
			}
		}

		//** Apply and remember
		run.memory.Decay()
		previous := run.current
		changed := false
		if chosen != nil {
			run.stall = 0
			run.current = chosen.solution
			run.memory.Record(chosen.candidate, chosen.fingerprint)
			changed = run.older == nil || !run.current.Equal(run.older)
		}
		run.older = previous

		//** Best known
		if chosen != nil && direction.Better(run.current.Score, run.best.Score) {
			run.best = run.current.Clone()
			run.bestFeasible = chosen.evaluation.Feasible
			run.noImprovement = 0
			run.logger.Debug("best improved", zap.Int("iteration", iteration), zap.Float64("score", run.best.Score))
		} else {
			run.noImprovement++
		}
		if changed {
			run.noChange = 0
		} else {
			run.noChange++
		}
		for i := range run.aspirations {
			run.aspirations[i].Observe(run.best.Score)
		}

		//** Statistics
		run.statistics.Iterations = iteration
		run.statistics.TimePerIteration = append(run.statistics.TimePerIteration, Sample{
			Iteration: iteration,
			Value:     float64(time.Since(iterationStart).Microseconds()) / 1000,
		})
		run.statistics.ScorePerIteration = append(run.statistics.ScorePerIteration, Sample{
			Iteration: iteration,
			Value:     run.current.Score,
		})
		run.reporter.report(run.values(), time.Now(), false)

		//** Stop
		state := IterationState{
			Iteration:           iteration,
			NoChangeStreak:      run.noChange,
			NoImprovementStreak: run.noImprovement,
			Elapsed:             time.Since(run.start),
		}
		if kind, ok := shouldStop(run.config.StopCriteria, state); ok {
			return ReasonStopCriterion, kind, nil
		}
	}
}

func (run *searchRun) score(candidate neighborhood.Candidate) (*scoredCandidate, error) {
	next := run.current.Clone()
	if err := next.Apply(candidate.Moves...); err != nil {
		return nil, evaluationError("generated moves must apply to the current solution", err)
	}

	evaluation, err := run.evaluator.evaluate(next)
	if err != nil {
		return nil, err
	}
	next.Score = evaluation.Score

	return &scoredCandidate{
		candidate:   candidate,
		solution:    next,
		evaluation:  evaluation,
		fingerprint: next.Fingerprint(),
	}, nil
}

func (run *searchRun) values() map[Field]float64 {
	return map[Field]float64{
		FieldIteration:           float64(run.statistics.Iterations),
		FieldCurrentScore:        run.current.Score,
		FieldBestScore:           run.best.Score,
		FieldNoChangeStreak:      float64(run.noChange),
		FieldNoImprovementStreak: float64(run.noImprovement),
		FieldElapsed:             float64(time.Since(run.start).Milliseconds()),
	}
}
