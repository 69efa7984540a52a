package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/centsible/centsible_app/internal/platform/config"
	"github.com/robfig/cron/v3"
)

// scanBatchLimit caps how many due obligations one tick pulls. A backlog
// bigger than this simply spills into the next tick.
const scanBatchLimit = 100

// DueScanner periodically finds due obligations and fans them out to a
// bounded pool of workers. Each worker claims an obligation before touching
// it, so overlapping scans (or a second process) never double-execute: losing
// the claim race just means someone else has it.
type DueScanner struct {
	obRepo   portsrepo.ObligationScheduler
	executor portssvc.ObligationExecutorSvc
	logger   *slog.Logger

	scanInterval time.Duration
	workerCount  int
	claimLease   time.Duration
	execTimeout  time.Duration

	cronEngine *cron.Cron
	now        func() time.Time
}

func NewDueScanner(cfg *config.Config, obRepo portsrepo.ObligationScheduler, executor portssvc.ObligationExecutorSvc, logger *slog.Logger) *DueScanner {
	scannerLogger := logger.With(slog.String("component", "due_scanner"))
	return &DueScanner{
		obRepo:       obRepo,
		executor:     executor,
		logger:       scannerLogger,
		scanInterval: cfg.SchedulerScanInterval,
		workerCount:  cfg.SchedulerWorkerCount,
		claimLease:   cfg.SchedulerClaimLease,
		execTimeout:  cfg.SchedulerExecutionTimeout,
		cronEngine: cron.New(
			cron.WithChain(cron.DelayIfStillRunning(cronLogger{scannerLogger})),
		),
		now: time.Now,
	}
}

// Start registers the periodic scan and starts the cron engine.
func (s *DueScanner) Start() error {
	spec := fmt.Sprintf("@every %s", s.scanInterval)
	if _, err := s.cronEngine.AddFunc(spec, s.runScan); err != nil {
		return fmt.Errorf("failed to register scan job: %w", err)
	}
	s.cronEngine.Start()
	s.logger.Info("Due scanner started",
		slog.Duration("scan_interval", s.scanInterval),
		slog.Int("worker_count", s.workerCount),
		slog.Duration("claim_lease", s.claimLease),
	)
	return nil
}

// Stop halts scheduling and waits for any in-flight scan to finish.
func (s *DueScanner) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Due scanner stopped")
}

// scanTally accumulates per-tick outcome counts across workers.
type scanTally struct {
	mu        sync.Mutex
	executed  int
	skipped   int
	completed int
	failed    int
	flagged   int
	lostRace  int
}

func (t *scanTally) add(outcome portssvc.ExecutionOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch outcome {
	case portssvc.OutcomeExecuted:
		t.executed++
	case portssvc.OutcomeSkipped:
		t.skipped++
	case portssvc.OutcomeCompleted:
		t.completed++
	case portssvc.OutcomeFailed:
		t.failed++
	case portssvc.OutcomeFlagged:
		t.flagged++
	}
}

func (t *scanTally) addLostRace() {
	t.mu.Lock()
	t.lostRace++
	t.mu.Unlock()
}

// runScan performs one tick: one due query, then a bounded fan-out. One
// misbehaving obligation only costs its own worker iteration; the rest of the
// batch proceeds.
func (s *DueScanner) runScan() {
	start := s.now()
	ctx := middleware.WithLogger(context.Background(), s.logger)

	due, err := s.obRepo.FindDue(ctx, start, scanBatchLimit)
	if err != nil {
		s.logger.Error("Due scan query failed", slog.String("error", err.Error()))
		return
	}
	if len(due) == 0 {
		return
	}

	s.logger.Info("Due scan found obligations", slog.Int("count", len(due)))

	tally := &scanTally{}
	work := make(chan domain.Obligation)
	var wg sync.WaitGroup

	workers := s.workerCount
	if workers > len(due) {
		workers = len(due)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ob := range work {
				s.processObligation(ctx, ob, tally)
			}
		}()
	}
	for _, ob := range due {
		work <- ob
	}
	close(work)
	wg.Wait()

	s.logger.Info("Due scan completed",
		slog.Duration("elapsed", s.now().Sub(start)),
		slog.Int("executed", tally.executed),
		slog.Int("skipped", tally.skipped),
		slog.Int("completed", tally.completed),
		slog.Int("failed", tally.failed),
		slog.Int("flagged", tally.flagged),
		slog.Int("lost_race", tally.lostRace),
	)
}

// processObligation claims and executes one obligation, looping while it is
// still due so a backlog (downtime catch-up) drains one occurrence at a time
// under a fresh claim each round.
func (s *DueScanner) processObligation(ctx context.Context, ob domain.Obligation, tally *scanTally) {
	logger := s.logger.With(slog.String("obligation_id", ob.ObligationID))

	for {
		claimed, err := s.obRepo.Claim(ctx, ob.ObligationID, s.now(), s.claimLease)
		if err != nil {
			// Losing the claim race is routine: another worker, an
			// overlapping scan, or a user edit got there first.
			tally.addLostRace()
			logger.Debug("Claim not acquired", slog.String("reason", err.Error()))
			return
		}

		execCtx, cancel := context.WithTimeout(ctx, s.execTimeout)
		result, err := s.executor.ExecuteDue(execCtx, *claimed)
		cancel()

		tally.add(result.Outcome)
		if err != nil {
			// The executor has already released or abandoned the claim.
			logger.Warn("Obligation execution failed",
				slog.String("outcome", string(result.Outcome)),
				slog.String("error", err.Error()),
			)
			return
		}
		if result.Outcome == portssvc.OutcomeFlagged || result.Outcome == portssvc.OutcomeCompleted {
			return
		}
		if result.Status != domain.ObligationActive {
			return
		}
		// Still behind? Go around again for the next occurrence.
		if result.NextExecution.After(s.now()) {
			return
		}
	}
}

// cronLogger adapts slog to the logger interface the cron library's job
// wrappers expect.
type cronLogger struct {
	logger *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Info(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
