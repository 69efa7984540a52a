package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSchedulerRepo implements portsrepo.ObligationScheduler with overridable
// behavior per test.
type fakeSchedulerRepo struct {
	mu       sync.Mutex
	claims   int
	releases int

	findDueFn func(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error)
	claimFn   func(ctx context.Context, obligationID string) (*domain.Obligation, error)
}

func (f *fakeSchedulerRepo) FindDue(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error) {
	if f.findDueFn != nil {
		return f.findDueFn(ctx, asOf, limit)
	}
	return nil, nil
}

func (f *fakeSchedulerRepo) Claim(ctx context.Context, obligationID string, now time.Time, lease time.Duration) (*domain.Obligation, error) {
	f.mu.Lock()
	f.claims++
	f.mu.Unlock()
	if f.claimFn != nil {
		return f.claimFn(ctx, obligationID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSchedulerRepo) Release(ctx context.Context, obligationID string) error {
	f.mu.Lock()
	f.releases++
	f.mu.Unlock()
	return nil
}

func (f *fakeSchedulerRepo) Advance(ctx context.Context, params portsrepo.AdvanceParams) error {
	return nil
}

func (f *fakeSchedulerRepo) FlagForReview(ctx context.Context, obligationID string, record domain.ObligationChange) error {
	return nil
}

func (f *fakeSchedulerRepo) claimCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.claims
}

// fakeExecutor implements portssvc.ObligationExecutorSvc.
type fakeExecutor struct {
	mu         sync.Mutex
	calls      int
	inFlight   int
	maxInFlight int

	executeFn func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error)
}

func (f *fakeExecutor) ExecuteDue(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	result, err := f.executeFn(ctx, ob)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return result, err
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testScanner(repo *fakeSchedulerRepo, exec *fakeExecutor, workers int) *DueScanner {
	return &DueScanner{
		obRepo:      repo,
		executor:    exec,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		workerCount: workers,
		claimLease:  time.Minute,
		execTimeout: time.Second,
		now:         time.Now,
	}
}

func dueObligations(n int) []domain.Obligation {
	obs := make([]domain.Obligation, n)
	for i := range obs {
		obs[i] = domain.Obligation{
			ObligationID:  uuid.NewString(),
			UserID:        uuid.NewString(),
			Frequency:     domain.Daily,
			Status:        domain.ObligationActive,
			NextExecution: time.Now().UTC().Add(-time.Hour),
		}
	}
	return obs
}

func doneResult(ob domain.Obligation) portssvc.ExecutionResult {
	return portssvc.ExecutionResult{
		Outcome:       portssvc.OutcomeExecuted,
		Occurrence:    ob.NextExecution,
		Status:        domain.ObligationActive,
		NextExecution: time.Now().UTC().Add(24 * time.Hour),
		EntryCreated:  true,
	}
}

func TestRunScan_BoundedConcurrency(t *testing.T) {
	due := dueObligations(12)

	repo := &fakeSchedulerRepo{
		findDueFn: func(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error) {
			return due, nil
		},
	}
	byID := make(map[string]domain.Obligation, len(due))
	for _, ob := range due {
		byID[ob.ObligationID] = ob
	}
	repo.claimFn = func(ctx context.Context, obligationID string) (*domain.Obligation, error) {
		ob := byID[obligationID]
		return &ob, nil
	}

	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
			time.Sleep(5 * time.Millisecond)
			return doneResult(ob), nil
		},
	}

	scanner := testScanner(repo, exec, 3)
	scanner.runScan()

	assert.Equal(t, len(due), exec.callCount())
	assert.LessOrEqual(t, exec.maxInFlight, 3)
}

func TestRunScan_FailureIsolation(t *testing.T) {
	due := dueObligations(3)
	badID := due[1].ObligationID

	repo := &fakeSchedulerRepo{
		findDueFn: func(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error) {
			return due, nil
		},
	}
	byID := make(map[string]domain.Obligation, len(due))
	for _, ob := range due {
		byID[ob.ObligationID] = ob
	}
	repo.claimFn = func(ctx context.Context, obligationID string) (*domain.Obligation, error) {
		ob := byID[obligationID]
		return &ob, nil
	}

	var mu sync.Mutex
	succeeded := map[string]bool{}
	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
			if ob.ObligationID == badID {
				return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFailed}, errors.New("boom")
			}
			mu.Lock()
			succeeded[ob.ObligationID] = true
			mu.Unlock()
			return doneResult(ob), nil
		},
	}

	scanner := testScanner(repo, exec, 2)
	scanner.runScan()

	// One failing obligation never stops the rest of the batch.
	assert.Equal(t, 3, exec.callCount())
	assert.Len(t, succeeded, 2)
}

func TestProcessObligation_LostClaimRace(t *testing.T) {
	repo := &fakeSchedulerRepo{} // Claim defaults to ErrNotFound
	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
			t.Fatal("executor must not run without a claim")
			return portssvc.ExecutionResult{}, nil
		},
	}

	scanner := testScanner(repo, exec, 1)
	tally := &scanTally{}
	scanner.processObligation(context.Background(), dueObligations(1)[0], tally)

	assert.Equal(t, 0, exec.callCount())
	assert.Equal(t, 1, tally.lostRace)
}

func TestProcessObligation_CatchUpDrainsBacklog(t *testing.T) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Three days behind: each round executes one occurrence under a fresh
	// claim until the cursor passes now.
	state := domain.Obligation{
		ObligationID:  uuid.NewString(),
		UserID:        uuid.NewString(),
		Frequency:     domain.Daily,
		Status:        domain.ObligationActive,
		NextExecution: today.AddDate(0, 0, -2),
	}
	var mu sync.Mutex

	repo := &fakeSchedulerRepo{}
	repo.claimFn = func(ctx context.Context, obligationID string) (*domain.Obligation, error) {
		mu.Lock()
		defer mu.Unlock()
		snapshot := state
		return &snapshot, nil
	}

	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
			mu.Lock()
			defer mu.Unlock()
			next := state.NextExecution.AddDate(0, 0, 1)
			state.NextExecution = next
			state.RepetitionsDone++
			return portssvc.ExecutionResult{
				Outcome:       portssvc.OutcomeExecuted,
				Occurrence:    ob.NextExecution,
				Status:        domain.ObligationActive,
				NextExecution: next,
				EntryCreated:  true,
			}, nil
		},
	}

	scanner := testScanner(repo, exec, 1)
	tally := &scanTally{}
	scanner.processObligation(context.Background(), state, tally)

	// Occurrences at D-2, D-1 and D are all in the past; D+1 is not.
	assert.Equal(t, 3, exec.callCount())
	assert.Equal(t, 3, repo.claimCount())
	assert.Equal(t, 3, tally.executed)
}

func TestProcessObligation_StopsOnFlagged(t *testing.T) {
	ob := dueObligations(1)[0]
	repo := &fakeSchedulerRepo{}
	repo.claimFn = func(ctx context.Context, obligationID string) (*domain.Obligation, error) {
		snapshot := ob
		return &snapshot, nil
	}
	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, o domain.Obligation) (portssvc.ExecutionResult, error) {
			return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFlagged, Status: domain.ObligationActive}, nil
		},
	}

	scanner := testScanner(repo, exec, 1)
	tally := &scanTally{}
	scanner.processObligation(context.Background(), ob, tally)

	assert.Equal(t, 1, exec.callCount())
	assert.Equal(t, 1, tally.flagged)
}

func TestRunScan_EmptyBatchDoesNothing(t *testing.T) {
	repo := &fakeSchedulerRepo{}
	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
			t.Fatal("no work expected")
			return portssvc.ExecutionResult{}, nil
		},
	}

	scanner := testScanner(repo, exec, 4)
	scanner.runScan()

	assert.Equal(t, 0, exec.callCount())
	assert.Equal(t, 0, repo.claimCount())
}

func TestStartStop(t *testing.T) {
	cfg := &config.Config{
		SchedulerScanInterval:     time.Hour,
		SchedulerWorkerCount:      2,
		SchedulerClaimLease:       5 * time.Minute,
		SchedulerExecutionTimeout: 30 * time.Second,
	}
	repo := &fakeSchedulerRepo{}
	exec := &fakeExecutor{
		executeFn: func(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
			return portssvc.ExecutionResult{}, nil
		},
	}

	scanner := NewDueScanner(cfg, repo, exec, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, scanner.Start())
	scanner.Stop()
}
