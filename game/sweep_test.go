package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/telemetry"
)

func smallSweep(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig(t)
	cfg.Sweep = config.SweepConfig{ReproStart: 5, ReproEnd: 7, PredStart: 20, PredEnd: 23, Step: 1}
	return cfg
}

func TestSweepJobsOrder(t *testing.T) {
	jobs := sweepJobs(config.SweepConfig{ReproStart: 10, ReproEnd: 12, PredStart: 25, PredEnd: 27, Step: 1})
	want := []sweepJob{{0, 10, 25}, {1, 10, 26}, {2, 11, 25}, {3, 11, 26}}
	if len(jobs) != len(want) {
		t.Fatalf("got %d jobs, want %d", len(jobs), len(want))
	}
	for i := range want {
		if jobs[i] != want[i] {
			t.Errorf("job %d = %+v, want %+v", i, jobs[i], want[i])
		}
	}
}

func runSweepToFile(t *testing.T, cfg *config.Config, workers int) (string, SweepReport) {
	t.Helper()
	dir := t.TempDir()
	om, err := telemetry.NewOutputManager(telemetry.OutputPaths{
		Results:    filepath.Join(dir, "results.csv"),
		Trajectory: filepath.Join(dir, "trajectory.csv"),
	})
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	store, err := telemetry.NewStore(context.Background(), "csv", om, "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	report, err := Sweep(context.Background(), cfg, SweepOptions{Snails: 10, Duration: 20, BaseSeed: 7, Workers: workers}, store, om)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(om.ResultsPath())
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	return string(data), report
}

func TestSweepWritesRowsInOrder(t *testing.T) {
	cfg := smallSweep(t)
	out, report := runSweepToFile(t, cfg, 3)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != telemetry.ResultsHeader {
		t.Errorf("header = %q", lines[0])
	}
	rows := lines[1:]
	if len(rows) != 6 || report.Runs != 6 {
		t.Fatalf("got %d rows and %d runs, want 6", len(rows), report.Runs)
	}

	wantPrefixes := []string{"20,5,", "21,5,", "22,5,", "20,6,", "21,6,", "22,6,"}
	for i, p := range wantPrefixes {
		if !strings.HasPrefix(rows[i], p) {
			t.Errorf("row %d = %q, want prefix %q", i, rows[i], p)
		}
	}
	if report.RunID == "" {
		t.Error("sweep did not assign a run ID")
	}
	if report.Best.Snails < 1 {
		t.Errorf("best = %+v", report.Best)
	}
}

func TestSweepIndependentOfWorkerCount(t *testing.T) {
	cfg := smallSweep(t)
	serial, _ := runSweepToFile(t, cfg, 1)
	parallel, _ := runSweepToFile(t, cfg, 4)
	if serial != parallel {
		t.Errorf("serial and parallel sweeps differ:\n%s\nvs\n%s", serial, parallel)
	}
}

// failingStore fails on the n-th save.
type failingStore struct {
	failAt int
	saved  []telemetry.ResultRow
}

func (s *failingStore) SaveResult(_ context.Context, rec telemetry.ResultRecord) error {
	if len(s.saved) == s.failAt {
		return errors.New("disk full")
	}
	s.saved = append(s.saved, rec.Row)
	return nil
}

func (s *failingStore) Close() error { return nil }

func TestSweepAbortsOnFirstFailure(t *testing.T) {
	store := &failingStore{failAt: 2}
	report, err := Sweep(context.Background(), smallSweep(t), SweepOptions{Snails: 5, Duration: 5, Workers: 2}, store, nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Sweep() = %v, want disk full", err)
	}
	if len(store.saved) != 2 || report.Runs != 2 {
		t.Errorf("saved %d rows, %d runs; want 2 before the failure", len(store.saved), report.Runs)
	}
}

func TestSweepWritesNoResultRowWhenPositionsFail(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("needs /dev/full to force a write error")
	}
	om, err := telemetry.NewOutputManager(telemetry.OutputPaths{
		Results:   filepath.Join(t.TempDir(), "results.csv"),
		Positions: "/dev/full",
	})
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	store := &failingStore{failAt: -1}
	report, err := Sweep(context.Background(), smallSweep(t), SweepOptions{Snails: 5, Duration: 5}, store, om)
	if err == nil {
		t.Fatal("Sweep succeeded with an unwritable positions file")
	}
	if len(store.saved) != 0 || report.Runs != 0 {
		t.Errorf("saved %d rows, %d runs; want none for the failed combination", len(store.saved), report.Runs)
	}
}

func TestSweepRejectsEmptyRange(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sweep.ReproEnd = cfg.Sweep.ReproStart
	if _, err := Sweep(context.Background(), cfg, SweepOptions{Snails: 1, Duration: 1}, &failingStore{failAt: -1}, nil); !errors.Is(err, ErrBadParams) {
		t.Errorf("Sweep() = %v, want ErrBadParams", err)
	}
}

func TestRunParallelAppliesInOrder(t *testing.T) {
	jobs := make([]sweepJob, 20)
	for i := range jobs {
		jobs[i] = sweepJob{index: i}
	}

	var applied []int
	err := runParallel(context.Background(), jobs, 4,
		func(j sweepJob) (*Result, error) {
			// Later jobs finish first
			time.Sleep(time.Duration(20-j.index) * 100 * time.Microsecond)
			return &Result{}, nil
		},
		func(j sweepJob, _ *Result) error {
			applied = append(applied, j.index)
			return nil
		},
	)
	if err != nil {
		t.Fatalf("runParallel: %v", err)
	}
	for i, idx := range applied {
		if idx != i {
			t.Fatalf("applied order = %v", applied)
		}
	}
	if len(applied) != len(jobs) {
		t.Errorf("applied %d jobs, want %d", len(applied), len(jobs))
	}
}

func TestRunParallelStopsAtComputeError(t *testing.T) {
	jobs := make([]sweepJob, 10)
	for i := range jobs {
		jobs[i] = sweepJob{index: i}
	}
	boom := errors.New("boom")

	var applied []int
	err := runParallel(context.Background(), jobs, 3,
		func(j sweepJob) (*Result, error) {
			if j.index == 4 {
				return nil, boom
			}
			return &Result{}, nil
		},
		func(j sweepJob, _ *Result) error {
			applied = append(applied, j.index)
			return nil
		},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("runParallel() = %v, want boom", err)
	}
	if len(applied) != 4 {
		t.Errorf("applied = %v, want jobs 0..3", applied)
	}
}

func TestRunParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	jobs := []sweepJob{{index: 0}, {index: 1}}

	err := runParallel(ctx, jobs, 1,
		func(sweepJob) (*Result, error) { return &Result{}, nil },
		func(sweepJob, *Result) error { return nil },
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("runParallel() = %v, want nil or context.Canceled", err)
	}
}

func TestRunParallelSerialInterleaves(t *testing.T) {
	jobs := []sweepJob{{index: 0}, {index: 1}, {index: 2}}

	var trace []string
	for _, workers := range []int{0, 1} {
		trace = trace[:0]
		err := runParallel(context.Background(), jobs, workers,
			func(j sweepJob) (*Result, error) {
				trace = append(trace, "c"+string(rune('0'+j.index)))
				return &Result{}, nil
			},
			func(j sweepJob, _ *Result) error {
				trace = append(trace, "a"+string(rune('0'+j.index)))
				return nil
			},
		)
		if err != nil {
			t.Fatalf("runParallel(workers=%d): %v", workers, err)
		}
		if got := strings.Join(trace, ","); got != "c0,a0,c1,a1,c2,a2" {
			t.Errorf("workers=%d trace = %s, want each job applied before the next is computed", workers, got)
		}
	}
}

func TestRunParallelBoundsInFlight(t *testing.T) {
	const workers = 2
	jobs := make([]sweepJob, 30)
	for i := range jobs {
		jobs[i] = sweepJob{index: i}
	}

	var started, applied, peak atomic.Int64
	err := runParallel(context.Background(), jobs, workers,
		func(j sweepJob) (*Result, error) {
			n := started.Add(1) - applied.Load()
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			if j.index%10 == 0 {
				// A slow job holds back everything queued behind it
				time.Sleep(2 * time.Millisecond)
			}
			return &Result{}, nil
		},
		func(sweepJob, *Result) error {
			applied.Add(1)
			return nil
		},
	)
	if err != nil {
		t.Fatalf("runParallel: %v", err)
	}
	if got := peak.Load(); got > 2*workers {
		t.Errorf("%d jobs in flight, want at most %d", got, 2*workers)
	}
	if applied.Load() != int64(len(jobs)) {
		t.Errorf("applied %d jobs, want %d", applied.Load(), len(jobs))
	}
}
