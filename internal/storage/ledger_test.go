package storage

import (
	"sync"
	"testing"
	"time"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerEmpty(t *testing.T) {
	l := openLedger(t)

	best, err := l.Best()
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Best() on empty ledger = %v, expected 0", best)
	}

	runs, err := l.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	stats, err := l.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("Stats() on empty ledger = %+v", stats)
	}
}

func TestLedgerRecordAndQuery(t *testing.T) {
	l := openLedger(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	records := []RunRecord{
		{Player: "alice", Score: 2, Ticks: 300, PipesPassed: 4, Cause: "pipe", EndedAt: base},
		{Player: "bob", Score: 5.5, Ticks: 900, PipesPassed: 11, Cause: "floor", EndedAt: base.Add(time.Minute)},
		{Player: "alice", Score: 0, Ticks: 30, Cause: "floor", EndedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		if _, err := l.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	recent, err := l.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 0 || recent[1].Score != 5.5 {
		t.Fatalf("RecentRuns(2) = %+v, expected newest first", recent)
	}
	if !recent[1].EndedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("EndedAt = %v, expected %v", recent[1].EndedAt, base.Add(time.Minute))
	}
	if recent[1].Player != "bob" || recent[1].Ticks != 900 || recent[1].PipesPassed != 11 {
		t.Errorf("fields not preserved: %+v", recent[1])
	}

	top, err := l.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 5.5 || top[1].Score != 2 || top[2].Score != 0 {
		t.Errorf("TopRuns() not sorted by score: %+v", top)
	}

	best, err := l.Best()
	if err != nil || best != 5.5 {
		t.Errorf("Best() = %v, %v; expected 5.5", best, err)
	}

	stats, err := l.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := Stats{Runs: 3, Best: 5.5, Average: 7.5 / 3, TotalPipes: 15, TotalTicks: 1230, FloorDeaths: 2, PipeDeaths: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, expected %+v", stats, want)
	}
}

func TestLedgerDefaultsEndedAt(t *testing.T) {
	l := openLedger(t)
	before := time.Now()

	if _, err := l.RecordRun(RunRecord{Score: 1}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	runs, err := l.RecentRuns(1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("RecentRuns() = %v, %v", runs, err)
	}
	if runs[0].EndedAt.Before(before) {
		t.Errorf("EndedAt = %v should default to now", runs[0].EndedAt)
	}
}

func TestLedgersAreIndependent(t *testing.T) {
	a := openLedger(t)
	b := openLedger(t)

	if _, err := a.RecordRun(RunRecord{Score: 3}); err != nil {
		t.Fatal(err)
	}
	best, err := b.Best()
	if err != nil {
		t.Fatal(err)
	}
	if best != 0 {
		t.Errorf("in-memory ledgers must not share data, got best %v", best)
	}
}

func TestLedgerConcurrentRecords(t *testing.T) {
	l := openLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := l.RecordRun(RunRecord{Score: float64(i)}); err != nil {
				t.Errorf("RecordRun() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	stats, err := l.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 8 || stats.Best != 7 {
		t.Errorf("Stats() = %+v, expected 8 runs with best 7", stats)
	}
}
