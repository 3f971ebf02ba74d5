package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_BurstCommitsOnce(t *testing.T) {
	var mu sync.Mutex
	var commits []string

	d := New(30*time.Millisecond, func(v string, seq uint64) {
		mu.Lock()
		commits = append(commits, v)
		mu.Unlock()
	})
	defer d.Stop()

	for _, v := range []string{"c", "ca", "caf", "cafe"} {
		d.Set(v)
		time.Sleep(5 * time.Millisecond) // well inside the quiet window
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(commits) != 1 {
		t.Fatalf("expected exactly 1 commit, got %d: %v", len(commits), commits)
	}
	if commits[0] != "cafe" {
		t.Errorf("expected last value committed, got %q", commits[0])
	}
}

func TestDebouncer_SeparateBurstsCommitSeparately(t *testing.T) {
	var count atomic.Int32

	d := New(20*time.Millisecond, func(v string, seq uint64) {
		count.Add(1)
	})
	defer d.Stop()

	d.Set("latte")
	time.Sleep(60 * time.Millisecond)
	d.Set("mocha")
	time.Sleep(60 * time.Millisecond)

	if got := count.Load(); got != 2 {
		t.Errorf("expected 2 commits, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var count atomic.Int32

	d := New(30*time.Millisecond, func(v string, seq uint64) {
		count.Add(1)
	})

	d.Set("espresso")
	d.Stop()
	time.Sleep(80 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected no commits after Stop, got %d", got)
	}

	// Sets after Stop are ignored.
	d.Set("ignored")
	time.Sleep(80 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Errorf("expected Set after Stop to be ignored, got %d commits", got)
	}
}

func TestDebouncer_SequenceIsMonotonic(t *testing.T) {
	var mu sync.Mutex
	var seqs []uint64

	d := New(10*time.Millisecond, func(v int, seq uint64) {
		mu.Lock()
		seqs = append(seqs, seq)
		mu.Unlock()
	})
	defer d.Stop()

	for i := 0; i < 3; i++ {
		d.Set(i)
		time.Sleep(40 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Fatalf("sequence not increasing: %v", seqs)
		}
	}
}

func TestSearch_MinLengthGateClearsInstead(t *testing.T) {
	var commits atomic.Int32
	var clears atomic.Int32

	s := NewSearch(20*time.Millisecond, 3,
		func(q string, seq uint64) { commits.Add(1) },
		func() { clears.Add(1) },
	)
	defer s.Stop()

	s.Input("c")
	s.Input("ca")
	time.Sleep(60 * time.Millisecond)

	if got := commits.Load(); got != 0 {
		t.Errorf("short inputs must not commit, got %d commits", got)
	}
	if got := clears.Load(); got != 2 {
		t.Errorf("expected 2 clear calls, got %d", got)
	}
}

func TestSearch_LongEnoughQueryCommits(t *testing.T) {
	var mu sync.Mutex
	var got string

	s := NewSearch(20*time.Millisecond, 3,
		func(q string, seq uint64) {
			mu.Lock()
			got = q
			mu.Unlock()
		},
		nil,
	)
	defer s.Stop()

	s.Input("ca")
	s.Input("caf")
	s.Input("café sol")
	time.Sleep(70 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if got != "café sol" {
		t.Errorf("expected committed query %q, got %q", "café sol", got)
	}
}

func TestSearch_ShortInputCancelsPendingCommit(t *testing.T) {
	var commits atomic.Int32

	s := NewSearch(30*time.Millisecond, 2,
		func(q string, seq uint64) { commits.Add(1) },
		nil,
	)
	defer s.Stop()

	s.Input("mocha") // would commit...
	s.Input("m")     // ...but the user deleted back below the gate
	time.Sleep(80 * time.Millisecond)

	if got := commits.Load(); got != 0 {
		t.Errorf("expected pending commit to be cancelled, got %d", got)
	}
}
