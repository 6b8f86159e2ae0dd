package core

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"sortbench/pkg/sorting"
)

// stepClock advances by the next scripted step on every Now call and stands
// still once the script is exhausted.
type stepClock struct {
	t     time.Time
	steps []time.Duration
	i     int
}

func (c *stepClock) Now() time.Time {
	if c.i < len(c.steps) {
		c.t = c.t.Add(c.steps[c.i])
		c.i++
	}
	return c.t
}

// iterationSteps scripts the eight clock reads of one iteration: begin,
// three start/end pairs and the final read, which adds tail on top of the
// sort times.
func iterationSteps(sel, cnt, ref, tail time.Duration) []time.Duration {
	return []time.Duration{0, 0, sel, 0, cnt, 0, ref, tail}
}

type recordingObserver struct {
	sorts      map[string]int
	iterations int
	failures   []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{sorts: make(map[string]int)}
}

func (o *recordingObserver) ObserveSort(name string, _ time.Duration) { o.sorts[name]++ }
func (o *recordingObserver) ObserveIteration(time.Duration)           { o.iterations++ }
func (o *recordingObserver) ObserveVerificationFailure(name string) {
	o.failures = append(o.failures, name)
}

func quietConfig(size, iterations int) Config {
	cfg := DefaultConfig()
	cfg.Size = size
	cfg.Iterations = iterations
	cfg.PrintProgress = false
	cfg.Seed = 12345
	return cfg
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) <= 1e-12 }

func TestRun_AveragesInjectedTimings(t *testing.T) {
	sel := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 40 * time.Millisecond, 50 * time.Millisecond}
	cnt := []time.Duration{1 * time.Millisecond, 1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 5 * time.Millisecond}
	ref := []time.Duration{4 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond, 9 * time.Millisecond}
	var steps []time.Duration
	for i := range sel {
		steps = append(steps, iterationSteps(sel[i], cnt[i], ref[i], time.Millisecond)...)
	}
	obs := newRecordingObserver()
	r := NewRunner(quietConfig(16, 5), Options{Clock: &stepClock{t: time.Unix(0, 0), steps: steps}, Observer: obs, Diag: &bytes.Buffer{}})
	res := r.Run()

	if res.Completed != 5 || !res.OK() {
		t.Fatalf("completed=%d, want 5", res.Completed)
	}
	mean := func(ds []time.Duration) float64 {
		var s float64
		for _, d := range ds {
			s += d.Seconds()
		}
		return s / float64(len(ds))
	}
	if !almostEqual(res.SelectionSort, mean(sel)) {
		t.Fatalf("selection mean=%v, want %v", res.SelectionSort, mean(sel))
	}
	if !almostEqual(res.CountingSort, mean(cnt)) {
		t.Fatalf("counting mean=%v, want %v", res.CountingSort, mean(cnt))
	}
	if !almostEqual(res.QuickSort, mean(ref)) {
		t.Fatalf("quick mean=%v, want %v", res.QuickSort, mean(ref))
	}
	wantIter := mean(sel) + mean(cnt) + mean(ref) + 0.001
	if !almostEqual(res.IterationTime, wantIter) {
		t.Fatalf("iteration mean=%v, want %v", res.IterationTime, wantIter)
	}
	if obs.iterations != 5 || obs.sorts[sorting.NameSelection] != 5 || obs.sorts[sorting.NameCounting] != 5 || obs.sorts[sorting.NameReference] != 5 {
		t.Fatalf("unexpected observer counts: %+v", obs)
	}
}

func TestRun_VerificationFailureStopsEarly(t *testing.T) {
	calls := 0
	sorters := DefaultSorters(0, 30)
	sorters.Selection = func(a []int) {
		sorting.SelectionSort(a)
		calls++
		if calls == 4 && len(a) > 1 {
			a[0], a[len(a)-1] = a[len(a)-1], a[0]
		}
	}
	var diag bytes.Buffer
	obs := newRecordingObserver()
	cfg := quietConfig(50, 10)
	cfg.CheckResults = true
	res := NewRunner(cfg, Options{Sorters: &sorters, Diag: &diag, Observer: obs}).Run()

	if res.Completed != 3 {
		t.Fatalf("completed=%d, want 3", res.Completed)
	}
	if !res.OK() {
		t.Fatalf("a partial run with completed iterations must be OK")
	}
	if res.Iterations != 10 {
		t.Fatalf("iterations should echo the configured count, got %d", res.Iterations)
	}
	if calls != 4 {
		t.Fatalf("loop should stop right after the failing iteration, selection ran %d times", calls)
	}
	out := diag.String()
	for _, s := range []string{"selection-sort failed:", "\tInput...: [", "\tOutput..: [", "\tExpected: ["} {
		if !strings.Contains(out, s) {
			t.Fatalf("diagnostics missing %q:\n%s", s, out)
		}
	}
	if len(obs.failures) != 1 || obs.failures[0] != sorting.NameSelection {
		t.Fatalf("unexpected failures observed: %v", obs.failures)
	}
	if obs.iterations != 3 {
		t.Fatalf("failed iteration must not be accumulated, observed %d", obs.iterations)
	}
}

func TestRun_BrokenOracleReportedWithoutExpected(t *testing.T) {
	sorters := DefaultSorters(0, 30)
	sorters.Reference = func(a []int) {
		sorting.ReferenceSort(a)
		if len(a) > 1 {
			a[0], a[1] = 1, 0
		}
	}
	var diag bytes.Buffer
	cfg := quietConfig(20, 3)
	cfg.CheckResults = true
	res := NewRunner(cfg, Options{Sorters: &sorters, Diag: &diag}).Run()
	if res.OK() {
		t.Fatalf("expected no completed iterations, got %d", res.Completed)
	}
	out := diag.String()
	if !strings.Contains(out, "quick-sort failed:") {
		t.Fatalf("expected oracle failure, got:\n%s", out)
	}
	if strings.Contains(out, "Expected") {
		t.Fatalf("oracle failure has no expected output:\n%s", out)
	}
}

func TestRun_ImmediateFailureYieldsNoResult(t *testing.T) {
	sorters := DefaultSorters(0, 30)
	sorters.Counting = func(a []int) {
		sorting.CountingSort(a, 0, 30)
		for i := range a {
			a[i] = -1
		}
	}
	cfg := quietConfig(8, 4)
	cfg.CheckResults = true
	var diag bytes.Buffer
	res := NewRunner(cfg, Options{Sorters: &sorters, Diag: &diag}).Run()
	if res.OK() || res.Completed != 0 {
		t.Fatalf("expected no completed iterations, got %d", res.Completed)
	}
	if res.SelectionSort != 0 || res.CountingSort != 0 || res.QuickSort != 0 {
		t.Fatalf("zero-iteration result must not carry timings: %+v", res)
	}
	if !strings.Contains(diag.String(), "counting-sort failed:") {
		t.Fatalf("missing counting sort report:\n%s", diag.String())
	}
}

func TestRun_ConcreteScenario(t *testing.T) {
	cfg := quietConfig(100, 10)
	cfg.MinValue, cfg.MaxValue = 0, 30
	cfg.CheckResults = true
	var diag bytes.Buffer
	obs := newRecordingObserver()
	res := NewRunner(cfg, Options{Diag: &diag, Observer: obs}).Run()
	if res.Completed != 10 {
		t.Fatalf("completed=%d, want 10\n%s", res.Completed, diag.String())
	}
	if len(obs.failures) != 0 {
		t.Fatalf("unexpected verification failures: %v", obs.failures)
	}
	for _, v := range []float64{res.SelectionSort, res.CountingSort, res.QuickSort} {
		if v < 0 {
			t.Fatalf("negative timing in %+v", res)
		}
	}

	var out bytes.Buffer
	if err := res.WriteJSON(&out); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	line := out.String()
	if strings.Count(line, "\n") != 1 || !strings.HasSuffix(line, "\n") {
		t.Fatalf("expected a single line, got %q", line)
	}
	var m map[string]any
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", line, err)
	}
	if m["size"] != float64(100) || m["iterations"] != float64(10) {
		t.Fatalf("unexpected size/iterations: %v", m)
	}
	for _, k := range []string{"selection-sort", "counting-sort", "quick-sort"} {
		if _, ok := m[k].(float64); !ok {
			t.Fatalf("missing float field %q in %v", k, m)
		}
	}
	if len(m) != 5 {
		t.Fatalf("unexpected extra fields: %v", m)
	}
}

func TestRun_EmptyAndSingleElementArrays(t *testing.T) {
	for _, size := range []int{0, 1} {
		cfg := quietConfig(size, 3)
		cfg.CheckResults = true
		res := NewRunner(cfg, Options{Diag: &bytes.Buffer{}}).Run()
		if res.Completed != 3 {
			t.Fatalf("size=%d: completed=%d, want 3", size, res.Completed)
		}
	}
}

func TestRun_ZeroIterations(t *testing.T) {
	for _, iterations := range []int{0, -3} {
		res := NewRunner(quietConfig(10, iterations), Options{Diag: &bytes.Buffer{}}).Run()
		if res.OK() || res.Completed != 0 {
			t.Fatalf("iterations=%d must not produce a result: %+v", iterations, res)
		}
		if res.Iterations != iterations {
			t.Fatalf("iterations=%d: echoed %d", iterations, res.Iterations)
		}
	}
}

func TestRun_BuffersAllocatedOncePerRun(t *testing.T) {
	allocs := func(iterations int) float64 {
		cfg := quietConfig(64, iterations)
		cfg.CheckResults = true
		return testing.AllocsPerRun(20, func() {
			NewRunner(cfg, Options{Diag: io.Discard, Width: -1}).Run()
		})
	}
	one, many := allocs(1), allocs(50)
	if many > one {
		t.Fatalf("allocations grow with iterations: %v at 1, %v at 50", one, many)
	}
}

func TestDefaultSorters_BindsEveryAlgorithm(t *testing.T) {
	s := DefaultSorters(-3, 4)
	for name, sort := range map[string]func([]int){
		sorting.NameSelection: s.Selection,
		sorting.NameCounting:  s.Counting,
		sorting.NameReference: s.Reference,
	} {
		if sort == nil {
			t.Fatalf("%s not bound", name)
		}
		a := []int{4, -3, 0, 2, -1}
		sort(a)
		if !sorting.IsSorted(a) {
			t.Fatalf("%s: %v not sorted", name, a)
		}
	}
}

func TestRun_SameSeedSameInput(t *testing.T) {
	capture := func() []int {
		var got []int
		sorters := DefaultSorters(0, 30)
		sorters.Reference = func(a []int) {
			got = append(got, a...)
			sorting.ReferenceSort(a)
		}
		NewRunner(quietConfig(32, 2), Options{Sorters: &sorters, Diag: &bytes.Buffer{}}).Run()
		return got
	}
	a, b := capture(), capture()
	if len(a) != 64 || !sorting.Equal(a, b) {
		t.Fatalf("same seed should generate the same input\n%v\n%v", a, b)
	}
	for _, v := range a {
		if v < 0 || v > 30 {
			t.Fatalf("generated value %d outside [0, 30]", v)
		}
	}
}

func TestRun_ProgressLines(t *testing.T) {
	cfg := quietConfig(4, 2)
	cfg.PrintProgress = true
	var diag bytes.Buffer
	NewRunner(cfg, Options{Diag: &diag, Width: -1}).Run()
	out := diag.String()
	if !strings.Contains(out, "\rProgress: 0.00% - Remaining: 0 seconds") {
		t.Fatalf("missing first progress line: %q", out)
	}
	if !strings.Contains(out, "\rProgress: 50.00% - Remaining:") {
		t.Fatalf("missing second progress line: %q", out)
	}
	if !strings.Contains(out, "\rProgress: 100.00% - Remaining: 0.00s") || !strings.HasSuffix(out, "\n") {
		t.Fatalf("missing final progress line: %q", out)
	}
}
