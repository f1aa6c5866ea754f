package cows

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// -------------------------
// Fakes
// -------------------------

type fakeReader struct {
	mu sync.Mutex

	owned    map[string][]uint64
	ownedErr error

	cows map[uint64]Cow // por número
	uris map[uint64]string

	// falla puntual por número de vaca
	failCow map[uint64]error

	calls atomic.Int64
	delay time.Duration
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		owned:   map[string][]uint64{},
		cows:    map[uint64]Cow{},
		uris:    map[uint64]string{},
		failCow: map[uint64]error{},
	}
}

func (f *fakeReader) add(owner string, c Cow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cows[c.Number] = c
	f.owned[owner] = append(f.owned[owner], c.Number)
}

func (f *fakeReader) CowsByOwner(ctx context.Context, owner string) ([]uint64, error) {
	if f.ownedErr != nil {
		return nil, f.ownedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.owned[owner]...), nil
}

// El índice interno es number-1, como en el contrato.
func (f *fakeReader) IndexByCowNum(ctx context.Context, number uint64) (uint64, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return number - 1, nil
}

func (f *fakeReader) Cow(ctx context.Context, index uint64) (Cow, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	num := index + 1
	if err := f.failCow[num]; err != nil {
		return Cow{}, err
	}
	c, ok := f.cows[num]
	if !ok {
		return Cow{}, errors.New("invalid opcode")
	}
	return c, nil
}

func (f *fakeReader) CowURI(ctx context.Context, number uint64) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uris[number], nil
}

type fakeDisplay struct {
	mu       sync.Mutex
	replaced [][]Cow
}

func (d *fakeDisplay) Replace(cows []Cow) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.replaced = append(d.replaced, append([]Cow(nil), cows...))
}

func (d *fakeDisplay) last() ([]Cow, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.replaced) == 0 {
		return nil, false
	}
	return d.replaced[len(d.replaced)-1], true
}

type fakeStatus struct {
	mu   sync.Mutex
	log  []string
	last string
}

func (s *fakeStatus) push(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, v)
	s.last = v
}

func (s *fakeStatus) Info(text string)    { s.push("info:" + text) }
func (s *fakeStatus) Success(text string) { s.push("success:" + text) }
func (s *fakeStatus) Fail(err error)      { s.push("error:" + err.Error()) }

func (s *fakeStatus) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func numbers(cs []Cow) []uint64 {
	out := make([]uint64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Number)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalNums(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const owner = "0x627306090abaB3A6e1400e9345bC60c78a8BEf57"

// -------------------------
// Tests
// -------------------------

func TestSync_EmptySet_ClearsDisplayWithoutRecordCalls(t *testing.T) {
	reader := newFakeReader()
	display := &fakeDisplay{}
	status := &fakeStatus{}
	s := NewSynchronizer(reader, display, status, SyncOptions{})

	res, err := s.Sync(context.Background(), owner)
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if len(res.Cows) != 0 {
		t.Fatalf("expected no cows, got %d", len(res.Cows))
	}
	got, ok := display.last()
	if !ok || len(got) != 0 {
		t.Fatalf("expected display replaced with empty list, got ok=%v %v", ok, got)
	}
	if reader.calls.Load() != 0 {
		t.Fatalf("expected no per-record calls, got %d", reader.calls.Load())
	}
}

func TestSync_RendersEveryOwnedCow(t *testing.T) {
	reader := newFakeReader()
	birth := time.Unix(1518652800, 0).UTC()
	for i := uint64(1); i <= 5; i++ {
		reader.add(owner, Cow{Number: i, Type: "Holstein", Sex: "female", BirthDate: birth})
	}
	reader.uris[3] = "bafkreiabc"

	display := &fakeDisplay{}
	status := &fakeStatus{}
	s := NewSynchronizer(reader, display, status, SyncOptions{GatewayURL: "https://ipfs.io/", Concurrency: 2})

	res, err := s.Sync(context.Background(), owner)
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}

	got, _ := display.last()
	if !equalNums(numbers(got), []uint64{1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected rendered set %v", numbers(got))
	}
	if len(display.replaced) != 1 {
		t.Fatalf("expected a single atomic replace, got %d", len(display.replaced))
	}

	for _, c := range res.Cows {
		if c.Index != c.Number-1 {
			t.Fatalf("expected index %d for cow %d, got %d", c.Number-1, c.Number, c.Index)
		}
		if c.Number == 3 {
			if c.MediaURL != "https://ipfs.io/ipfs/bafkreiabc" {
				t.Fatalf("unexpected media url %q", c.MediaURL)
			}
		} else if c.MediaURL != "" {
			t.Fatalf("cow %d should have no media, got %q", c.Number, c.MediaURL)
		}
	}
	if status.current() != "" {
		t.Fatalf("expected no status update on clean sync, got %q", status.current())
	}
}

func TestSync_PartialFailure_RendersRestAndReportsError(t *testing.T) {
	reader := newFakeReader()
	for i := uint64(1); i <= 4; i++ {
		reader.add(owner, Cow{Number: i, Type: "Angus"})
	}
	reader.failCow[2] = errors.New("connection refused")

	display := &fakeDisplay{}
	status := &fakeStatus{}
	s := NewSynchronizer(reader, display, status, SyncOptions{})

	res, err := s.Sync(context.Background(), owner)

	var perr *PartialSyncError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PartialSyncError, got %v", err)
	}
	if perr.Failed != 1 || perr.Total != 4 || perr.First.Number != 2 {
		t.Fatalf("unexpected partial error %#v", perr)
	}

	got, _ := display.last()
	if !equalNums(numbers(got), []uint64{1, 3, 4}) {
		t.Fatalf("expected cows 1,3,4 rendered, got %v", numbers(got))
	}
	if len(res.Failures) != 1 {
		t.Fatalf("expected one failure, got %d", len(res.Failures))
	}
	if !strings.HasPrefix(status.current(), "error:") || !strings.Contains(status.current(), "connection refused") {
		t.Fatalf("expected raw error on status, got %q", status.current())
	}
}

func TestSync_OwnedQueryFails_DisplayUntouched(t *testing.T) {
	reader := newFakeReader()
	reader.ownedErr = errors.New("Invalid JSON RPC response: \"\"")

	display := &fakeDisplay{}
	status := &fakeStatus{}
	s := NewSynchronizer(reader, display, status, SyncOptions{})

	if _, err := s.Sync(context.Background(), owner); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := display.last(); ok {
		t.Fatalf("display must not be touched")
	}
	if status.current() != "error:Invalid JSON RPC response: \"\"" {
		t.Fatalf("expected raw error text, got %q", status.current())
	}
}

func TestSync_ConcurrentRunsDoNotInterleave(t *testing.T) {
	reader := newFakeReader()
	reader.delay = 2 * time.Millisecond
	for i := uint64(1); i <= 6; i++ {
		reader.add(owner, Cow{Number: i})
	}

	display := &fakeDisplay{}
	s := NewSynchronizer(reader, display, &fakeStatus{}, SyncOptions{Concurrency: 3})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Sync(context.Background(), owner)
		}()
	}
	wg.Wait()

	if len(display.replaced) != 4 {
		t.Fatalf("expected 4 replaces, got %d", len(display.replaced))
	}
	for _, list := range display.replaced {
		if !equalNums(numbers(list), []uint64{1, 2, 3, 4, 5, 6}) {
			t.Fatalf("each replace must hold the full set, got %v", numbers(list))
		}
	}
}
