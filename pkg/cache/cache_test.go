package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "plan:a"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "plan:a", []byte("A"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "plan:b", []byte("B"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "plan:a")
	if err != nil || !hit || string(data) != "A" {
		t.Errorf("Get(plan:a) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "plan:a"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "plan:a"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "plan:a"); err != nil {
		t.Errorf("deleting a missing entry should not fail: %v", err)
	}

	n, err := c.Clear()
	if err != nil || n != 1 {
		t.Errorf("Clear() = %d, %v, want 1", n, err)
	}
	if _, hit, _ := c.Get(ctx, "plan:b"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestFileCacheExpiryAndCorruption(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "bad", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("bad"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry = %v, %v, want a silent miss", hit, err)
	}
	if _, err := os.Stat(c.path("bad")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestGetOrCompute(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("plan"), nil
	}

	for i, wantHit := range []bool{false, true} {
		data, hit, err := GetOrCompute(ctx, c, "plan", "k", time.Hour, compute)
		if err != nil || string(data) != "plan" || hit != wantHit {
			t.Errorf("call %d = %q, %v, %v", i, data, hit, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, _, err := GetOrCompute(ctx, NewNullCache(), "plan", "k", 0, func() ([]byte, error) { return nil, boom }); err != boom {
		t.Errorf("GetOrCompute() error = %v, want %v", err, boom)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	p1 := k.PlanKey(PlanKeyOpts{Count: 5, Width: 200, Height: 100, Packing: "spread", Gap: 8})
	p2 := k.PlanKey(PlanKeyOpts{Count: 5, Width: 200, Height: 100, Packing: "fill", Gap: 8})
	if p1 == p2 || !strings.HasPrefix(p1, "plan:") {
		t.Errorf("PlanKey() = %s, %s", p1, p2)
	}

	if got := k.ReportKey("abc"); got != "report:abc" {
		t.Errorf("ReportKey() = %s", got)
	}

	o1 := k.OverlayKey("abc", OverlayKeyOpts{Format: "svg"})
	o2 := k.OverlayKey("abc", OverlayKeyOpts{Format: "text"})
	if o1 == o2 || !strings.HasPrefix(o1, "overlay:") {
		t.Errorf("OverlayKey() = %s, %s", o1, o2)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "anchor:v1:")
	if got := scoped.ReportKey("abc"); got != "anchor:v1:report:abc" {
		t.Errorf("ReportKey() = %s", got)
	}
	plan := scoped.PlanKey(PlanKeyOpts{Count: 1})
	if plan != "anchor:v1:"+NewDefaultKeyer().PlanKey(PlanKeyOpts{Count: 1}) {
		t.Errorf("PlanKey() = %s", plan)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("Retryable(ErrUnavailable) = %v", err)
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
	if IsRetryable(ErrUnavailable) {
		t.Error("plain errors are not retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := RetryDelay
	RetryDelay = time.Millisecond
	defer func() { RetryDelay = old }()
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, permanent, 1, permanent},
		{"recovers", 1, Retryable(ErrUnavailable), 2, nil},
		{"gives up", 5, Retryable(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RetryWithBackoff() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrUnavailable) })
	if err != context.Canceled {
		t.Errorf("RetryWithBackoff() = %v, want context.Canceled", err)
	}
}
