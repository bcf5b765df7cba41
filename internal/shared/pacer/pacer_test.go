package pacer

import (
	"testing"
	"time"
)

func TestFixedDelay_FirstCallImmediate(t *testing.T) {
	t.Parallel()

	p := NewFixedDelay(100 * time.Millisecond)

	start := time.Now()
	p.Wait()
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("first Wait should return immediately, took %v", elapsed)
	}
}

func TestFixedDelay_EnforcesGap(t *testing.T) {
	t.Parallel()

	const gap = 50 * time.Millisecond
	p := NewFixedDelay(gap)

	p.Wait()
	start := time.Now()
	p.Wait()
	if elapsed := time.Since(start); elapsed < gap {
		t.Errorf("second Wait returned after %v, want at least %v", elapsed, gap)
	}
}

func TestFixedDelay_NoSleepWhenGapAlreadyPassed(t *testing.T) {
	t.Parallel()

	const gap = 30 * time.Millisecond
	p := NewFixedDelay(gap)

	p.Wait()
	time.Sleep(gap + 10*time.Millisecond)

	start := time.Now()
	p.Wait()
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("Wait should not sleep when the gap already passed, took %v", elapsed)
	}
}
