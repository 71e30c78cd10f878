package updatecheck

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mercedes/internal/artifact"
	"mercedes/internal/daemonstate"
	"mercedes/internal/layout"
	"mercedes/internal/record"
	"mercedes/internal/testsupport"
)

var testKey = artifact.Key{GroupID: "com.example", ArtifactID: "app", Version: "1.0-SNAPSHOT"}

func healthyStatus() daemonstate.Status {
	return daemonstate.Status{
		LastUpdateSuccess: true,
		RecentlyUpdated:   true,
		SuccessRecorded:   true,
		TimeRecorded:      true,
	}
}

func newTestChecker(t *testing.T, status daemonstate.Status) (*Checker, layout.Layout) {
	t.Helper()
	lay := layout.Layout{Root: t.TempDir()}
	return New(status, lay, DefaultBuffer, nil), lay
}

func fixClock(c *Checker, at time.Time) {
	c.now = func() time.Time { return at }
}

func TestDaemonAbsentNeverSkips(t *testing.T) {
	checker, lay := newTestChecker(t, daemonstate.Status{LastUpdateSuccess: true})

	// Even a perfect record pair must not cause a skip.
	testsupport.WriteTimestamp(t, lay.ArtifactInfoPath(testKey), 1000)
	testsupport.WriteTimestamp(t, lay.UpdateInfoPath(testKey), 500000)

	skip, err := checker.ShouldSkipUpdate(0, testKey)
	if err != nil {
		t.Fatalf("ShouldSkipUpdate failed: %v", err)
	}
	if skip {
		t.Error("must not skip when the daemon has not reported recently")
	}
}

func TestDaemonAbsentDoesNotWriteCheckRecord(t *testing.T) {
	checker, lay := newTestChecker(t, daemonstate.Status{})

	if _, err := checker.ShouldSkipUpdate(0, testKey); err != nil {
		t.Fatalf("ShouldSkipUpdate failed: %v", err)
	}

	if _, err := os.Stat(lay.UpdateInfoPath(testKey)); !os.IsNotExist(err) {
		t.Error("early daemon-absent return must not create a check record")
	}
}

func TestDaemonDegradedSkips(t *testing.T) {
	checker, _ := newTestChecker(t, daemonstate.Status{RecentlyUpdated: true})

	skip, err := checker.ShouldSkipUpdate(0, testKey)
	if err != nil {
		t.Fatalf("ShouldSkipUpdate failed: %v", err)
	}
	if !skip {
		t.Error("must skip while the daemon is alive but degraded")
	}
}

func TestDaemonDegradedSkipsBeforeKeyValidation(t *testing.T) {
	checker, _ := newTestChecker(t, daemonstate.Status{RecentlyUpdated: true})

	skip, err := checker.ShouldSkipUpdate(0, artifact.Key{})
	if err != nil {
		t.Fatalf("ShouldSkipUpdate failed: %v", err)
	}
	if !skip {
		t.Error("degraded branch precedes key validation")
	}
}

func TestIncompleteKeyDoesNotSkip(t *testing.T) {
	cases := []artifact.Key{
		{},
		{GroupID: "com.example"},
		{ArtifactID: "app"},
	}
	for _, key := range cases {
		checker, _ := newTestChecker(t, healthyStatus())
		skip, err := checker.ShouldSkipUpdate(0, key)
		if err != nil {
			t.Fatalf("ShouldSkipUpdate(%+v) failed: %v", key, err)
		}
		if skip {
			t.Errorf("must not skip for incomplete key %+v", key)
		}
	}
}

func TestFirstLookupDoesNotSkip(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())
	start := time.Now()
	fixClock(checker, start)

	decision, err := checker.Evaluate(0, testKey)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision.Skip {
		t.Error("first-ever lookup must not skip")
	}
	if decision.Reason != ReasonFirstLookup {
		t.Errorf("reason = %s, want first_lookup", decision.Reason)
	}

	// The self check record must exist afterwards, stamped with call start.
	result := record.Load(lay.UpdateInfoPath(testKey), nil)
	if result.Status != record.StatusSuccess {
		t.Fatalf("check record status = %v, want success", result.Status)
	}
	if result.Timestamp != start.UnixMilli() {
		t.Errorf("check record timestamp = %d, want %d", result.Timestamp, start.UnixMilli())
	}
}

func TestSkipWhenDaemonRecordMissingButPreviouslyChecked(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())
	testsupport.WriteTimestamp(t, lay.UpdateInfoPath(testKey), time.Now().UnixMilli())

	decision, err := checker.Evaluate(0, testKey)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !decision.Skip {
		t.Error("must skip when the engine has confirmed this artifact before")
	}
	if decision.Reason != ReasonPreviouslyChecked {
		t.Errorf("reason = %s, want previously_checked", decision.Reason)
	}
}

func TestUntrustedDaemonRecordDoesNotSkip(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())
	testsupport.WriteFile(t, lay.ArtifactInfoPath(testKey), "lastUpdateTime=not-a-number\n")
	testsupport.WriteTimestamp(t, lay.UpdateInfoPath(testKey), time.Now().UnixMilli())

	decision, err := checker.Evaluate(0, testKey)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision.Skip {
		t.Error("must not skip on an unparseable daemon record")
	}
	if decision.Reason != ReasonUntrustedRecord {
		t.Errorf("reason = %s, want untrusted_record", decision.Reason)
	}
}

func TestUntrustedCheckRecordDoesNotSkip(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())
	testsupport.WriteTimestamp(t, lay.ArtifactInfoPath(testKey), 1000)
	testsupport.WriteFile(t, lay.UpdateInfoPath(testKey), "wrongKey=5\n")

	decision, err := checker.Evaluate(0, testKey)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision.Skip {
		t.Error("must not skip on a corrupt self check record")
	}
}

func TestSkipWhenDaemonConfirmedBeforeLastCheck(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())

	checkTime := time.Now().UnixMilli()
	daemonTime := checkTime - DefaultBuffer.Milliseconds() - 1
	testsupport.WriteTimestamp(t, lay.ArtifactInfoPath(testKey), daemonTime)
	testsupport.WriteTimestamp(t, lay.UpdateInfoPath(testKey), checkTime)

	decision, err := checker.Evaluate(0, testKey)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !decision.Skip {
		t.Error("must skip when the daemon confirmed more than a buffer before the last check")
	}
	if decision.Reason != ReasonConfirmedFresh {
		t.Errorf("reason = %s, want confirmed_fresh", decision.Reason)
	}
}

func TestNoSkipWithinBufferOrAfterLastCheck(t *testing.T) {
	checkTime := time.Now().UnixMilli()
	cases := []struct {
		name       string
		daemonTime int64
	}{
		{"exactly buffer before", checkTime - DefaultBuffer.Milliseconds()},
		{"just inside buffer", checkTime - DefaultBuffer.Milliseconds() + 1},
		{"equal", checkTime},
		{"after last check", checkTime + 5000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker, lay := newTestChecker(t, healthyStatus())
			testsupport.WriteTimestamp(t, lay.ArtifactInfoPath(testKey), tc.daemonTime)
			testsupport.WriteTimestamp(t, lay.UpdateInfoPath(testKey), checkTime)

			decision, err := checker.Evaluate(0, testKey)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if decision.Skip {
				t.Error("must not skip when the daemon confirmation is within the buffer or newer")
			}
			if decision.Reason != ReasonPossiblyChanged {
				t.Errorf("reason = %s, want possibly_changed", decision.Reason)
			}
		})
	}
}

func TestCheckRecordRefreshedOnEveryDecision(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())

	oldCheck := time.Now().Add(-time.Hour)
	testsupport.WriteTimestamp(t, lay.ArtifactInfoPath(testKey), oldCheck.Add(-2*time.Minute).UnixMilli())
	testsupport.WriteTimestamp(t, lay.UpdateInfoPath(testKey), oldCheck.UnixMilli())

	start := time.Now()
	fixClock(checker, start)

	if _, err := checker.Evaluate(0, testKey); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	result := record.Load(lay.UpdateInfoPath(testKey), nil)
	if result.Status != record.StatusSuccess || result.Timestamp != start.UnixMilli() {
		t.Errorf("check record after decision = %+v, want success at %d", result, start.UnixMilli())
	}
}

func TestCheckRecordWriteFailurePropagates(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())

	// Block the version directory with a plain file so the closing write
	// cannot create it.
	versionDir := filepath.Dir(lay.UpdateInfoPath(testKey))
	testsupport.WriteFile(t, versionDir, "in the way")

	if _, err := checker.ShouldSkipUpdate(0, testKey); err == nil {
		t.Fatal("expected the closing write failure to propagate")
	}
}

func TestVersionedAndUnversionedKeysUseSeparateCheckRecords(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())

	versioned := testKey
	unversioned := artifact.Key{GroupID: testKey.GroupID, ArtifactID: testKey.ArtifactID}

	if _, err := checker.ShouldSkipUpdate(0, versioned); err != nil {
		t.Fatalf("versioned call failed: %v", err)
	}
	if _, err := checker.ShouldSkipUpdate(0, unversioned); err != nil {
		t.Fatalf("unversioned call failed: %v", err)
	}

	versionedPath := lay.UpdateInfoPath(versioned)
	unversionedPath := lay.UpdateInfoPath(unversioned)
	if versionedPath == unversionedPath {
		t.Fatal("expected distinct record paths")
	}
	for _, path := range []string{versionedPath, unversionedPath} {
		if result := record.Load(path, nil); result.Status != record.StatusSuccess {
			t.Errorf("record at %s = %v, want success", path, result.Status)
		}
	}
}

func TestConcurrentDecisionsLeaveOneCompleteRecord(t *testing.T) {
	checker, lay := newTestChecker(t, healthyStatus())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := checker.ShouldSkipUpdate(0, testKey); err != nil {
				t.Errorf("concurrent ShouldSkipUpdate failed: %v", err)
			}
		}()
	}
	wg.Wait()

	result := record.Load(lay.UpdateInfoPath(testKey), nil)
	if result.Status != record.StatusSuccess {
		t.Fatalf("final check record = %v, want success", result.Status)
	}
	if result.Timestamp <= 0 {
		t.Errorf("final timestamp = %d, want a real call start time", result.Timestamp)
	}
}
