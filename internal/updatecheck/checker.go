package updatecheck

import (
	"fmt"
	"log/slog"
	"time"

	"mercedes/internal/artifact"
	"mercedes/internal/daemonstate"
	"mercedes/internal/layout"
	"mercedes/internal/logging"
	"mercedes/internal/record"
)

// DefaultBuffer is the grace margin applied when comparing the daemon's
// confirmation against the last self check, absorbing clock and timing
// jitter between the two writers.
const DefaultBuffer = time.Minute

// Reason explains a skip decision.
type Reason string

const (
	// ReasonDaemonAbsent: no recent daemon report, always run the real check.
	ReasonDaemonAbsent Reason = "daemon_absent"
	// ReasonDaemonDegraded: daemon alive but failing; trust it and skip
	// rather than hammer the remote while it recovers.
	ReasonDaemonDegraded Reason = "daemon_degraded"
	// ReasonIncompleteKey: not enough artifact identity to look anything up.
	ReasonIncompleteKey Reason = "incomplete_key"
	// ReasonFirstLookup: no daemon record and no prior self check.
	ReasonFirstLookup Reason = "first_lookup"
	// ReasonPreviouslyChecked: no daemon record but this engine has already
	// confirmed the artifact at least once.
	ReasonPreviouslyChecked Reason = "previously_checked"
	// ReasonUntrustedRecord: one of the records exists but cannot be read.
	ReasonUntrustedRecord Reason = "untrusted_record"
	// ReasonConfirmedFresh: the daemon confirmed freshness well before the
	// last self check, so that check still stands.
	ReasonConfirmedFresh Reason = "confirmed_fresh"
	// ReasonPossiblyChanged: the daemon's confirmation is newer than (or
	// within the buffer of) the last self check.
	ReasonPossiblyChanged Reason = "possibly_changed"
)

// Decision is the full outcome of one evaluation, for logs and inspection
// tooling. Callers that only need the verdict use ShouldSkipUpdate.
type Decision struct {
	Skip         bool
	Reason       Reason
	DaemonRecord record.Result
	CheckRecord  record.Result
}

// Checker evaluates skip decisions against one repository layout and one
// daemon status snapshot. It is safe for concurrent use: calls share no
// mutable state, and the self check record write is atomic, so concurrent
// calls for the same artifact settle on one complete value.
type Checker struct {
	status daemonstate.Status
	layout layout.Layout
	buffer time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New builds a Checker. A non-positive buffer falls back to DefaultBuffer.
func New(status daemonstate.Status, lay layout.Layout, buffer time.Duration, logger *slog.Logger) *Checker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Checker{
		status: status,
		layout: lay,
		buffer: buffer,
		logger: logging.NewComponentLogger(logger, "updatecheck"),
		now:    time.Now,
	}
}

// ShouldSkipUpdate reports whether the freshness check for the artifact may
// be skipped. The returned error is non-nil only when the mandatory closing
// write of the self check record fails; every read-side problem degrades to
// a false verdict instead.
func (c *Checker) ShouldSkipUpdate(lastModified int64, key artifact.Key) (bool, error) {
	decision, err := c.Evaluate(lastModified, key)
	return decision.Skip, err
}

// Evaluate runs the decision state machine and returns the full outcome.
func (c *Checker) Evaluate(lastModified int64, key artifact.Key) (decision Decision, err error) {
	start := c.now().UnixMilli()

	defer func() {
		c.logger.Debug("skip decision",
			logging.Args(append(
				logging.DecisionAttrs("snapshot_update", verdict(decision.Skip), string(decision.Reason)),
				logging.String("artifact", key.Coordinates()),
				logging.Int64("last_modified_ms", lastModified),
			)...)...)
	}()

	if !c.status.RecentlyUpdated {
		return Decision{Skip: false, Reason: ReasonDaemonAbsent}, nil
	}
	if !c.status.LastUpdateSuccess {
		return Decision{Skip: true, Reason: ReasonDaemonDegraded}, nil
	}
	if !key.Complete() {
		return Decision{Skip: false, Reason: ReasonIncompleteKey}, nil
	}

	artifactInfoPath := c.layout.ArtifactInfoPath(key)
	updateInfoPath := c.layout.UpdateInfoPath(key)

	// From here on the self check record is refreshed no matter how the
	// decision comes out, mirroring the read-then-write contract: the write
	// must happen even if evaluation panics.
	defer func() {
		if storeErr := record.Store(updateInfoPath, start); storeErr != nil && err == nil {
			err = fmt.Errorf("record check time for %s: %w", key.Coordinates(), storeErr)
		}
	}()

	daemonRecord := record.Load(artifactInfoPath, c.logger)
	checkRecord := record.Load(updateInfoPath, c.logger)

	decision = Decision{DaemonRecord: daemonRecord, CheckRecord: checkRecord}
	switch {
	case daemonRecord.Status == record.StatusNotFound:
		// Skip only if this engine has confirmed the artifact before.
		if checkRecord.Status == record.StatusSuccess {
			decision.Skip = true
			decision.Reason = ReasonPreviouslyChecked
		} else {
			decision.Reason = ReasonFirstLookup
		}
	case daemonRecord.Status != record.StatusSuccess || checkRecord.Status != record.StatusSuccess:
		decision.Reason = ReasonUntrustedRecord
	case daemonRecord.Timestamp < checkRecord.Timestamp-c.buffer.Milliseconds():
		decision.Skip = true
		decision.Reason = ReasonConfirmedFresh
	default:
		decision.Reason = ReasonPossiblyChanged
	}
	return decision, nil
}

func verdict(skip bool) string {
	if skip {
		return "skip"
	}
	return "check"
}
