package daemonstate

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/magiconair/properties"

	"mercedes/internal/logging"
)

const (
	// SuccessKey records whether the daemon's last refresh succeeded.
	SuccessKey = "lastUpdateSuccess"
	// TimestampKey records when that refresh happened, in epoch millis.
	TimestampKey = "lastUpdateTime"
)

// DefaultRecencyWindow is how fresh the daemon's report must be before it is
// trusted at all.
const DefaultRecencyWindow = time.Minute

// Status is the daemon's self-reported health, loaded once. The zero value
// is the invalid sentinel: nothing recorded, nothing recent, never skip.
type Status struct {
	LastUpdateSuccess bool
	LastUpdateTime    int64
	RecentlyUpdated   bool

	// SuccessRecorded and TimeRecorded distinguish "the daemon said false /
	// zero" from "the record never carried the field".
	SuccessRecorded bool
	TimeRecorded    bool
}

// Health classifies a Status for diagnostics. It adds no information beyond
// RecentlyUpdated and LastUpdateSuccess.
type Health int

const (
	// HealthAbsent means the daemon has not reported within the window.
	HealthAbsent Health = iota
	// HealthDegraded means the daemon is alive but its last refresh failed.
	HealthDegraded
	// HealthHealthy means the daemon is alive and its last refresh succeeded.
	HealthHealthy
)

func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "healthy"
	case HealthDegraded:
		return "degraded"
	default:
		return "absent"
	}
}

// Health derives the classification for this status.
func (s Status) Health() Health {
	switch {
	case !s.RecentlyUpdated:
		return HealthAbsent
	case !s.LastUpdateSuccess:
		return HealthDegraded
	default:
		return HealthHealthy
	}
}

// Load reads the daemon status record at path and evaluates recency against
// now. Any failure to read or parse degrades to the invalid sentinel with a
// warning; this function never aborts the host process. Exactly one summary
// line describes the resulting classification.
func Load(path string, now time.Time, window time.Duration, logger *slog.Logger) Status {
	if logger == nil {
		logger = logging.NewNop()
	}
	if window <= 0 {
		window = DefaultRecencyWindow
	}

	status, ok := read(path, logger)
	if !ok {
		logger.Warn("daemon status unavailable, remote checks will always run",
			logging.String(logging.FieldEventType, "daemon_status_invalid"),
			logging.String(logging.FieldPath, path))
		return Status{}
	}

	status.RecentlyUpdated = now.UnixMilli()-status.LastUpdateTime < window.Milliseconds()

	switch status.Health() {
	case HealthHealthy:
		logger.Info("daemon is healthy, snapshot checks may be skipped",
			logging.String(logging.FieldEventType, "daemon_healthy"),
			logging.Int64("last_update_ms", status.LastUpdateTime))
	case HealthDegraded:
		logging.WarnWithContext(logger, "daemon is running but its last refresh failed", "daemon_degraded",
			logging.String(logging.FieldErrorHint, "check daemon connectivity, e.g. VPN"),
			logging.String(logging.FieldImpact, "snapshot checks are skipped while the daemon recovers"))
	case HealthAbsent:
		logging.WarnWithContext(logger, "daemon does not appear to be running", "daemon_absent",
			logging.String(logging.FieldErrorHint, "start the daemon to speed up resolution"),
			logging.String(logging.FieldImpact, "every snapshot check hits the remote repository"))
	}

	return status
}

func read(path string, logger *slog.Logger) (Status, bool) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("no daemon status file found", logging.String(logging.FieldPath, path))
		return Status{}, false
	case err != nil:
		logger.Warn("failed to stat daemon status file",
			logging.String(logging.FieldPath, path), logging.Error(err))
		return Status{}, false
	case !info.Mode().IsRegular():
		logger.Warn("daemon status path is not a regular file", logging.String(logging.FieldPath, path))
		return Status{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read daemon status file",
			logging.String(logging.FieldPath, path), logging.Error(err))
		return Status{}, false
	}

	props, err := properties.Load(data, properties.UTF8)
	if err != nil {
		logger.Warn("daemon status file is malformed",
			logging.String(logging.FieldPath, path), logging.Error(err))
		return Status{}, false
	}

	var status Status
	if value, ok := props.Get(SuccessKey); !ok {
		logger.Warn("daemon status file is missing lastUpdateSuccess",
			logging.String(logging.FieldPath, path))
	} else if parsed, err := strconv.ParseBool(value); err != nil {
		logger.Warn("daemon status file has an invalid lastUpdateSuccess",
			logging.String(logging.FieldPath, path), logging.Error(err))
	} else {
		status.LastUpdateSuccess = parsed
		status.SuccessRecorded = true
	}

	if value, ok := props.Get(TimestampKey); !ok {
		logger.Warn("daemon status file is missing lastUpdateTime",
			logging.String(logging.FieldPath, path))
	} else if parsed, err := strconv.ParseInt(value, 10, 64); err != nil {
		logger.Warn("daemon status file has an invalid lastUpdateTime",
			logging.String(logging.FieldPath, path), logging.Error(err))
	} else {
		status.LastUpdateTime = parsed
		status.TimeRecorded = true
	}

	return status, true
}
