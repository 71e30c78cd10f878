package record

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/magiconair/properties"

	"mercedes/internal/logging"
)

// TimestampKey is the single property a freshness record carries.
const TimestampKey = "lastUpdateTime"

// Status classifies the outcome of loading a record.
type Status int

const (
	// StatusSuccess means the record held a parseable timestamp.
	StatusSuccess Status = iota
	// StatusNotFound means no record exists yet. This is the normal state
	// before an artifact has ever been recorded, not an error.
	StatusNotFound
	// StatusNotRegularFile means the path exists but is not a regular file.
	StatusNotRegularFile
	// StatusNotReadable means the record exists but permissions deny reading.
	StatusNotReadable
	// StatusMissingKey means the file parsed but lacks lastUpdateTime.
	StatusMissingKey
	// StatusUnparseable means the file or its timestamp value is malformed.
	StatusUnparseable
	// StatusIOError covers any other read failure.
	StatusIOError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusNotRegularFile:
		return "not_regular_file"
	case StatusNotReadable:
		return "not_readable"
	case StatusMissingKey:
		return "missing_key"
	case StatusUnparseable:
		return "unparseable"
	case StatusIOError:
		return "io_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one Load. Timestamp is meaningful only when
// Status is StatusSuccess.
type Result struct {
	Status    Status
	Timestamp int64
}

// Load reads the freshness record at path. It never returns an error:
// every failure mode degrades to a distinct Status that callers treat as
// "do not trust this record". Non-success outcomes other than StatusNotFound
// are logged as warnings; absence is logged at debug because it is the
// expected first-use state.
func Load(path string, logger *slog.Logger) Result {
	if logger == nil {
		logger = logging.NewNop()
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no record file found", logging.String(logging.FieldPath, path))
		return Result{Status: StatusNotFound}
	case errors.Is(err, fs.ErrPermission):
		logging.WarnWithContext(logger, "record file is not readable", "record_unreadable",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusNotReadable}
	case err != nil:
		logging.WarnWithContext(logger, "failed to stat record file", "record_io_error",
			logging.String(logging.FieldPath, path), logging.Error(err),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusIOError}
	}

	if !info.Mode().IsRegular() {
		logging.WarnWithContext(logger, "record path is not a regular file", "record_not_file",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusNotRegularFile}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			logging.WarnWithContext(logger, "record file is not readable", "record_unreadable",
				logging.String(logging.FieldPath, path),
				logging.String(logging.FieldImpact, "remote check cannot be skipped"))
			return Result{Status: StatusNotReadable}
		}
		logging.WarnWithContext(logger, "failed to read record file", "record_io_error",
			logging.String(logging.FieldPath, path), logging.Error(err),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusIOError}
	}

	props, err := properties.Load(data, properties.UTF8)
	if err != nil {
		logging.WarnWithContext(logger, "record file is malformed", "record_unparseable",
			logging.String(logging.FieldPath, path), logging.Error(err),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusUnparseable}
	}

	value, ok := props.Get(TimestampKey)
	if !ok {
		logging.WarnWithContext(logger, "record file is missing lastUpdateTime", "record_missing_key",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusMissingKey}
	}

	timestamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logging.WarnWithContext(logger, "record file has an invalid lastUpdateTime", "record_unparseable",
			logging.String(logging.FieldPath, path), logging.Error(err),
			logging.String(logging.FieldImpact, "remote check cannot be skipped"))
		return Result{Status: StatusUnparseable}
	}

	return Result{Status: StatusSuccess, Timestamp: timestamp}
}

// Store replaces the record at path with the single given timestamp. The
// write goes through a uniquely named temp file in the target directory so
// the final rename is atomic on the same volume; the temp file is removed
// best-effort whether or not the rename succeeded. Any failure here is
// returned to the caller: a silently lost record would corrupt every future
// decision for the artifact.
func Store(path string, timestamp int64) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "mercedes-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	props := properties.NewProperties()
	if _, _, err := props.Set(TimestampKey, strconv.FormatInt(timestamp, 10)); err != nil {
		tmp.Close()
		return fmt.Errorf("build record: %w", err)
	}
	if _, err := props.Write(tmp, properties.UTF8); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp record file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp record file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace record %s: %w", path, err)
	}
	return nil
}
