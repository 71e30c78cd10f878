package main

import (
	"fmt"
	"time"

	"mercedes/internal/record"
)

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format(time.RFC3339)
}

func formatAge(ms int64, now time.Time) string {
	if ms == 0 {
		return "-"
	}
	age := now.Sub(time.UnixMilli(ms))
	if age < 0 {
		age = 0
	}
	return age.Round(time.Second).String()
}

func formatRecord(result record.Result) string {
	if result.Status == record.StatusSuccess {
		return fmt.Sprintf("%s (%s)", result.Status, formatMillis(result.Timestamp))
	}
	return result.Status.String()
}

func formatRecorded(value bool, recorded bool) string {
	if !recorded {
		return "not recorded"
	}
	return fmt.Sprintf("%t", value)
}
