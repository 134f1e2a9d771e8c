// Package report computes and persists the build-info record of an
// optimizer run.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/notnot-ext/bundleopt/kit/fsutil"
)

// FileStats describes one artifact of a run.
type FileStats struct {
	File   string  `json:"file"`
	SizeKB float64 `json:"size_kb"`
	Lines  int     `json:"lines"`

	bytes int64
}

// Bytes is the exact size the SizeKB figure was rounded from.
func (s FileStats) Bytes() int64 { return s.bytes }

// Record is the build-info.json document.
type Record struct {
	Timestamp        string    `json:"timestamp"`
	Original         FileStats `json:"original"`
	Bundle           FileStats `json:"bundle"`
	Optimized        FileStats `json:"optimized"`
	ReductionPercent float64   `json:"reduction_percent"`
}

const TimeLayout = "2006-01-02T15:04:05.000000"

// New assembles a record, stamping it with now. The reduction is measured
// against the original file and is 0 when there is no original.
func New(now time.Time, original, bundle, optimized FileStats) *Record {
	return &Record{
		Timestamp:        now.Format(TimeLayout),
		Original:         original,
		Bundle:           bundle,
		Optimized:        optimized,
		ReductionPercent: Reduction(original.bytes, optimized.bytes),
	}
}

// StatFile reports on a file on disk. A missing file yields zero sizes and
// ok=false; File is still set to path.
func StatFile(path string) (stats FileStats, ok bool) {
	stats.File = path
	data, err := os.ReadFile(path)
	if err != nil {
		return stats, false
	}
	stats.bytes = int64(len(data))
	stats.SizeKB = toKB(stats.bytes)
	stats.Lines = fsutil.CountLines(data)
	return stats, true
}

// StatText reports on an in-memory artifact. Lines are newline-separated
// segments, so text without a trailing newline still counts its last line
// and empty text counts as one line.
func StatText(file, text string) FileStats {
	n := int64(len(text))
	return FileStats{
		File:   file,
		SizeKB: toKB(n),
		Lines:  strings.Count(text, "\n") + 1,
		bytes:  n,
	}
}

// Reduction is the percentage by which optimized is smaller than original,
// rounded to one decimal.
func Reduction(original, optimized int64) float64 {
	if original <= 0 {
		return 0
	}
	return round(100*(1-float64(optimized)/float64(original)), 1)
}

// WriteFile writes the record as indented JSON.
func (r *Record) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report.WriteFile: failed to encode record: %w", err)
	}
	if err := fsutil.WriteText(path, string(data)); err != nil {
		return fmt.Errorf("report.WriteFile: %w", err)
	}
	return nil
}

// ReadFile loads a record written by WriteFile. Byte counts are not
// persisted, so Bytes() reports zero on the result.
func ReadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report.ReadFile: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report.ReadFile: failed to decode %s: %w", path, err)
	}
	return &r, nil
}

// FormatSize renders a byte count for progress output.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func toKB(bytes int64) float64 {
	return round(float64(bytes)/1024, 2)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
