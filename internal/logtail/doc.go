// Package logtail reads and formats the motostats log file.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer of N entries,
// so memory stays bounded no matter how large the log grows. N <= 0 returns
// the whole file. A missing file is treated as empty.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Formatting
//
// The log is written as zap JSON, one object per line. Format turns a line
// into a compact human form:
//
//	2026-10-15T10:00:00.000Z error api error detail="database offline" path=/riders/ status=503
//
// Fields other than ts, level, caller, msg, logger and stacktrace are appended
// as key=value pairs sorted by key. Lines that are not JSON objects pass
// through untouched. ColorStyles colors the time, level and keys with
// lipgloss; PlainStyles emits no escape codes and is used when output is not
// a terminal.
package logtail
