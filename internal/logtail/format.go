package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Entry is one parsed line of the JSON log written by the logging package.
type Entry struct {
	Time    string
	Level   string
	Caller  string
	Message string
	Fields  map[string]any
}

var reservedKeys = map[string]bool{
	"ts": true, "level": true, "caller": true, "msg": true, "logger": true, "stacktrace": true,
}

// Parse decodes a JSON log line. ok is false for lines that are not JSON
// objects; callers print those as is.
func Parse(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{}, false
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Entry{}, false
	}

	e := Entry{Fields: map[string]any{}}
	e.Time = stringField(raw, "ts")
	e.Level = strings.ToUpper(stringField(raw, "level"))
	e.Caller = stringField(raw, "caller")
	e.Message = stringField(raw, "msg")
	for k, v := range raw {
		if !reservedKeys[k] {
			e.Fields[k] = v
		}
	}
	return e, true
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Styles colors the parts of a formatted line.
type Styles struct {
	Time    lipgloss.Style
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
	Message lipgloss.Style
}

// PlainStyles renders without any escape codes.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Time: s, Debug: s, Info: s, Warn: s, Error: s, Key: s, Message: s}
}

// ColorStyles is the palette used by `motostats logs` on a terminal.
func ColorStyles() Styles {
	return Styles{
		Time:    lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")),
		Message: lipgloss.NewStyle(),
	}
}

func (s Styles) level(level string) lipgloss.Style {
	switch level {
	case "DEBUG":
		return s.Debug
	case "WARN":
		return s.Warn
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return s.Error
	default:
		return s.Info
	}
}

// Format renders a log line as "time LEVEL message key=value ...", with
// fields sorted by key. Non-JSON lines are returned unchanged.
func Format(line string, styles Styles) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	parts := make([]string, 0, 3+len(e.Fields))
	if e.Time != "" {
		parts = append(parts, styles.Time.Render(e.Time))
	}
	if e.Level != "" {
		pad := ""
		if len(e.Level) < 5 {
			pad = strings.Repeat(" ", 5-len(e.Level))
		}
		parts = append(parts, styles.level(e.Level).Render(e.Level)+pad)
	}
	if e.Message != "" {
		parts = append(parts, styles.Message.Render(e.Message))
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, styles.Key.Render(k+"=")+formatValue(e.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// FormatLines applies Format to every line.
func FormatLines(lines []string, styles Styles) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line, styles)
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
