package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme_FallsBackToDefault(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("Dracula").Name; got != DefaultTheme {
		t.Fatalf("GetTheme(Dracula).Name = %q, want %q", got, DefaultTheme)
	}
}

func TestThemesDefineStatusColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range []string{"active", "retired", "injured", "unknown"} {
			if th.StatusColors[status] == "" {
				t.Fatalf("theme %s has no color for %q", name, status)
			}
		}
		if th.Badge == "" {
			t.Fatalf("theme %s has no badge color", name)
		}
	}
}

func TestColumnsFor(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{40, 1},
		{LayoutTwoColumnWidth, 2},
		{LayoutThreeColumnWidth, 3},
		{LayoutFourColumnWidth, 4},
		{400, 4},
	}
	for _, tc := range cases {
		if got := columnsFor(tc.width); got != tc.want {
			t.Fatalf("columnsFor(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
	if got := cardWidth(30, 4); got != 20 {
		t.Fatalf("cardWidth(30, 4) = %d, want minimum 20", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Valentino Rossi", 10); got != "Valenti..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("  Marc  ", 10); got != "Marc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}
