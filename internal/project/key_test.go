package project

import "testing"

func TestKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My House - Blender 4.5", "My House"},
		{"Building123 - ArchiCAD 26", "Building123"},
		{"Untitled - Notepad", "Untitled"},
		{"* PROJECTX - Blender", "PROJECTX"},
		{"Design \u2013 Blender", "Design"},       // en dash
		{"Design \u2014 Blender", "Design"},       // em dash
		{"Plan [C:\\work\\plan.pln] - ArchiCAD", "Plan"},
		{"notes.txt [~/docs] - Vim", "notes.txt"},
		{"a/b:c - App", "a_b_c"},
		{"x", FallbackKey},
		{"", FallbackKey},
		{"* ", FallbackKey},
		{"- Blender", FallbackKey},
	}
	for _, tc := range cases {
		if got := Key(tc.in); got != tc.want {
			t.Fatalf("Key(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestKeyIsStable(t *testing.T) {
	variants := []string{
		"Design A - Blender 4.5",
		"* Design A - Blender 4.5",
		"Design A [C:\\projects\\a.blend] - Blender 4.5",
		"* Design A [D:\\other\\a.blend] - Blender 4.2",
	}
	want := Key(variants[0])
	for _, v := range variants {
		if got := Key(v); got != want {
			t.Fatalf("Key(%q): expected %q, got %q", v, want, got)
		}
	}
}

func TestKeyNoSeparatorTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 80; i++ {
		long += "x"
	}
	got := Key(long)
	if len(got) != 50 {
		t.Fatalf("expected 50-char key, got %d chars: %q", len(got), got)
	}
}

func TestFilter(t *testing.T) {
	f := NewFilter(
		[]string{"blender.exe", "archicad.exe", "Revit.EXE"},
		[]string{"archicad.exe"},
	)
	cases := []struct {
		process string
		want    bool
	}{
		{"blender.exe", true},
		{"BLENDER.EXE", true},
		{"revit.exe", true},
		{"archicad.exe", false}, // ignored wins over tracked
		{"explorer.exe", false}, // not on the allow-list
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := f.Tracked(tc.process); got != tc.want {
			t.Fatalf("Tracked(%q): expected %v, got %v", tc.process, tc.want, got)
		}
	}
}
