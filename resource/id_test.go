package resource

import "testing"

func TestID_Variants(t *testing.T) {
	n := Num(6)
	if n.IsNamed() {
		t.Fatal("Num should not be named")
	}
	if v, ok := n.Number(); !ok || v != 6 {
		t.Fatalf("Number() = %d, %v", v, ok)
	}
	if _, ok := n.Name(); ok {
		t.Fatal("Name() should fail for numeric ID")
	}

	s := Name("greeting")
	if !s.IsNamed() {
		t.Fatal("Name should be named")
	}
	if v, ok := s.Name(); !ok || v != "GREETING" {
		t.Fatalf("Name() = %q, %v", v, ok)
	}
	if _, ok := s.Number(); ok {
		t.Fatal("Number() should fail for named ID")
	}
}

func TestID_Equality(t *testing.T) {
	if Name("Greeting") != Name("GREETING") {
		t.Error("names should compare case-insensitively")
	}
	if Num(6) == Name("6") {
		t.Error("numeric and named IDs must never be equal")
	}
	if Num(6) == Name("#6") {
		t.Error("numeric and named IDs must never be equal")
	}

	m := map[ID]int{Num(6): 1, Name("6"): 2, Name("abc"): 3}
	if len(m) != 3 {
		t.Fatalf("expected 3 distinct keys, got %d", len(m))
	}
	if m[Name("ABC")] != 3 {
		t.Error("map lookup should be case-insensitive for names")
	}
}

func TestID_String(t *testing.T) {
	tests := []struct {
		id    ID
		str   string
		label string
	}{
		{Num(6), "#6", "STRING"},
		{Num(13), "#13", "#13"},
		{Num(24), "#24", "MANIFEST"},
		{Name("greeting"), "GREETING", "GREETING"},
		{String.ID(), "#6", "STRING"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.id.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"#6", Num(6)},
		{"#4096", Num(4096)},
		{"STRING", Num(6)},
		{"rt_manifest", Num(24)},
		{"group_icon", Num(14)},
		{"GREETING", Name("GREETING")},
		{"6", Name("6")},
		{"#abc", Name("#ABC")},
	}
	for _, tt := range tests {
		if got := ParseID(tt.in); got != tt.want {
			t.Errorf("ParseID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"#1", Num(1)},
		{"#65535", Num(65535)},
		{"ICON", Name("ICON")},
		{"rt_html", Name("RT_HTML")},
		{"String", Name("STRING")},
		{"GREETING", Name("GREETING")},
		{"#x1", Name("#X1")},
	}
	for _, tt := range tests {
		if got := ParseName(tt.in); got != tt.want {
			t.Errorf("ParseName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWellKnown_Values(t *testing.T) {
	want := map[WellKnown]uint32{
		Cursor: 1, Bitmap: 2, Icon: 3, Menu: 4, Dialog: 5, String: 6,
		FontDir: 7, Font: 8, Accelerator: 9, RCData: 10, MessageTable: 11,
		GroupCursor: 12, GroupIcon: 14, Version: 16, DlgInclude: 17,
		PlugPlay: 19, VXD: 20, AniCursor: 21, AniIcon: 22, HTML: 23, Manifest: 24,
	}
	for w, v := range want {
		if uint32(w) != v {
			t.Errorf("%s = %d, want %d", w, uint32(w), v)
		}
	}

	for _, gap := range []WellKnown{13, 15, 18} {
		if gap.Known() {
			t.Errorf("%d must remain a gap", uint32(gap))
		}
	}

	if len(AllWellKnown()) != len(want) {
		t.Errorf("AllWellKnown() has %d entries, want %d", len(AllWellKnown()), len(want))
	}
}
