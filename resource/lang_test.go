package resource

import "testing"

func TestLangID_Parts(t *testing.T) {
	l := MakeLangID(0x09, 0x01)
	if l != LangEnglishUS {
		t.Fatalf("MakeLangID(0x09, 0x01) = 0x%04X", uint16(l))
	}
	if l.Primary() != 0x09 || l.Sub() != 0x01 {
		t.Fatalf("Primary/Sub = 0x%X/0x%X", l.Primary(), l.Sub())
	}

	gb := LangID(0x0809)
	if gb.Primary() != l.Primary() {
		t.Error("en-GB and en-US share a primary language")
	}
}

func TestLangID_Names(t *testing.T) {
	tests := []struct {
		id   LangID
		name string
		str  string
	}{
		{0x0409, "en-US", "en-US"},
		{0x0407, "de-DE", "de-DE"},
		{0x0804, "zh-CN", "zh-CN"},
		{LangNeutral, "", "0x0000"},
		{0x7C7C, "", "0x7C7C"},
	}
	for _, tt := range tests {
		if got := tt.id.Name(); got != tt.name {
			t.Errorf("Name(0x%04X) = %q, want %q", uint16(tt.id), got, tt.name)
		}
		if got := tt.id.String(); got != tt.str {
			t.Errorf("String(0x%04X) = %q, want %q", uint16(tt.id), got, tt.str)
		}
	}
}

func TestLangIDFromName(t *testing.T) {
	tests := []struct {
		name string
		want LangID
		ok   bool
	}{
		{"en-US", 0x0409, true},
		{"en-us", 0x0409, true},
		{"fr-CA", 0x0C0C, true},
		{"en", 0, false},
		{"not a tag", 0, false},
	}
	for _, tt := range tests {
		got, ok := LangIDFromName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LangIDFromName(%q) = 0x%04X, %v; want 0x%04X, %v", tt.name, uint16(got), ok, uint16(tt.want), tt.ok)
		}
	}
}
