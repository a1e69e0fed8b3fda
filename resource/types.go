package resource

import "strings"

// WellKnown is a predefined resource type tag.
// Values are fixed by the host platform's binary format.
type WellKnown uint32

const (
	Cursor       WellKnown = 1
	Bitmap       WellKnown = 2
	Icon         WellKnown = 3
	Menu         WellKnown = 4
	Dialog       WellKnown = 5
	String       WellKnown = 6
	FontDir      WellKnown = 7
	Font         WellKnown = 8
	Accelerator  WellKnown = 9
	RCData       WellKnown = 10
	MessageTable WellKnown = 11
	GroupCursor  WellKnown = 12
	GroupIcon    WellKnown = 14
	Version      WellKnown = 16
	DlgInclude   WellKnown = 17
	PlugPlay     WellKnown = 19
	VXD          WellKnown = 20
	AniCursor    WellKnown = 21
	AniIcon      WellKnown = 22
	HTML         WellKnown = 23
	Manifest     WellKnown = 24
)

var wellKnownNames = map[WellKnown]string{
	Cursor:       "CURSOR",
	Bitmap:       "BITMAP",
	Icon:         "ICON",
	Menu:         "MENU",
	Dialog:       "DIALOG",
	String:       "STRING",
	FontDir:      "FONTDIR",
	Font:         "FONT",
	Accelerator:  "ACCELERATOR",
	RCData:       "RCDATA",
	MessageTable: "MESSAGETABLE",
	GroupCursor:  "GROUP_CURSOR",
	GroupIcon:    "GROUP_ICON",
	Version:      "VERSION",
	DlgInclude:   "DLGINCLUDE",
	PlugPlay:     "PLUGPLAY",
	VXD:          "VXD",
	AniCursor:    "ANICURSOR",
	AniIcon:      "ANIICON",
	HTML:         "HTML",
	Manifest:     "MANIFEST",
}

var wellKnownByName = func() map[string]WellKnown {
	m := make(map[string]WellKnown, len(wellKnownNames))
	for w, name := range wellKnownNames {
		m[name] = w
	}
	return m
}()

// AllWellKnown returns every predefined tag in ascending order.
func AllWellKnown() []WellKnown {
	return []WellKnown{
		Cursor, Bitmap, Icon, Menu, Dialog, String, FontDir, Font, Accelerator,
		RCData, MessageTable, GroupCursor, GroupIcon, Version, DlgInclude,
		PlugPlay, VXD, AniCursor, AniIcon, HTML, Manifest,
	}
}

// LookupWellKnown resolves "STRING" or "RT_STRING" (any case) to its tag.
func LookupWellKnown(name string) (WellKnown, bool) {
	name = strings.TrimPrefix(strings.ToUpper(name), "RT_")
	w, ok := wellKnownByName[name]
	return w, ok
}

// Known reports whether w is one of the predefined tags.
func (w WellKnown) Known() bool {
	_, ok := wellKnownNames[w]
	return ok
}

// ID returns the numeric resource ID for the tag.
func (w WellKnown) ID() ID {
	return Num(uint32(w))
}

func (w WellKnown) String() string {
	if name, ok := wellKnownNames[w]; ok {
		return name
	}
	return ID{num: uint32(w)}.String()
}
