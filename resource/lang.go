package resource

import (
	"fmt"

	"golang.org/x/text/language"
)

// LangID is the host platform's 16-bit language identifier:
// primary language in the low 10 bits, sub-language in the high 6.
type LangID uint16

const (
	LangNeutral       LangID = 0x0000
	LangInvariant     LangID = 0x007F
	LangUserDefault   LangID = 0x0400
	LangSystemDefault LangID = 0x0800
	LangEnglishUS     LangID = 0x0409
)

// MakeLangID packs a primary and sub-language.
func MakeLangID(primary, sub uint16) LangID {
	return LangID(sub<<10 | primary&0x3ff)
}

// Primary returns the primary language bits.
func (l LangID) Primary() uint16 {
	return uint16(l) & 0x3ff
}

// Sub returns the sub-language bits.
func (l LangID) Sub() uint16 {
	return uint16(l) >> 10
}

// Name returns the locale name for l, or "" when l has none.
func (l LangID) Name() string {
	return langNames[l]
}

// Tag returns l as a BCP 47 tag when l has a locale name.
func (l LangID) Tag() (language.Tag, bool) {
	t, ok := langTags[l]
	return t, ok
}

func (l LangID) String() string {
	if name := l.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("0x%04X", uint16(l))
}

// LangIDFromName maps a locale name such as "en-US" to its LangID.
// Names are compared in canonical BCP 47 form.
func LangIDFromName(name string) (LangID, bool) {
	t, err := language.Parse(name)
	if err != nil {
		return 0, false
	}
	l, ok := langByTag[t.String()]
	return l, ok
}

var langNames = map[LangID]string{
	0x0401: "ar-SA",
	0x0402: "bg-BG",
	0x0403: "ca-ES",
	0x0404: "zh-TW",
	0x0405: "cs-CZ",
	0x0406: "da-DK",
	0x0407: "de-DE",
	0x0408: "el-GR",
	0x0409: "en-US",
	0x040B: "fi-FI",
	0x040C: "fr-FR",
	0x040D: "he-IL",
	0x040E: "hu-HU",
	0x040F: "is-IS",
	0x0410: "it-IT",
	0x0411: "ja-JP",
	0x0412: "ko-KR",
	0x0413: "nl-NL",
	0x0414: "nb-NO",
	0x0415: "pl-PL",
	0x0416: "pt-BR",
	0x0418: "ro-RO",
	0x0419: "ru-RU",
	0x041A: "hr-HR",
	0x041B: "sk-SK",
	0x041D: "sv-SE",
	0x041E: "th-TH",
	0x041F: "tr-TR",
	0x0422: "uk-UA",
	0x0424: "sl-SI",
	0x0425: "et-EE",
	0x0426: "lv-LV",
	0x0427: "lt-LT",
	0x042A: "vi-VN",
	0x0804: "zh-CN",
	0x0807: "de-CH",
	0x0809: "en-GB",
	0x080A: "es-MX",
	0x080C: "fr-BE",
	0x0813: "nl-BE",
	0x0816: "pt-PT",
	0x0C07: "de-AT",
	0x0C09: "en-AU",
	0x0C0A: "es-ES",
	0x0C0C: "fr-CA",
	0x1009: "en-CA",
	0x100C: "fr-CH",
}

var (
	langTags  = make(map[LangID]language.Tag, len(langNames))
	langByTag = make(map[string]LangID, len(langNames))
)

func init() {
	for id, name := range langNames {
		t := language.MustParse(name)
		langTags[id] = t
		langByTag[t.String()] = id
	}
}
