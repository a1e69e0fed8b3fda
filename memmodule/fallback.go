package memmodule

import (
	"slices"

	"golang.org/x/text/language"

	"github.com/enovales/winres/resource"
)

// SelectLanguage picks one of the available languages the way the host
// platform's fallback search does:
//
//  1. for each preference in order, an exact match, then any variant with
//     the same primary language;
//  2. the language-neutral variant;
//  3. English (United States);
//  4. the lowest LANGID present.
//
// avail must not be empty. Unparseable preferences are skipped.
func SelectLanguage(avail []resource.LangID, prefs []string) resource.LangID {
	sorted := slices.Clone(avail)
	slices.Sort(sorted)

	for _, p := range prefs {
		if l, ok := matchPreference(sorted, p); ok {
			return l
		}
	}
	if slices.Contains(sorted, resource.LangNeutral) {
		return resource.LangNeutral
	}
	if slices.Contains(sorted, resource.LangEnglishUS) {
		return resource.LangEnglishUS
	}
	return sorted[0]
}

func matchPreference(sorted []resource.LangID, pref string) (resource.LangID, bool) {
	tag, err := language.Parse(pref)
	if err != nil {
		return 0, false
	}

	id, known := resource.LangIDFromName(pref)
	if known && slices.Contains(sorted, id) {
		return id, true
	}

	base, _ := tag.Base()
	for _, l := range sorted {
		if l == resource.LangNeutral {
			continue
		}
		if known && l.Primary() == id.Primary() {
			return l, true
		}
		if lt, ok := l.Tag(); ok {
			if b, _ := lt.Base(); b == base {
				return l, true
			}
		}
	}
	return 0, false
}
