// Package langpref manages ordered preferred UI language lists.
//
// The host platform keeps one such list per thread and consults it when a
// resource is located without an explicit language. Goroutines do not map to
// threads, so this package makes the state explicit: a Thread value holds one
// list, and NewContext threads a list through call paths that need the
// fallback search.
//
//	prefs := langpref.NewThread()
//	if err := prefs.Set([]string{"fr-FR", "en-US"}); err != nil {
//	    // errors.ErrInvalidLanguageTag, prefs unchanged
//	}
//	langs, _ := prefs.Get()
//	ctx = langpref.NewContext(ctx, langs)
//
// On Windows, OSThread exposes the real per-thread list of the calling OS
// thread. Pin the goroutine with runtime.LockOSThread before using it.
package langpref
