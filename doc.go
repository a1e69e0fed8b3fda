// Package winres enumerates and retrieves resources embedded in loaded
// executable or library modules.
//
// A module's resource directory is a fixed three-level tree:
//
//	type ─┬─ name ─┬─ language → bytes
//	      │        └─ language → bytes
//	      └─ name ─── language → bytes
//
// The root package holds the Module contract that host bindings implement.
// Traversal and retrieval are layered on top of it.
//
// # Architecture Overview
//
//	winres/          Root package with the Module, Directory and Locator interfaces
//	├── resource/    Identifiers, well-known types, LANGIDs and the handle table
//	├── resdir/      Directory walker: types → names → languages with early stop
//	├── loader/      Find, SizeOf and Load with read-only byte views
//	├── langpref/    Preferred UI language lists and their validation
//	├── memmodule/   In-memory module with the platform fallback search
//	├── hostmodule/  Windows kernel32 binding
//	├── strtable/    RT_STRING block codec
//	├── config/      Command-line configuration
//	└── errors/      Structured error types
//
// # Quick Start
//
// Walk every resource and read one back:
//
//	mod, err := hostmodule.Open(`C:\Windows\System32\shell32.dll`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mod.Close()
//
//	types, err := resdir.CollectTypes(mod)
//	...
//	h, err := loader.FindLanguage(mod, resource.Version.ID(), resource.Num(1), 0x0409)
//	view, err := loader.Load(mod, h)
//	data, err := view.Copy()
//
// Omitting the language defers to the fallback search, parameterized by the
// preference list carried in the context:
//
//	ctx = langpref.NewContext(ctx, []string{"fr-FR", "en-US"})
//	h, err := loader.Find(ctx, mod, resource.String.ID(), resource.Num(1))
//
// # Thread Safety
//
// Enumeration and retrieval only read the module and may run concurrently
// against the same Module. The caller must keep the module loaded for as long
// as any Handle or View derived from it is in use.
package winres
