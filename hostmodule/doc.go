// Package hostmodule binds the module contract to the Windows loader.
//
// Open maps an image as a resource-only data file, so resources can be read
// from any executable or library without running its code. FromHandle wraps
// a module the process already has loaded and never frees it.
//
// Enumeration goes through EnumResourceTypesW, EnumResourceNamesW and
// EnumResourceLanguagesW. Each callback trampoline is created once for the
// process; per-call state is routed through the lParam slot and looked up in
// a registry, so no Go pointer ever crosses into kernel32.
//
// On other platforms Open reports errors.ErrUnsupported.
package hostmodule
