// Package resdir walks a module's resource directory.
//
// Each level of the type → name → language tree is visited with the same
// contract: the visitor is called once per child, synchronously on the
// caller's goroutine, and returns an Action.
//
//	outcome, err := resdir.EnumerateTypes(mod, func(m winres.Module, typ resource.ID) (resdir.Action, error) {
//	    types = append(types, typ)
//	    return resdir.Continue, nil
//	})
//
// Returning Stop ends the walk. The call then reports Outcome Stopped with a
// nil error: stopping is not a failure. A visitor error also ends the walk and
// is returned unchanged. Whatever the visitor accumulated before stopping or
// failing stays with the visitor; the Collect helpers return those partial
// results next to the error.
//
// Order between siblings is whatever the host yields. Each child is visited
// at most once per call.
//
// Range-over-func forms are available for callers that prefer iteration:
//
//	for typ, err := range resdir.Types(mod) {
//	    if err != nil { ... }
//	}
package resdir
