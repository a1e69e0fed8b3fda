// Package resource defines the value types shared by every layer of winres.
//
// A resource embedded in a module is addressed by a three-part coordinate:
//
//	type     - an ID, usually one of the well-known tags (STRING, ICON, VERSION ...)
//	name     - an ID chosen by the module author
//	language - a LangID (primary and sub-language packed into 16 bits)
//
// # Identifiers
//
// An ID is either numeric or named, never both:
//
//	resource.Num(6)             // numeric, same as resource.String.ID()
//	resource.Name("greeting")   // named, stored as "GREETING"
//
// Names compare case-insensitively, so IDs can be used directly as map keys.
// A numeric ID never equals a named one, even when the name spells the number.
//
// # Well-known types
//
// The WellKnown constants carry the host platform's fixed numeric values.
// The sequence has gaps (13, 15, 18) that are part of the binary contract.
//
// # Handle Table
//
// Hosts hand out opaque Handles through a Table:
//
//	table := resource.NewTable()
//	h, err := table.Insert(key, hostValue)
//
//	// Retrieve the host value
//	value, ok := table.Get(h)
//
//	// Unloading the module invalidates every handle at once
//	table.Close()
//
// Handles carry the identity of the table that issued them, so a handle
// presented to a different module, or to a module that has been unloaded,
// is rejected instead of being dereferenced.
package resource
