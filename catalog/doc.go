// Package catalog resolves {field} references inside TOML documents.
//
// A document is a set of sections (top-level tables). A string field of a
// section may embed references to other fields of the same section:
//
//	[greeter]
//	name = "world"
//	greeting = "hello {name}"
//	banner = "{greeting}, {count} times"
//	count = 3
//
// After resolution every string field is literal text:
//
//	greeting = "hello world"
//	banner   = "hello world, 3 times"
//
// # References
//
// A reference is a '{', a non-empty name, and a '}'. The name is every byte
// between the braces. References never cross section boundaries, and there
// is no escape syntax. A '}' that does not close a reference is literal.
//
// Only scalar fields (string, integer, float, boolean) can be referenced.
// Integers render in decimal, booleans as true or false, and floats in plain
// decimal notation with the fewest digits that round-trip (inf, -inf, and
// nan for non-finite values).
//
// The field names STRING and NUMBER are reserved; a section that defines
// either is rejected even if nothing references it.
//
// # Resolution
//
// Within a section, references form a directed graph over field names.
// Shared dependencies are allowed; cycles, including a field that
// references itself, are an error naming the fields involved. The result
// does not depend on the order in which fields or sections are visited.
//
// Sections are independent. [Resolve] processes them one at a time in sorted
// order by default, or in parallel with [WithConcurrency].
//
// # Errors
//
// Every error matches one of the package's sentinel values with
// [errors.Is]. The location of the failure is part of the message and is
// also attached as [log/slog] attributes.
package catalog
