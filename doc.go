package reshape

// Package reshape provides:
//
// - A declarative object-transformation engine: named Entities hold field
//   rules that derive, default, nest, and coerce output fields from an input
//   record (Parse)
// - A named converter Registry (number/date/string/boolean/any built in,
//   extensible and retractable at runtime) applied uniformly to scalars and
//   arrays
// - A frozen/extend definition lifecycle: a frozen Entity is immutable and is
//   varied only by cloning into a new mutable Entity
//
// Design policy:
// - Keep only public APIs in the root package; put leaf utilities under internal/.
// - Place optional converters under codec/, callback helpers under rules/,
//   file-based definition loading under specfile/, and the CLI under cmd/reshape.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  user := reshape.New("user")
//  _ = user.Expose("id", reshape.Type("number"))
//  _ = user.Expose("surname", reshape.As("lastName"))
//  out, err := user.Parse(record)
//
// Parse never fails because of bad data in a single field; per-field errors
// are contained and logged. It fails only for structurally unknown converter
// types, which indicate a programming error rather than bad input.
