// Package property reads, writes and invokes named properties on the object
// bound to a form. Targets may be maps keyed by string, structs, or pointers
// to either. Struct fields resolve by json tag, then by exact field name,
// then case-insensitively. Writes are weakly typed: the string collected from
// a widget is decoded into the destination field's type.
package property
