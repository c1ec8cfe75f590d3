// Package model defines the inputs every widget builder and processor shares:
// the per-field Attributes produced by an inspection step, the build pass
// Context carrying the object under inspection, and the Inspector contract
// used to resolve attributes for a property path. Attribute values are always
// strings; flags compare against the literal "true" so an absent or malformed
// key simply fails to match a rule.
package model
