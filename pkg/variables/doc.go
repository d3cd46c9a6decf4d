// Package variables checks per-recipient variable maps against a snapshot's
// VariablesSchema before any rendering work starts.
//
// Strict mode rejects keys the schema does not declare, unless the schema
// sets additionalProperties. Permissive mode passes such keys through
// untouched. In both modes defaults fill keys that are entirely omitted and
// a missing required key is an error. Failures are returned as
// validator.ValidationErrors sorted by field, so Messages yields a stable
// "field: message" list.
package variables
