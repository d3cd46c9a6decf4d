// Package interpolate fills {{name}} placeholders in compiled HTML, subject
// lines and preheaders using logic-only mustache templates. Missing names
// never fail a render; they produce an empty string.
package interpolate
