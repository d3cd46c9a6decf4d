// Package plaintext builds the text/plain alternative of a rendered email.
//
// FromHTML walks the parsed document, writes visible text only, and wraps
// every line at 80 columns. Images never contribute text, not even their
// alt attribute. List items are prefixed with "* ".
package plaintext
