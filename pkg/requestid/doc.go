// Package requestid tags every HTTP request with an identifier that is
// echoed in the X-Request-ID response header, stored in the request
// context and attached to log records through LoggerExtractor.
package requestid
