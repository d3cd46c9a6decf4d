// Package environment resolves the APP_ENV setting and carries it through
// request contexts and log records.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	handler = environment.Middleware(env)(handler)
//
// LoggerExtractor plugs into logger.WithContextExtractors so that records
// written while serving a request carry an "env" attribute.
package environment
