// Package validator builds declarative validation out of small Rule values.
//
// Each rule pairs a Check with the ValidationError reported when the check
// fails. Apply evaluates rules in order and returns ValidationErrors, which
// implements error and matches ErrValidationFailed with errors.Is.
//
//	err := validator.Apply(
//		validator.Required("to", p.To),
//		validator.ValidEmail("to", p.To),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		for _, msg := range verrs.Sorted().Messages() {
//			// "to: must be a valid email address"
//		}
//	}
//
// Callers with domain-specific checks construct Rule literals directly.
package validator
