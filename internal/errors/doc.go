// Package errors provides structured, actionable errors for EventConnect.
//
// Form validation never uses this package: validation failures are reported
// through a dialog's error map. Structured errors cover everything around the
// forms that can genuinely fail:
//
//   - config: the eventconnect.json file or environment overrides are invalid
//   - rules: a dialog rule set references unknown fields or modes
//   - upload: an image could not be read, is too large or is not an image
//   - navigation: a page id is not routable
//   - cli: a command received unusable arguments
//
// # Error Codes
//
// Each error has a code (e.g., "E101") that maps to a short message and a
// longer explanation:
//
//	err := errors.New("E101").
//	    WithDetail("locale must be one of en es").
//	    WithSuggestion(`Set "locale": "en" in eventconnect.json`)
//
//	fmt.Println(err.Format())
package errors
