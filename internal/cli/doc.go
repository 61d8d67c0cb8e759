// Package cli turns command-line arguments into an app.Config and reports
// bad input as an ExitError with exit code 2.
package cli
