// Package errors provides structured, actionable error messages for vbind.
//
// Every failure that leaves the compiler, the CLI or the preview server is
// a *Error carrying a stable code, a category, a short message and, where
// it helps, the node the failure happened on and a hint on how to fix it.
//
// # Error Categories
//
// Errors are organized into categories:
//   - resolve: a directive or interpolation expression could not be resolved
//   - mount: the compile target could not be determined
//   - template: template markup could not be parsed or rendered
//   - runtime: the compile pass was interrupted
//   - config: configuration could not be loaded or is invalid
//   - source: template or data sources could not be fetched or decoded
//
// # Error Codes
//
// Each error has a unique code (e.g., "E001") that maps to a short message,
// a detailed explanation and a documentation URL.
//
// # Usage
//
//	err := errors.New("E001").
//	    WithNode("html > body > div#app > p").
//	    WithExpr("user.name").
//	    Wrap(resolveErr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Path segment not found
//	//
//	//   at html > body > div#app > p
//	//   expression: user.name
//	//
//	//   A segment of the expression names a key, field or index that
//	//   does not exist in the view-model data.
//	//
//	//   Learn more: https://vbind.dev/docs/errors/E001
package errors
