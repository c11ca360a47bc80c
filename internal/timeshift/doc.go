// Package timeshift is the boundary between shiftdeck and the timeshift
// command-line tool.
//
// It owns three things:
//
//   - The Device and Snapshot records shown by the UI.
//   - The inventory parser, which turns the tool's tabular console output
//     into ordered record slices.
//   - The Client, which invokes the tool through a Runner and classifies the
//     outcome of every invocation.
//
// # Parsing
//
// timeshift prints a free-form header followed by a dashed separator and one
// row per record:
//
//	Num     Name                 Tags  Description
//	------------------------------------------------------------------------------
//	0    >  2024-01-01_00-00-00  O     before upgrade
//	1    >  2024-02-01_00-00-00  D
//
// Rows are split on runs of whitespace and mapped positionally. A row that
// cannot be mapped produces a *ParseError. In lenient mode (the default) the
// row is skipped and the error is returned as a warning; in strict mode the
// first malformed row aborts the parse.
//
// # Outcomes
//
// Every invocation ends in one of three ways:
//
//   - success: exit status 0
//   - *CommandError: the tool ran and reported failure (a domain error the
//     user can act on)
//   - *LaunchError: the tool could not be started or terminated abnormally
//     (an environment or integration fault)
//
// Callers distinguish them with errors.As.
package timeshift
