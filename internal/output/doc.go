// Package output provides structured output and error handling for the postsync CLI.
//
// Every command writes through a Printer, which renders either styled text
// for humans or JSON for scripts and agents:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.KeyValue("Source", cand.Rel)
//	printer.Warn("git step skipped: %v", err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: Bad configuration or arguments
//	output.ExitSystemError // 2: I/O or git failure
//	output.ExitNoSource    // 3: Export holds no usable post file
//
// Errors built with NewUserError, NewSystemError, NewSystemErrorWithCause and
// NewNoSourceError carry their exit code; GetExitCode recovers it from any
// wrapped error chain.
package output
