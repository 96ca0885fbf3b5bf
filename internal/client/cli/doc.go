// Package cli provides the studynotes command-line client.
//
// Given a subcommand it runs once and exits:
//
//	studynotes register
//	studynotes upload notes.pdf Physics Optics
//	studynotes history
//	studynotes download report.pdf
//
// Without one it starts an interactive shell (see runREPL). Commands other
// than register and login need a session; the one-shot form logs in first,
// prompting for the password without echo.
package cli
