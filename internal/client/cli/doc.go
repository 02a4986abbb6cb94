// Package cli is the interactive Mercury volunteer console.
//
// The REPL reads one command per line. Account commands (register, verify,
// resend, reset-request, reset, login) work without a session; passwd and
// notifications need a successful login. A background watcher pings the
// server health service and reports when the console goes offline or comes
// back online.
package cli
