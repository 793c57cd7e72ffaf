// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Commands run under a [context.Context]: cancellation kills the process and
// the context error is returned unchanged. Stderr is captured and used as the
// error message when a command fails, and every invocation is reported to the
// context logger (see [log.Logger.Command]) with its duration.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, "", "git", "-C", dir, "status", "--porcelain")
//	if err != nil {
//	    // err contains stderr output if available
//	}
//
// repodash shells out to the git CLI rather than using a Go git library so
// that fetch, push and pull honour the user's SSH keys, credential helpers and
// git configuration.
package cmd
