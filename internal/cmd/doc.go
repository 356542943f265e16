// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users.
//
// # Usage
//
//	// git selects its repository via -C, so dir stays empty:
//	if err := cmd.RunContext(ctx, "", "git", "-C", repoPath, "status"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git failed: %w", err)
//	}
//
//	// For commands that return output:
//	output, err := cmd.OutputContext(ctx, "", "git", "-C", repoPath, "branch")
//	if err != nil {
//	    // err contains stderr output
//	}
//
//	// dir sets the working directory for tools without a -C flag:
//	err := cmd.RunContext(ctx, buildDir, "make", "check")
//
// # Design Notes
//
// grepo shells out to the git CLI rather than using Go libraries.
// This approach is simpler, more reliable, and ensures compatibility with
// user configurations (SSH keys, credential helpers, etc.).
package cmd
