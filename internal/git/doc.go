// Package git wraps the git CLI for read-only repository inspection.
//
// All operations shell out to git with -C <dir> so no working
// directory changes are needed. The package never writes to a
// repository: it reads HEAD, branch lists, and commit logs, and
// probes directories for working trees.
package git
