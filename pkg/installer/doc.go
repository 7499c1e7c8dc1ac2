// Package installer implements the deployment of a source directory of
// configuration files into a destination tree.
//
// A run has four phases: scan the source root and classify its
// children, build the flat list of planned operations, apply them
// through an executor, then run the one-time seed pass and ensure the
// fixed destination directories exist.
//
// The installer is fail-fast: the first filesystem error aborts the
// remaining work, and re-running is the recovery path. Apart from the
// seed pass, which copies a file at most once, every phase is
// idempotent.
package installer
