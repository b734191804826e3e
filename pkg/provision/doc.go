// Package provision runs the provisioning transaction that duplicates an
// installation.
//
// A run moves through a fixed sequence of states:
//
//	Idle -> Resolving -> Copying -> Rewriting -> Committed
//
// with RolledBack reachable from Copying and Rewriting. Resolving has no
// side effects, so a failure there ends the run as Aborted without any
// cleanup. Every copy that creates something pushes an action onto a
// rollback stack. A failure while copying or rewriting unwinds that stack,
// newest first, and the run returns the error that triggered the rollback.
// Failures of the rollback itself are recorded on the Result and never
// replace the triggering error.
//
// Copying the program tree and the data tree, and rewriting the profile
// file, are delegated to the Replicator and Rewriter interfaces so that
// failures can be injected in tests.
package provision
