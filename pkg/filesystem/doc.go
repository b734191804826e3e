// Package filesystem provides filesystem implementations for codeplex.
//
// The FS interface covers what the core needs to resolve, copy, rewrite and
// delete trees. NewOS is the real filesystem; NewAferoFS adapts any afero.Fs,
// which lets tests run whole provisioning transactions in memory.
package filesystem
