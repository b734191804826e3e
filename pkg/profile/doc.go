// Package profile reads and rewrites profile configuration files.
//
// A profile file is a flat, sectioned key/value file (each section is a
// profile) stored in UTF-16 by the application that owns it. The package
// decodes such files without losing a single byte, selects profiles in file
// order and rewrites path references by literal substitution, writing the
// result back in the encoding the file arrived in.
package profile
