// Package registry collects node implementations from every library into
// one identifier→node table before any pipeline is compiled.
//
// Libraries are plain Go values implementing Library; they are compiled
// into the binary and registered at startup. After loading, Validate checks
// that every node's declared schema is internally consistent, preventing a
// class of wiring errors that would otherwise only surface at execution.
package registry
