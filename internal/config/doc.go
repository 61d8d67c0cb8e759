// Package config defines the format-agnostic pipeline description consumed
// by the graph builder, along with the Loader interface implemented by
// concrete file formats.
//
// A Model is the compiled-graph descriptor: an ordered list of node
// instances with their constant overrides and outgoing links, where links
// address their targets by list index. Concrete loaders, such as the HCL one
// in internal/hcl, translate their own syntax into this model.
package config
