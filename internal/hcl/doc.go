// Package hcl implements config.Loader for pipelines written in HCL.
//
// A pipeline file contains node blocks, labelled with a unique name and the
// identifier of the node implementation, and optional environment blocks:
//
//	environment {
//	  detector_rows = 2
//	}
//
//	node "gen" "synthetic_signal" {
//	  constants {
//	    frames = 100
//	  }
//	  externally_linked = ["amplitude"]
//
//	  link {
//	    output = "signal"
//	    target = "cut"
//	    input  = "signal"
//	  }
//	}
//
// Nodes are numbered in the order they appear, across files in the order
// the files were discovered. Link targets are resolved from names to those
// numbers.
package hcl
