// Package graph owns a pipeline's node objects, the memo table of values
// produced during an execution, and the scheduler that runs them.
//
// # Responsibilities
//
// Storage is the single source of truth for one compiled pipeline:
//   - **Structure:** the ordered node objects and their input links
//   - **State:** the nets table mapping (node, output port) to the value
//     produced in the current execution, and the execution's environment
//
// # Execution
//
// Execute runs in two phases. Planning walks backwards from every primary
// node with a depth-first search, marking nodes unvisited, in progress or
// done. Reaching a node that is still in progress is a cycle; a node with an
// unresolved input fails with NotConnected. Both are reported before any
// node runs. The post-order of that walk is a topological order of exactly
// the nodes some primary node depends on, so unreachable nodes are never
// calculated.
//
// Running then calls each node in order, one at a time, feeding it the
// upstream values from the nets table and storing what it produces. The
// first failure stops the run; the nets table keeps whatever was computed
// before it.
//
// # Thread-Safety
//
// Storage is not safe for concurrent use. A run is synchronous; nodes that
// parallelize internally do so inside their own Calculate call.
package graph
