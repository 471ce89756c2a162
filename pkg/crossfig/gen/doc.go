// Package gen resolves manifests and renders the outcome as Go source.
//
// Resolution and rendering are separate steps. A Resolver reduces a
// manifest to a Result: every alias fixed to a kind, every switch
// collapsed to its one surviving block. Render then produces gofmt'd
// files — a constants file for the aliases and one file per switch —
// and Write puts them on disk.
//
// Because unselected blocks are dropped before rendering, their
// contents never reach the Go parser: an arm whose block could never
// compile costs nothing unless it is selected.
package gen
