// Package resolve turns raw import strings into concrete graph node IDs.
//
// # Overview
//
// Import statements in JavaScript and TypeScript sources reference other
// files loosely: relative paths without extensions ("./utils"), directory
// imports that rely on index files ("../hooks"), or alias paths rooted at the
// project source directory ("@/components/Button"). This package bridges the
// gap between those strings and the normalized, forward-slash separated
// project-relative IDs used by [depgraph].
//
// Resolution happens in two steps:
//
//  1. [Resolve] converts a raw import into a candidate path, relative to the
//     importing file's directory (or to "src/" for alias imports).
//  2. [Match] maps the candidate onto a known node ID by probing the
//     extension and index-file conventions in [Suffixes], in order.
//
// Bare package imports ("react", "lodash") are not internal and are filtered
// out with [IsInternal] before resolution.
//
// Both steps are pure string manipulation. Nothing in this package touches
// the filesystem.
//
//	cand := resolve.Resolve("src/components/Button.tsx", "../utils/helpers")
//	// cand == "src/utils/helpers"
//	id, ok := resolve.Match(cand, known)
//	// id == "src/utils/helpers.ts" when that file is known
//
// [depgraph]: github.com/matzehuels/depflow/pkg/depgraph
package resolve
