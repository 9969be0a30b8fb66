// Package scan discovers the files of a project and extracts the facts the
// dependency graph is built from.
//
// # Overview
//
// Scanning happens in two steps:
//
//  1. [Walk] lists every file and directory under a root, skipping hidden
//     entries and well-known build and dependency directories. The result is
//     the node inventory: each [Entry] carries a root-relative, forward-slash
//     ID such as "src/utils/date.ts".
//  2. [ParseFile] reads a file and returns its [Facts]: the line count plus
//     the import and export statements found by a line-oriented heuristic.
//
// [Scan] runs both steps, parsing files concurrently while preserving the
// walk order.
//
// # Extraction Heuristics
//
// The extractor does not build a syntax tree. It looks at one trimmed line at
// a time, skipping lines that start with "//", "/*" or "*":
//
//   - import lines ("import x from './y'") yield the first quoted string after
//     the last " from ", or in the whole line for side-effect imports
//   - lines containing "require(" yield the first quoted string after it
//   - export lines yield the exported name ("default" for default exports)
//
// Only JavaScript-family sources (.ts, .tsx, .js, .jsx, .mjs, .cjs, .vue)
// are searched for imports and exports. Multi-line import statements are
// not recognized.
//
// # Skipped Entries
//
// [Walk] never descends into entries whose name starts with "." or appears in
// [DefaultDenylist]. [Options.Ignore] adds names to that list, and
// [Options.Gitignore] additionally honors the root's .gitignore file.
//
// # Architecture Layers
//
// [HexLayer] classifies a path into a hexagonal-architecture role (driving,
// domain, application, driven) from keywords in the path. The classification
// is purely informational and is attached to output nodes.
package scan
