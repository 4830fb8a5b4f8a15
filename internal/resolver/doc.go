// Package resolver finds the companion file of a source document.
//
// A lookup runs in three steps:
//
//  1. The target file name is derived from the document with a
//     naming.Convention (OrderCommand.cs -> OrderCommandHandler.cs).
//  2. Every project reachable from the host's roots is enumerated with
//     forest.Enumerate, and each project's items are walked in post-order.
//     Each item is represented by its canonical path; paths that are empty
//     or end in one of the skip suffixes (.vcxproj, .vcxproj.filters by
//     default) are passed over in favor of the next one. Items whose path
//     has the target as base name become matches; folders are descended
//     but never matched.
//  3. Matches are deduplicated by full path, first seen wins, and the
//     result is dispatched: one match is opened, anything else reported.
//
// With Options.Workers > 1 projects are walked concurrently; the result is
// identical to the sequential walk.
package resolver
