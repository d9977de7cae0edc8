// Package engine turns reads into seed hits against a restored reference:
// super-maximal exact matches from the FM-index, located through the
// sampled suffix array and folded back onto contig coordinates.
//
// It never imports app, writers, cli, or pipeline; keep it domain-only.
// External outputs must not depend on the internal shape here; use pkg/api
// for stable wire types.
package engine
