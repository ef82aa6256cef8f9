package parser

import "github.com/chcg/jsonql/pkg/types"

func newError(format string, a ...interface{}) *types.Error {
	return types.Parsef(format, a...)
}

// newIndexingError builds the indexing-kind error for the homogeneity and
// recursion-support violations the parser itself can detect statically
// (mixed bracket entry kinds, recursive slicing, recursive boolean
// indexing) per the error taxonomy's distinction between a malformed
// token sequence and a structurally invalid indexer.
func newIndexingError(c *cursor, format string, a ...interface{}) *types.Error {
	return types.Indexingf(format, a...).WithToken(c.tok.Value, c.tok.Position)
}
