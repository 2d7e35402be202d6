// Package lexconf holds the lexer's build-time limits as constants. These
// are not user-configurable: they bound the lexer's internal buffers and
// recursion depth, and changing them is a recompilation, not a runtime
// option.
package lexconf

// MaxIdentLength is the longest identifier the lexer will accumulate before
// truncating and reporting it as oversized.
const MaxIdentLength = 32

// MaxCommentNesting is the deepest level of (* ... (* ... *) ... *) nesting
// the lexer will track before giving up and reporting unterminated comment
// nesting.
const MaxCommentNesting = 10

// MaxStringLength is the longest string or character literal the lexer will
// accumulate before reporting it as oversized; it matches strpool.MaxLength
// so that every literal the lexer accepts is internable without further
// truncation.
const MaxStringLength = 2000
