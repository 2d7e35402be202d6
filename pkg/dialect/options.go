// Package dialect carries the small set of parser-relevant PIM dialect
// switches as a single immutable value, constructed once by the caller and
// threaded through the lexer and parser rather than stored as global state.
package dialect

// Options selects among the PIM-2/3/4 dialect variations this front end
// accepts. The zero value is the strictest dialect: no extensions enabled.
type Options struct {
	// ConstParameters allows CONST-qualified formal parameters, a PIM-4
	// addition absent from PIM-2/3.
	ConstParameters bool

	// VariantRecords allows the CASE ... OF tag field variant inside a
	// RECORD type, a feature some PIM-2 dialects dropped.
	VariantRecords bool

	// ErrantSemicolon tolerates a semicolon immediately preceding END, ELSE,
	// ELSIF or UNTIL rather than treating it as a syntax error, matching
	// common compiler leniency for a frequent typo.
	ErrantSemicolon bool

	// LexicalSynonyms enables the lexer-level synonyms '&' for AND and '~'
	// for NOT alongside their canonical spellings. '<>' is always scanned as
	// NotEqual, whatever this flag says.
	LexicalSynonyms bool
}

// Strict returns the zero-value Options: no dialect extension enabled.
func Strict() Options {
	return Options{}
}

// PIM4 returns the Options set matching the PIM-4 dialect: const parameters
// and lexical synonyms enabled, variant records and the errant-semicolon
// tolerance left off.
func PIM4() Options {
	return Options{
		ConstParameters: true,
		LexicalSynonyms: true,
	}
}
