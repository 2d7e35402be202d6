package ident

// cReservedWords is the C11 reserved-word set this front end tests
// produced identifiers against.
var cReservedWords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"_Alignas": true, "_Alignof": true, "_Atomic": true, "_Bool": true,
	"_Complex": true, "_Generic": true, "_Imaginary": true, "_Noreturn": true,
	"_Static_assert": true, "_Thread_local": true,
}

// cPseudoReservedWords is the optional extended set of names that, while
// not C keywords, are reserved by convention (standard-library symbols,
// common macros) and are rejected under the same collision rule when
// IsCReservedWord's includePseudo argument is set.
var cPseudoReservedWords = map[string]bool{
	"NULL": true, "bool": true, "exit": true, "malloc": true, "free": true,
	"true": true, "false": true, "alignas": true, "alignof": true,
	"complex": true, "imaginary": true, "noreturn": true, "main": true,
}

// IsCReservedWord reports whether name collides with a C11 reserved word,
// and, if includePseudo is set, with the pseudo-reserved extension set.
func IsCReservedWord(name string, includePseudo bool) bool {
	if cReservedWords[name] {
		return true
	}
	//
	return includePseudo && cPseudoReservedWords[name]
}
