// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package ident implements the deterministic Modula-2 → C identifier
// mapping: a pure function of (mode, identifier, context) in two styles,
// verbatim and C-idiomatic, with collision avoidance against C reserved
// words and a small set of reserved qualifier roots this front end's own
// naming conventions use as prefixes.
package ident

import (
	"fmt"
	"strings"

	"github.com/trijezdci/m2c/pkg/hashkey"
)

// Mode selects between the two conversion styles.
type Mode int

// The two conversion modes.
const (
	Verbatim Mode = iota
	CStyle
)

// Role distinguishes the C declaration kind a mangled name is produced for,
// since it changes both casing (CStyle) and suffix rules.
type Role int

// The roles this front end mangles names for.
const (
	RoleConst Role = iota
	RoleType
	RoleVar
	RoleFunction
)

// reservedQualifierRoots is the set of prefix words this front end's own
// generated names use as qualifiers; a source module name colliding with
// one of these, compared case-insensitively, must be replaced rather than
// used as a prefix.
var reservedQualifierRoots = map[string]bool{
	"builtin": true,
	"local":   true,
	"private": true,
	"var":     true,
}

// ResolveModuleQualifier returns moduleName unchanged unless it collides,
// case-insensitively, with a reserved qualifier root, in which case it
// returns the fixed replacement form MOD__<4hex>, the hex digits being the
// low 16 bits of the lower-cased module name's hash — deterministic, not
// random, and identical for every casing of the same root.
func ResolveModuleQualifier(moduleName string) string {
	if !reservedQualifierRoots[strings.ToLower(moduleName)] {
		return moduleName
	}
	//
	h := hashkey.String(strings.ToLower(moduleName))
	//
	return fmt.Sprintf("MOD__%04X", uint16(h))
}

// breakCollisionWrongCase prepends a case-mismatch collision breaker: names
// expected to start uppercase that start lowercase (or vice versa) get an
// "x_"/"X_" prefix so the two never collide after case-folding.
func breakCollisionWrongCase(name string, expectUpper bool) string {
	if name == "" {
		return name
	}
	//
	startsUpper := name[0] >= 'A' && name[0] <= 'Z'
	//
	if expectUpper && !startsUpper {
		return "x_" + name
	}
	//
	if !expectUpper && startsUpper {
		return "X_" + name
	}
	//
	return name
}

// suffixIfReserved appends a trailing underscore if name collides with a C
// reserved word (local-variable collision rule in both modes).
func suffixIfReserved(name string) string {
	if IsCReservedWord(name, false) {
		return name + "_"
	}
	//
	return name
}

// --- Verbatim mode ---

// IncludeGuardVerbatim renders MODULE__<id>__H.
func IncludeGuardVerbatim(moduleIdent string) string {
	name := breakCollisionWrongCase(moduleIdent, true)
	//
	return NewBuffer(MaxMacroLength).Append("MODULE__").Append(name).Append("__H").String()
}

// PublicNameVerbatim renders <module>__<id>.
func PublicNameVerbatim(module, id string) string {
	module = ResolveModuleQualifier(module)
	//
	return NewBuffer(MaxIdentLength).Append(module).Append("__").Append(id).String()
}

// PrivateNameVerbatim renders Private__<id>.
func PrivateNameVerbatim(id string) string {
	return NewBuffer(MaxIdentLength).Append("Private__").Append(id).String()
}

// LocalNonVarNameVerbatim renders Local__<outer>__<id>.
func LocalNonVarNameVerbatim(outer, id string) string {
	return NewBuffer(MaxIdentLength).Append("Local__").Append(outer).Append("__").Append(id).String()
}

// LocalVarNameVerbatim renders <id>, suffixed with '_' if id collides with a
// C reserved word.
func LocalVarNameVerbatim(id string) string {
	return suffixIfReserved(id)
}

// --- C-style mode ---

// splitWords breaks a Modula-2 identifier into its constituent words at
// lower→upper transitions, ALLCAPS→CamelCase boundaries, uppercase-digit→
// lowercase transitions, and explicit underscores.
func splitWords(id string) []string {
	var (
		words []string
		cur   []byte
	)
	//
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	//
	isUpper := func(b byte) bool { return b >= 'A' && b <= 'Z' }
	isLower := func(b byte) bool { return b >= 'a' && b <= 'z' }
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	//
	for i := 0; i < len(id); i++ {
		c := id[i]
		//
		if c == '_' {
			flush()
			continue
		}
		//
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			//
			switch {
			case isLower(prev) && isUpper(c):
				flush()
			case isUpper(prev) && isUpper(c) && i+1 < len(id) && isLower(id[i+1]):
				flush()
			case isDigit(prev) && (isUpper(c) || isLower(c)):
				flush()
			case (isUpper(prev) || isLower(prev)) && isDigit(c):
				flush()
			}
		}
		//
		cur = append(cur, c)
	}
	//
	flush()
	//
	return words
}

func joinLower(words []string) string {
	buf := NewBuffer(MaxIdentLength)
	//
	for i, w := range words {
		if i > 0 {
			buf.Append("_")
		}
		//
		buf.AppendLower(w)
	}
	//
	return buf.String()
}

func joinUpper(words []string) string {
	buf := NewBuffer(MaxMacroLength)
	//
	for i, w := range words {
		if i > 0 {
			buf.Append("_")
		}
		//
		buf.AppendUpper(w)
	}
	//
	return buf.String()
}

// IncludeGuardCStyle renders <UPPER_ID>_H.
func IncludeGuardCStyle(moduleIdent string) string {
	return joinUpper(splitWords(moduleIdent)) + "_H"
}

// PublicConstCStyle renders <UPPER_MOD>__<UPPER_ID>, with a trailing
// underscore if the source identifier ends in 'H' (the hex-literal suffix,
// whose mangled form would otherwise look like a second include guard).
func PublicConstCStyle(module, id string) string {
	name := joinUpper(splitWords(ResolveModuleQualifier(module))) + "__" + joinUpper(splitWords(id))
	//
	if len(id) > 0 && id[len(id)-1] == 'H' {
		name += "_"
	}
	//
	return name
}

// PublicTypeCStyle renders <lower_mod>__<lower_id>_t.
func PublicTypeCStyle(module, id string) string {
	return joinLower(splitWords(ResolveModuleQualifier(module))) + "__" + joinLower(splitWords(id)) + "_t"
}

// PublicVarOrFuncCStyle renders <lower_mod>__<lower_id>, with a trailing
// underscore if the source identifier ends in 'T' (the type-suffix
// convention, to avoid a spurious collision with the _t type-name form).
func PublicVarOrFuncCStyle(module, id string) string {
	name := joinLower(splitWords(ResolveModuleQualifier(module))) + "__" + joinLower(splitWords(id))
	//
	if len(id) > 0 && id[len(id)-1] == 'T' {
		name += "_"
	}
	//
	return name
}

// PrivateCStyle renders PRIVATE__<UPPER_ID> or private__<lower_id>
// depending on role.
func PrivateCStyle(id string, role Role) string {
	words := splitWords(id)
	//
	if role == RoleConst {
		return "PRIVATE__" + joinUpper(words)
	}
	//
	suffix := ""
	if role == RoleType {
		suffix = "_t"
	}
	//
	return "private__" + joinLower(words) + suffix
}

// LocalCStyle renders LOCAL__<ENCLOSING>__<UPPER_ID> or
// local__<enclosing>__<lower_id>, depending on role; if enclosing is empty
// (the enclosing function's name is unavailable), a base-16 hash of id
// itself stands in for <enclosing>, per the fallback rule.
func LocalCStyle(enclosing, id string, role Role) string {
	if enclosing == "" {
		enclosing = fmt.Sprintf("%X", uint32(hashkey.String(id)))
	}
	//
	words := splitWords(id)
	//
	if role == RoleConst {
		return "LOCAL__" + joinUpper(splitWords(enclosing)) + "__" + joinUpper(words)
	}
	//
	suffix := ""
	if role == RoleType {
		suffix = "_t"
	}
	//
	return "local__" + joinLower(splitWords(enclosing)) + "__" + joinLower(words) + suffix
}

// LocalVarCStyle renders <lower_id>, suffixed with '_' if the produced name
// collides with a C reserved word.
func LocalVarCStyle(id string) string {
	return suffixIfReserved(joinLower(splitWords(id)))
}
