// Package naming derives companion file names from source document names.
package naming

import (
	"strings"
)

// DefaultSourceExtension is the only document extension resolved by default
const DefaultSourceExtension = ".cs"

// Rule maps a set of type-name endings to the suffix of the companion type
type Rule struct {
	Endings   []string
	Companion string
}

// Convention derives companion file names. Rules are evaluated in order and
// the first one with a matching ending wins.
type Convention struct {
	SourceExtension string
	Rules           []Rule

	// ReplaceEnding substitutes the matched ending with the companion suffix
	// (OrderCommand -> OrderHandler) instead of appending it
	// (OrderCommand -> OrderCommandHandler).
	ReplaceEnding bool
}

// Default returns the CQRS and view-model convention:
// Command/Query/Request -> Handler, ViewModel/DataRecord -> Mapper
func Default() Convention {
	return Convention{
		SourceExtension: DefaultSourceExtension,
		Rules: []Rule{
			{Endings: []string{"Command", "Query", "Request"}, Companion: "Handler"},
			{Endings: []string{"ViewModel", "DataRecord"}, Companion: "Mapper"},
		},
	}
}

// TargetFilename computes the companion file name of document, which may be
// a bare file name or a full path; directories are ignored. It returns false
// when document does not carry the source extension; no target is computed
// in that case.
func (c Convention) TargetFilename(document string) (string, bool) {
	name := document[strings.LastIndexAny(document, `/\`)+1:]
	if c.SourceExtension == "" || !strings.HasSuffix(name, c.SourceExtension) {
		return "", false
	}

	base := BaseName(name)
	suffix, ending := c.match(base)
	if c.ReplaceEnding {
		base = strings.TrimSuffix(base, ending)
	}
	return base + suffix + c.SourceExtension, true
}

// Suffix returns the companion suffix for a type name, or "" if no rule
// applies.
func (c Convention) Suffix(name string) string {
	suffix, _ := c.match(name)
	return suffix
}

func (c Convention) match(name string) (suffix, ending string) {
	for _, rule := range c.Rules {
		for _, e := range rule.Endings {
			if e != "" && strings.HasSuffix(name, e) {
				return rule.Companion, e
			}
		}
	}
	return "", ""
}

// BaseName returns document up to its first '.', so "Order.Designer.cs"
// yields "Order".
func BaseName(document string) string {
	if i := strings.IndexByte(document, '.'); i >= 0 {
		return document[:i]
	}
	return document
}
