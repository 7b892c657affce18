package syntax

import (
	"fmt"
	"strings"
)

// Kind classifies a span of text. Definitions assign kinds to their rules;
// the engine itself only ever produces Plain and Keyword on its own.
type Kind uint8

const (
	Plain Kind = iota
	Comment
	DocComment
	String
	Number
	Function
	Symbol
	Keyword
	Type
	Meta // Preprocessor directives, headings, and the like
)

var kindNames = [...]string{
	Plain:      "plain",
	Comment:    "comment",
	DocComment: "doccomment",
	String:     "string",
	Number:     "number",
	Function:   "function",
	Symbol:     "symbol",
	Keyword:    "keyword",
	Type:       "type",
	Meta:       "meta",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind name from a definition file.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == strings.ToLower(name) {
			return Kind(k), nil
		}
	}
	return Plain, fmt.Errorf("unknown highlight kind %q", name)
}

// A PatternRule classifies a single-line token matched by a compiled Pattern.
type PatternRule struct {
	Kind    Kind
	Pattern *Pattern
}

// A RangeRule describes a region bounded by start and end delimiters, like a
// quoted string or a block comment. An End of "\n" closes at the end of the
// line, so such a range never carries over to the next line. An Escape rune
// makes the following rune inert, including the end delimiter and the escape
// rune itself. When MaxLength is positive, a candidate region whose body
// exceeds it is not a match at all.
type RangeRule struct {
	Kind      Kind
	Start     string
	End       string
	Escape    rune // 0 for none
	MaxLength int  // 0 for unlimited

	start, end []rune
}

// A LangServer describes how to launch a language server for a language.
// The engine passes it through to the LSP client verbatim and never
// interprets any field.
type LangServer struct {
	Command  string
	Protocol string
	Options  map[string]string
}

// A Language is a compiled, immutable definition. Languages are shared
// read-only between every document that uses them; nothing may mutate one
// after CompileLanguage returns it.
type Language struct {
	Name          string
	Extensions    []string // ".go", ".c", etc.
	IndentWidth   int
	SoftTabs      bool   // Indent with spaces instead of hard tabs
	CommentLeader string // Line comment leader, e.g. "//"
	Keywords      map[string]struct{}
	Patterns      []PatternRule // Tried in order after ranges
	Ranges        []RangeRule   // Tried in order, before everything else
	Server        *LangServer
}

// HasKeyword reports whether word is a keyword of the language. Matching is
// case-sensitive.
func (l *Language) HasKeyword(word string) bool {
	_, ok := l.Keywords[word]
	return ok
}

// PlainText is the fallback language: no rules, every rune Plain. It is what
// documents get when no registered language matches.
var PlainText = &Language{
	Name:        "Plain Text",
	IndentWidth: 4,
}

// RawLanguage is the uncompiled shape of a definition, as produced by the
// YAML loader or written out literally for the built-in languages.
type RawLanguage struct {
	Name        string     `yaml:"name"`
	Extensions  []string   `yaml:"extensions"`
	IndentWidth int        `yaml:"indentWidth"`
	SoftTabs    bool       `yaml:"softTabs"`
	Comment     string     `yaml:"comment"`
	Keywords    []string   `yaml:"keywords"`
	Tokens      []RawToken `yaml:"tokens"`
	Ranges      []RawRange `yaml:"ranges"`
	Server      *RawServer `yaml:"server"`
}

type RawToken struct {
	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind"`
}

type RawRange struct {
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Escape    string `yaml:"escape"`
	MaxLength int    `yaml:"maxLength"`
	Kind      string `yaml:"kind"`
}

type RawServer struct {
	Command  string            `yaml:"command"`
	Protocol string            `yaml:"protocol"`
	Options  map[string]string `yaml:"options"`
}

// CompileLanguage validates and compiles a raw definition. A single bad rule
// rejects the whole definition: a partial rule set would highlight
// misleadingly, which is worse than not highlighting at all.
func CompileLanguage(raw *RawLanguage) (*Language, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("language definition has no name")
	}

	lang := &Language{
		Name:          raw.Name,
		Extensions:    append([]string(nil), raw.Extensions...),
		IndentWidth:   raw.IndentWidth,
		SoftTabs:      raw.SoftTabs,
		CommentLeader: raw.Comment,
		Keywords:      make(map[string]struct{}, len(raw.Keywords)),
	}
	if lang.IndentWidth <= 0 {
		lang.IndentWidth = 4
	}

	for _, kw := range raw.Keywords {
		lang.Keywords[kw] = struct{}{}
	}

	for i, rr := range raw.Ranges {
		kind, err := ParseKind(rr.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: range %d: %w", raw.Name, i, err)
		}
		if rr.Start == "" || rr.End == "" {
			return nil, fmt.Errorf("%s: range %d: start and end are required", raw.Name, i)
		}
		var escape rune
		if rr.Escape != "" {
			escape = []rune(rr.Escape)[0]
		}
		lang.Ranges = append(lang.Ranges, RangeRule{
			Kind:      kind,
			Start:     rr.Start,
			End:       rr.End,
			Escape:    escape,
			MaxLength: rr.MaxLength,
			start:     []rune(rr.Start),
			end:       []rune(rr.End),
		})
	}

	for i, rt := range raw.Tokens {
		kind, err := ParseKind(rt.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: token %d: %w", raw.Name, i, err)
		}
		pat, err := CompilePattern(rt.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: token %d: %w", raw.Name, i, err)
		}
		lang.Patterns = append(lang.Patterns, PatternRule{Kind: kind, Pattern: pat})
	}

	if raw.Server != nil {
		lang.Server = &LangServer{
			Command:  raw.Server.Command,
			Protocol: raw.Server.Protocol,
			Options:  raw.Server.Options,
		}
	}

	return lang, nil
}
