package syntax

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnknownLanguage is returned when no registered definition matches a
// requested name or file name. Callers should fall back to PlainText
// instead of failing to open the document.
var ErrUnknownLanguage = errors.New("unknown language")

// A Registry is a lookup table of compiled languages, populated at startup
// and read-only afterwards. The zero value is not usable; use NewRegistry.
type Registry struct {
	langs  []*Language
	byName map[string]*Language
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Language)}
}

// DefaultRegistry returns a registry with the built-in languages registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, raw := range builtinLanguages {
		lang, err := CompileLanguage(raw)
		if err != nil {
			panic(err) // A built-in definition is a programming error
		}
		reg.Register(lang)
	}
	return reg
}

// Register adds a language. A language with the same name replaces the
// earlier registration; extension lookups prefer later registrations, so
// user definitions can shadow built-ins.
func (reg *Registry) Register(lang *Language) {
	reg.langs = append(reg.langs, lang)
	reg.byName[strings.ToLower(lang.Name)] = lang
}

// ByName finds a language by its definition name, case-insensitively.
func (reg *Registry) ByName(name string) (*Language, error) {
	if lang, ok := reg.byName[strings.ToLower(name)]; ok {
		return lang, nil
	}
	return nil, ErrUnknownLanguage
}

// ByFilename finds the language whose extensions match the file name.
func (reg *Registry) ByFilename(path string) (*Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, ErrUnknownLanguage
	}
	for i := len(reg.langs) - 1; i >= 0; i-- {
		for _, e := range reg.langs[i].Extensions {
			if strings.ToLower(e) == ext {
				return reg.langs[i], nil
			}
		}
	}
	return nil, ErrUnknownLanguage
}

// Languages returns the registered languages in registration order. The
// returned slice must not be modified.
func (reg *Registry) Languages() []*Language {
	return reg.langs
}
