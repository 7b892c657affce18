package syntax

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadLanguage reads one YAML language definition and compiles it. The
// document carries the same fields as RawLanguage, for example:
//
//	name: INI
//	extensions: [".ini", ".cfg"]
//	comment: ";"
//	tokens:
//	  - { pattern: "^%s*%[[%w%s.]+%]", kind: meta }
//	ranges:
//	  - { start: "\"", end: "\"", escape: "\\", kind: string }
func LoadLanguage(r io.Reader) (*Language, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw RawLanguage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("language definition: %w", err)
	}
	return CompileLanguage(&raw)
}

// LoadLanguageFile compiles the definition at path.
func LoadLanguageFile(path string) (*Language, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lang, err := LoadLanguage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lang, nil
}

// LoadLanguageDir compiles every .yaml/.yml file in dir and registers the
// results, letting user definitions shadow built-ins. A missing directory
// is not an error; a malformed definition is, and none of the directory is
// registered in that case.
func LoadLanguageDir(reg *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var langs []*Language
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
		default:
			continue
		}
		lang, err := LoadLanguageFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		langs = append(langs, lang)
	}

	for _, lang := range langs {
		reg.Register(lang)
	}
	return nil
}
