package syntax

// The built-in definitions below are data, not code: they use exactly the
// shape the YAML loader produces, so anything here could be moved to a
// user definition file unchanged.
var builtinLanguages = []*RawLanguage{
	{
		Name:        "Go",
		Extensions:  []string{".go"},
		IndentWidth: 4,
		Comment:     "//",
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var",
			"nil", "true", "false", "iota",
		},
		Ranges: []RawRange{
			{Start: "//", End: "\n", Kind: "comment"},
			{Start: "/*", End: "*/", Kind: "comment"},
			{Start: `"`, End: `"`, Escape: `\`, Kind: "string"},
			{Start: "`", End: "`", Kind: "string"},
			{Start: "'", End: "'", Escape: `\`, MaxLength: 10, Kind: "string"},
		},
		Tokens: []RawToken{
			{Pattern: "0[xX]%x+", Kind: "number"},
			{Pattern: "0[bB][01]+", Kind: "number"},
			{Pattern: "%d[%d_]*.?[%d_]*", Kind: "number"},
			{Pattern: "([%a_][%w_]*)%(", Kind: "function"},
		},
		Server: &RawServer{Command: "gopls", Protocol: "stdio"},
	},
	{
		Name:        "C",
		Extensions:  []string{".c", ".h"},
		IndentWidth: 4,
		Comment:     "//",
		Keywords: []string{
			"auto", "break", "case", "char", "const", "continue", "default",
			"do", "double", "else", "enum", "extern", "float", "for", "goto",
			"if", "inline", "int", "long", "register", "restrict", "return",
			"short", "signed", "sizeof", "static", "struct", "switch",
			"typedef", "union", "unsigned", "void", "volatile", "while",
		},
		Ranges: []RawRange{
			{Start: "//", End: "\n", Kind: "comment"},
			{Start: "/*", End: "*/", Kind: "comment"},
			{Start: `"`, End: `"`, Escape: `\`, Kind: "string"},
			{Start: "'", End: "'", Escape: `\`, MaxLength: 4, Kind: "string"},
		},
		Tokens: []RawToken{
			{Pattern: "^%s*(#%a+)", Kind: "meta"},
			{Pattern: "0[xX]%x+", Kind: "number"},
			{Pattern: "%d+.?%d*f?", Kind: "number"},
			{Pattern: "([%a_][%w_]*)%(", Kind: "function"},
		},
		Server: &RawServer{Command: "clangd", Protocol: "stdio"},
	},
	{
		Name:        "Markdown",
		Extensions:  []string{".md", ".markdown"},
		IndentWidth: 2,
		SoftTabs:    true,
		Ranges: []RawRange{
			{Start: "```", End: "```", Kind: "string"},
			{Start: "`", End: "`", Kind: "string"},
		},
		Tokens: []RawToken{
			{Pattern: "^#%.*", Kind: "meta"},
			{Pattern: "%[[^%]]*%]", Kind: "symbol"},
		},
	},
}
