// Package langhint classifies source files into language names for the
// index facets. Classification is by filename first, then extension;
// anything unrecognized lands in "Unknown" rather than being skipped so
// the facet totals still add up.
package langhint

import (
	"path/filepath"
	"strings"
)

// Unknown is the bucket for files no rule matches
const Unknown = "Unknown"

// byFilename catches files whose meaning lives in the name, not an extension
var byFilename = map[string]string{
	"makefile":       "Makefile",
	"gnumakefile":    "Makefile",
	"dockerfile":     "Dockerfile",
	"rakefile":       "Ruby",
	"gemfile":        "Ruby",
	"cmakelists.txt": "CMake",
	"go.mod":         "Go Module",
	"go.sum":         "Go Module",
	"pom.xml":        "Maven POM",
	"build.gradle":   "Gradle",
	".gitignore":     "Git Config",
	".gitattributes": "Git Config",
}

var byExtension = map[string]string{
	".go":         "Go",
	".java":       "Java",
	".kt":         "Kotlin",
	".kts":        "Kotlin",
	".scala":      "Scala",
	".groovy":     "Groovy",
	".c":          "C",
	".h":          "C Header",
	".cc":         "C++",
	".cpp":        "C++",
	".cxx":        "C++",
	".hpp":        "C++ Header",
	".cs":         "C#",
	".rs":         "Rust",
	".py":         "Python",
	".rb":         "Ruby",
	".php":        "PHP",
	".js":         "JavaScript",
	".jsx":        "JSX",
	".mjs":        "JavaScript",
	".ts":         "TypeScript",
	".tsx":        "TSX",
	".swift":      "Swift",
	".m":          "Objective-C",
	".mm":         "Objective-C++",
	".pl":         "Perl",
	".pm":         "Perl",
	".lua":        "Lua",
	".r":          "R",
	".jl":         "Julia",
	".ex":         "Elixir",
	".exs":        "Elixir",
	".erl":        "Erlang",
	".hrl":        "Erlang",
	".hs":         "Haskell",
	".ml":         "OCaml",
	".mli":        "OCaml",
	".fs":         "F#",
	".clj":        "Clojure",
	".cljs":       "ClojureScript",
	".lisp":       "Lisp",
	".el":         "Emacs Lisp",
	".sh":         "Shell",
	".bash":       "Shell",
	".zsh":        "Shell",
	".fish":       "Shell",
	".bat":        "Batch",
	".ps1":        "PowerShell",
	".sql":        "SQL",
	".html":       "HTML",
	".htm":        "HTML",
	".xhtml":      "HTML",
	".css":        "CSS",
	".scss":       "SCSS",
	".sass":       "Sass",
	".less":       "Less",
	".xml":        "XML",
	".xsl":        "XSLT",
	".json":       "JSON",
	".yaml":       "YAML",
	".yml":        "YAML",
	".toml":       "TOML",
	".ini":        "INI",
	".cfg":        "INI",
	".proto":      "Protocol Buffers",
	".thrift":     "Thrift",
	".graphql":    "GraphQL",
	".md":         "Markdown",
	".markdown":   "Markdown",
	".rst":        "reStructuredText",
	".txt":        "Plain Text",
	".tex":        "TeX",
	".asm":        "Assembly",
	".s":          "Assembly",
	".vb":         "Visual Basic",
	".pas":        "Pascal",
	".d":          "D",
	".dart":       "Dart",
	".nim":        "Nim",
	".zig":        "Zig",
	".v":          "Verilog",
	".vhd":        "VHDL",
	".tf":         "Terraform",
	".dockerfile": "Dockerfile",
	".gradle":     "Gradle",
	".cmake":      "CMake",
	".mk":         "Makefile",
	".vue":        "Vue",
	".svelte":     "Svelte",
	".coffee":     "CoffeeScript",
	".f":          "Fortran",
	".f90":        "Fortran",
	".cob":        "COBOL",
	".ada":        "Ada",
	".adb":        "Ada",
	".tcl":        "Tcl",
	".awk":        "Awk",
	".sed":        "sed",
}

// Detect names the language of one file from its path
func Detect(path string) string {
	name := strings.ToLower(filepath.Base(path))
	if lang, ok := byFilename[name]; ok {
		return lang
	}
	if lang, ok := byExtension[filepath.Ext(name)]; ok {
		return lang
	}
	return Unknown
}
