package pathfilter

// DefaultPatterns lists filename globs treated as source code when no
// explicit filetype selection is given. Documentation and configuration
// formats (json, md, txt, xml, yaml and friends) are deliberately left
// out: their line counts say little about how code ages.
var DefaultPatterns = []string{
	// C family
	"*.c", "*.h", "*.cpp", "*.cxx", "*.cc", "*.hpp", "*.hh", "*.hxx",
	"*.m", "*.mm",
	// Go
	"*.go",
	// Scripting
	"*.py", "*.pyw", "*.pyi", "*.rb", "*.rake", "*.php", "*.php3",
	"*.php4", "*.php5", "*.pl", "*.pm", "*.t", "*.lua", "*.tcl",
	"*.r", "*.R",
	// JVM
	"*.java", "*.scala", "*.kt", "*.kts", "*.groovy", "*.gradle",
	"*.clj", "*.cljs", "*.cljc",
	// JavaScript / web
	"*.js", "*.jsx", "*.mjs", "*.cjs", "*.ts", "*.tsx", "*.vue",
	"*.svelte", "*.coffee", "*.dart",
	"*.html", "*.htm", "*.css", "*.scss", "*.sass", "*.less",
	// .NET
	"*.cs", "*.fs", "*.fsi", "*.fsx", "*.vb",
	// Systems
	"*.rs", "*.zig", "*.nim", "*.cr", "*.d", "*.swift",
	"*.s", "*.S", "*.asm",
	// Functional
	"*.hs", "*.lhs", "*.ml", "*.mli", "*.erl", "*.hrl", "*.ex", "*.exs",
	"*.elm", "*.rkt", "*.scm", "*.lisp", "*.el", "*.jl",
	// Shell and build
	"*.sh", "*.bash", "*.zsh", "*.fish", "*.ps1", "*.psm1",
	"*.bat", "*.cmd", "*.awk",
	"Makefile", "makefile", "GNUmakefile", "*.mk", "*.cmake",
	"CMakeLists.txt", "Dockerfile", "*.bzl", "BUILD", "BUILD.bazel",
	"*.gn", "*.gni", "*.ninja",
	// Hardware and older languages
	"*.v", "*.sv", "*.svh", "*.vhd", "*.vhdl",
	"*.f", "*.f90", "*.f95", "*.f03", "*.for",
	"*.pas", "*.pp", "*.ada", "*.adb", "*.ads", "*.cob", "*.cbl",
	// Data plumbing
	"*.sql", "*.proto", "*.thrift", "*.capnp", "*.graphql", "*.gql",
	// Misc
	"*.vim", "*.hx", "*.pde", "*.ino", "*.sol", "*.cu", "*.cuh",
}
