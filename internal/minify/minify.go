// Package minify shrinks bundled JavaScript with four regex rewrite passes.
// It does not tokenize its input. Comment-like text inside string literals
// is treated as a comment, and console call arguments are matched only up
// to the first closing paren.
package minify

import (
	"regexp"
	"strings"
)

// Keywords get exactly one trailing space after whitespace compaction.
var Keywords = []string{
	"function", "return", "if", "else", "for", "while", "const", "let", "var",
	"new", "throw", "try", "catch", "async", "await", "class", "extends", "static",
	"typeof", "instanceof", "in", "of",
}

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// RE2 has no lookbehind; capture the char before "//" and put it back.
	// A "//" directly after ':' (as in "http://") is left alone.
	lineCommentRe = regexp.MustCompile(`(?m)(^|[^:])//.*$`)
	consoleLogRe  = regexp.MustCompile(`console\.(log|debug|info)\([^)]*\);?`)
	operatorRe    = regexp.MustCompile(`\s*([=+\-*/%<>!&|,;:{}()])\s*`)
	elseIfRe      = regexp.MustCompile(`else\s+if`)
	extendsRe     = regexp.MustCompile(`\s+extends\s+`)
	keywordRes    = compileKeywords(Keywords)
)

type keywordRe struct {
	re   *regexp.Regexp
	repl string
}

func compileKeywords(kws []string) []keywordRe {
	out := make([]keywordRe, len(kws))
	for i, kw := range kws {
		out[i] = keywordRe{
			re:   regexp.MustCompile(`\b` + kw + `\b[ \t]*`),
			repl: kw + " ",
		}
	}
	return out
}

// Optimize runs all passes in order.
func Optimize(code string) string {
	code = RemoveComments(code)
	code = RemoveConsoleLogs(code)
	code = RemoveEmptyLines(code)
	code = CompressWhitespace(code)
	return code
}

func RemoveComments(code string) string {
	code = blockCommentRe.ReplaceAllString(code, "")
	return lineCommentRe.ReplaceAllString(code, "${1}")
}

// RemoveConsoleLogs drops console.log/debug/info calls and their trailing
// semicolon.
func RemoveConsoleLogs(code string) string {
	return consoleLogRe.ReplaceAllString(code, "")
}

// RemoveEmptyLines trims every line and drops the ones left empty.
func RemoveEmptyLines(code string) string {
	lines := strings.Split(code, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// CompressWhitespace removes whitespace around operators and punctuation,
// then restores one space after each keyword.
func CompressWhitespace(code string) string {
	code = operatorRe.ReplaceAllString(code, "${1}")
	for _, kw := range keywordRes {
		code = kw.re.ReplaceAllLiteralString(code, kw.repl)
	}
	code = elseIfRe.ReplaceAllLiteralString(code, "else if")
	return extendsRe.ReplaceAllLiteralString(code, " extends ")
}
