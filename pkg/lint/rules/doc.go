// Package rules provides the built-in lint rules for mdfix.
//
// # Rule Domains
//
//   - Whitespace and layout:
//
//   - MD009: no-trailing-spaces - Trailing spaces
//
//   - MD010: no-hard-tabs - Hard tabs
//
//   - MD012: no-multiple-blanks - Multiple consecutive blank lines
//
//   - MD047: single-trailing-newline - Files should end with a single newline character
//
//   - Headings:
//
//   - MD018: no-missing-space-atx - No space after hash on atx style heading
//
//   - MD022: blanks-around-headings - Headings should be surrounded by blank lines
//
//   - MD026: no-trailing-punctuation - Trailing punctuation in heading
//
//   - Code blocks:
//
//   - MD031: blanks-around-fences - Fenced code blocks should be surrounded by blank lines
//
//   - MD040: fenced-code-language - Fenced code blocks should have a language specified
//
//   - Lists:
//
//   - MD032: blanks-around-lists - Lists should be surrounded by blank lines
//
// # Rule IDs
//
// Rule IDs and names follow markdownlint so existing configuration files
// can be imported. Heading increment, list style, line length, duplicate
// headings and single-h1 are checked by package validate instead and have
// no rule here.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll.
// Rules that need block structure read the goldmark AST; the rest scan
// lines and the fenced code blocks recorded in the document context.
package rules
