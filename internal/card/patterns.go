package card

import "regexp"

// Line patterns for the card notation. A card lives inside a section
// delimited by two `---` lines and consists of a numbered question
// (`1. text`), an optional ID comment directly above it, and a block of
// `>`-quoted answer lines below it.
var (
	questionRe  = regexp.MustCompile(`^\s*\d+\.\s+`)
	answerRe    = regexp.MustCompile(`^\s*>\s*`)
	idCommentRe = regexp.MustCompile(`^\s*<!--ID:\d+-->\s*$`)
	blankRe     = regexp.MustCompile(`^\s*$`)
)

// Delimiter is the section fence. It must be the whole line; surrounding
// whitespace disqualifies it.
const Delimiter = "---"

// IsDelimiter reports whether line is a section delimiter.
func IsDelimiter(line string) bool { return line == Delimiter }

// IsQuestion reports whether line starts a numbered question.
func IsQuestion(line string) bool { return questionRe.MatchString(line) }

// IsAnswer reports whether line carries the `>` answer notation.
// The text after the prefix may be empty.
func IsAnswer(line string) bool { return answerRe.MatchString(line) }

// IsIDComment reports whether line is an `<!--ID:123-->` comment and
// nothing else (trailing whitespace allowed).
func IsIDComment(line string) bool { return idCommentRe.MatchString(line) }

// IsBlank reports whether line is empty or whitespace only.
func IsBlank(line string) bool { return blankRe.MatchString(line) }
