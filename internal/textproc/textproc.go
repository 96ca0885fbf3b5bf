// Package textproc holds the naive text heuristics: sentence tokenization,
// a first-K-sentences summary and length-filtered study questions.
package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
)

const questionFormat = "Explain in detail: %s?"

// Options tunes the heuristics. Zero or negative values fall back to
// DefaultOptions.
type Options struct {
	SummarySentences  int
	SentenceWindow    int
	QuestionLimit     int
	QuestionMinLength int
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{
		SummarySentences:  5,
		SentenceWindow:    30,
		QuestionLimit:     5,
		QuestionMinLength: 30,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.SummarySentences <= 0 {
		o.SummarySentences = d.SummarySentences
	}
	if o.SentenceWindow <= 0 {
		o.SentenceWindow = d.SentenceWindow
	}
	if o.QuestionLimit <= 0 {
		o.QuestionLimit = d.QuestionLimit
	}
	if o.QuestionMinLength <= 0 {
		o.QuestionMinLength = d.QuestionMinLength
	}
	return o
}

// Result is what a document boils down to.
type Result struct {
	Summary   string
	Questions []string
}

// Tokenize splits text into trimmed, non-empty sentences using Unicode
// sentence boundaries. Whitespace runs (including newlines) are collapsed
// to a single space first.
func Tokenize(text string) []string {
	collapsed := strings.Join(strings.Fields(text), " ")
	out := []string{}
	if collapsed == "" {
		return out
	}

	seg := sentences.FromString(collapsed)
	for seg.Next() {
		s := strings.TrimSpace(seg.Value())
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Window returns at most n leading sentences.
func Window(sents []string, n int) []string {
	if n < len(sents) {
		return sents[:n]
	}
	return sents
}

// Summarize joins the first n sentences with single spaces.
func Summarize(sents []string, n int) string {
	return strings.Join(Window(sents, n), " ")
}

// GenerateQuestions turns sentences into study questions. Punctuation and
// symbols are stripped; sentences shorter than minLen runes or already seen
// are skipped. At most limit questions are returned.
func GenerateQuestions(sents []string, minLen, limit int) []string {
	questions := []string{}
	seen := make(map[string]struct{})

	for _, s := range sents {
		if len(questions) >= limit {
			break
		}

		clean := strings.TrimSpace(stripPunctuation(s))
		if len([]rune(clean)) < minLen {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}

		questions = append(questions, fmt.Sprintf(questionFormat, clean))
	}
	return questions
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// Process tokenizes text once and derives both the summary and the
// questions from the same sentence window.
func Process(text string, opts Options) Result {
	opts = opts.normalized()
	window := Window(Tokenize(text), opts.SentenceWindow)

	return Result{
		Summary:   Summarize(window, opts.SummarySentences),
		Questions: GenerateQuestions(window, opts.QuestionMinLength, opts.QuestionLimit),
	}
}
