package heuristic

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/tailor"
)

// Strategy is one heuristic attempt at recovering text from decoded input.
type Strategy interface {
	Method() tailor.Method
	Run(text string) Result
}

// Result reports how a single strategy fared. Text is set only when Status
// is accepted; Err only when it is failed.
type Result struct {
	Status tailor.StageStatus
	Text   string
	Err    error
}

func accepted(text string) Result { return Result{Status: tailor.StageAccepted, Text: text} }

func rejected() Result { return Result{Status: tailor.StageRejected} }

// runStrategy executes s and converts a panic into a failed result so one
// misbehaving strategy cannot abort the chain.
func runStrategy(s Strategy, text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: tailor.StageFailed, Err: fmt.Errorf("%s: %v", s.Method(), r)}
		}
	}()
	res = s.Run(text)
	if res.Status == tailor.StageAccepted && strings.TrimSpace(res.Text) == "" {
		return rejected()
	}
	return res
}

const (
	minDelimitedRunes  = 3  // shorter delimited runs are dropped
	maxDelimitedRunes  = 99 // longer delimited runs are dropped
	minDelimitedOutput = 21 // joined delimited output must be longer than 20
	minCleanupWords    = 6  // cleaned output must have more than 5 words
)

var (
	letterRe        = regexp.MustCompile(`[a-zA-Z]`)
	hexTokenRe      = regexp.MustCompile(`(?i)^[0-9A-F]{8,}$`)
	mixedTokenRe    = regexp.MustCompile(`(?i)^[A-Z]{2,}[0-9]+[A-Z]{2,}$`)
	longNumberRe    = regexp.MustCompile(`^[0-9]{10,}$`)
	codeTokenRe     = regexp.MustCompile(`(?i)^[A-Z]{2,}[0-9]{2,}[A-Z]{2,}$`)
	prefixedCodeRe  = regexp.MustCompile(`(?i)^[A-Z]{2,}[0-9]{2,}$`)
	delimitedRunRe  = regexp.MustCompile(`\([^)]*\)`)
	nonPrintableRe  = regexp.MustCompile(`[^\x20-\x7E]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	disallowedRe    = regexp.MustCompile("[^\\w\\s\\-.,!?()@#$%&*+=<>\\[\\]{}|\\\\/:;\"'`~]")
	capitalTrigrams = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+ [A-Z][a-z]+`)
	parenRemover    = strings.NewReplacer("(", "", ")", "")
)

// DelimitedStrategy collects the contents of parenthesized runs, which is
// where uncompressed PDF content streams keep their literal strings.
type DelimitedStrategy struct{}

func (DelimitedStrategy) Method() tailor.Method { return tailor.MethodDelimited }

func (DelimitedStrategy) Run(text string) Result {
	var kept []string
	for _, run := range delimitedRunRe.FindAllString(text, -1) {
		content := parenRemover.Replace(run)
		if keepDelimited(content) {
			kept = append(kept, content)
		}
	}
	joined := strings.Join(kept, " ")
	if utf8.RuneCountInString(joined) < minDelimitedOutput {
		return rejected()
	}
	return accepted(joined)
}

func keepDelimited(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < minDelimitedRunes || n > maxDelimitedRunes {
		return false
	}
	if !letterRe.MatchString(s) {
		return false
	}
	return !hexTokenRe.MatchString(s) && !mixedTokenRe.MatchString(s)
}

// PatternHarvestStrategy collects every match of every pattern in Groups,
// in group order, and joins the de-duplicated matches.
type PatternHarvestStrategy struct {
	Groups []PatternGroup
}

func (*PatternHarvestStrategy) Method() tailor.Method { return tailor.MethodPatternHarvest }

func (s *PatternHarvestStrategy) Run(text string) Result {
	found := harvest(s.Groups, text)
	if len(found) == 0 {
		return rejected()
	}
	return accepted(strings.Join(found, " "))
}

// CleanupStrategy strips the text down to printable ASCII and keeps the
// words that do not look like encoded identifiers.
type CleanupStrategy struct{}

func (CleanupStrategy) Method() tailor.Method { return tailor.MethodCleanup }

func (CleanupStrategy) Run(text string) Result {
	words := cleanWords(text)
	if len(words) < minCleanupWords {
		return rejected()
	}
	return accepted(strings.Join(words, " "))
}

func cleanWords(text string) []string {
	text = nonPrintableRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	var words []string
	for _, w := range strings.Split(text, " ") {
		if keepWord(w) {
			words = append(words, w)
		}
	}
	return words
}

func keepWord(w string) bool {
	switch {
	case utf8.RuneCountInString(w) < 2:
		return false
	case hexTokenRe.MatchString(w),
		mixedTokenRe.MatchString(w),
		longNumberRe.MatchString(w),
		codeTokenRe.MatchString(w),
		prefixedCodeRe.MatchString(w):
		return false
	}
	return letterRe.MatchString(w)
}

// TrigramStrategy looks for runs of three capitalized words, which usually
// means a person's full name, and wraps them in a generic résumé sentence.
type TrigramStrategy struct{}

func (TrigramStrategy) Method() tailor.Method { return tailor.MethodTrigram }

func (TrigramStrategy) Run(text string) Result {
	matches := capitalTrigrams.FindAllString(text, -1)
	if len(matches) == 0 {
		return rejected()
	}
	return accepted("Resume for " + strings.Join(matches, " ") +
		" - Software Engineer with experience in web development.")
}

// NameHarvestStrategy collects de-duplicated name and title matches and
// wraps them in a generic résumé sentence.
type NameHarvestStrategy struct {
	Groups []PatternGroup
}

func (*NameHarvestStrategy) Method() tailor.Method { return tailor.MethodNameHarvest }

func (s *NameHarvestStrategy) Run(text string) Result {
	found := harvest(s.Groups, text)
	if len(found) == 0 {
		return rejected()
	}
	return accepted("Resume for " + strings.Join(found, " ") +
		" - Software Engineer with experience in web development, JavaScript, React, and modern technologies.")
}

// harvest returns all non-empty matches of every pattern in groups, keeping
// the first occurrence of each distinct match.
func harvest(groups []PatternGroup, text string) []string {
	var found []string
	seen := make(map[string]struct{})
	for _, g := range groups {
		for _, re := range g.Patterns {
			for _, m := range re.FindAllString(text, -1) {
				if m == "" {
					continue
				}
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				found = append(found, m)
			}
		}
	}
	return found
}
