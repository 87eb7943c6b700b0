package title

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// candidateLines is how many cleaned OCR lines become candidates.
	candidateLines = 12

	// monthScanLines is how far into the OCR text the month hint scan looks.
	monthScanLines = 20

	// shortLineMax is the rune cap for lines eligible for concatenation.
	// Covers layouts where "7月" and "園だより" print on separate lines.
	shortLineMax = 10

	// derivedLine is the position assigned to candidates synthesized from
	// the class name or month hint, ranking them below the leading OCR
	// lines so a printed title still wins when one exists.
	derivedLine = 2
)

var (
	monthTokenRe = regexp.MustCompile(`[0-9０-９]{1,2}月`)
	issueMonthRe = regexp.MustCompile(`^\d{4}-(\d{2})`)
	issueDateRe  = regexp.MustCompile(`^\d{4}-(\d{2})-\d{2}`)
	genericRe    = regexp.MustCompile(`^(園|学年|学級|クラス)?(だより|便り|お知らせ)$`)

	newsletterKeywords = []string{"だより", "便り", "お知らせ", "通信", "レター"}
	sentenceEndings    = []string{"。", "．", ".", "!", "?", "！", "？", "ます", "です", "した", "ません", "ください"}
)

// Input is everything the engine may draw a title from.
type Input struct {
	ExistingTitle string
	ClassName     string
	IssueMonth    string // YYYY-MM
	IssueDate     string // YYYY-MM-DD
	RawText       string // OCR output
}

// Engine generates and scores newsletter-title candidates.
type Engine struct {
	w ScoreWeights
}

// NewEngine creates a title inference engine with the given weights.
func NewEngine(w ScoreWeights) *Engine {
	return &Engine{w: w}
}

// Infer returns the final newsletter title. It is never empty: when no
// candidate scores high enough, a deterministic fallback chain applies.
// The result is capped at MaxTitleLen runes.
func (e *Engine) Infer(in Input) string {
	lines := cleanLines(in.RawText)
	hint := monthHint(in, lines)

	inferred := e.bestCandidate(in, lines, hint)
	if inferred == "" {
		inferred = e.fallback(in.ClassName, hint)
	}

	if e.keepExisting(in.ExistingTitle, inferred) {
		return truncate(strings.TrimSpace(in.ExistingTitle), e.w.MaxTitleLen)
	}
	return truncate(inferred, e.w.MaxTitleLen)
}

type candidate struct {
	text string
	line int
}

// bestCandidate scores the candidate set and returns the winner, or ""
// when nothing clears the score and Japanese-ratio thresholds.
func (e *Engine) bestCandidate(in Input, lines []string, hint string) string {
	cands := e.candidates(in, lines, hint)

	best := ""
	bestScore := math.Inf(-1)
	for _, c := range cands {
		// Strictly-greater keeps ties stable on the earlier candidate.
		if score := e.score(c.text, c.line, hint); score > bestScore {
			best = c.text
			bestScore = score
		}
	}

	if best == "" || bestScore < e.w.MinScore || japaneseRatio(best) < e.w.MinJapaneseRatio {
		return ""
	}
	return best
}

// candidates builds the deduplicated candidate set: header title, class
// nickname, month token, leading OCR lines, and concatenations of short
// adjacent lines.
func (e *Engine) candidates(in Input, lines []string, hint string) []candidate {
	var out []candidate
	seen := map[string]bool{}

	add := func(text string, line int) {
		text = strings.TrimSpace(text)
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, candidate{text: text, line: line})
	}

	add(in.ExistingTitle, 0)
	if in.ClassName != "" {
		add(in.ClassName+"だより", derivedLine)
		if hint != "" {
			add(hint+" "+in.ClassName+"だより", derivedLine)
		}
	}
	if hint != "" {
		add(hint, derivedLine)
	}

	n := len(lines)
	if n > candidateLines {
		n = candidateLines
	}
	for i := 0; i < n; i++ {
		add(lines[i], i)
	}

	// Joined variants for titles split across lines.
	for i := 0; i < n; i++ {
		if runeLen(lines[i]) > shortLineMax {
			continue
		}
		if i+1 < n && runeLen(lines[i+1]) <= shortLineMax {
			add(lines[i]+" "+lines[i+1], i)
		}
		if i+2 < n && runeLen(lines[i+2]) <= shortLineMax {
			add(lines[i]+" "+lines[i+2], i)
		}
	}

	return out
}

// score rates one candidate. The weights are in ScoreWeights; the rules
// themselves (what earns which weight) live here.
func (e *Engine) score(text string, line int, hint string) float64 {
	score := 0.0

	if rest := e.w.PositionWindow - line; rest > 0 {
		score += e.w.PositionPerLine * float64(rest)
	}

	switch l := runeLen(text); {
	case l >= e.w.LengthIdealMin && l <= e.w.LengthIdealMax:
		score += e.w.LengthIdeal
	case l > e.w.LengthIdealMax && l <= e.w.LengthSoftMax:
		score += e.w.LengthSoft
	case l > e.w.LengthSoftMax:
		score += e.w.LengthPenalty
	}

	switch ratio := japaneseRatio(text); {
	case ratio >= e.w.JapaneseHighRatio:
		score += e.w.JapaneseHigh
	case ratio >= e.w.JapaneseMidRatio:
		score += e.w.JapaneseMid
	default:
		score += e.w.JapaneseLow
	}

	if e.looksLikeSentence(text) {
		score += e.w.SentencePenalty
	}
	if !strings.ContainsAny(text, "、。,，.") {
		score += e.w.NoPunctBonus
	}
	if monthTokenRe.MatchString(text) {
		score += e.w.MonthBonus
	}
	for _, kw := range newsletterKeywords {
		if strings.Contains(text, kw) {
			score += e.w.KeywordBonus
			break
		}
	}
	if hint != "" && strings.Contains(text, hint) {
		score += e.w.MonthHintBonus
	}

	return score
}

// fallback is the deterministic title chain used when scoring fails.
func (e *Engine) fallback(className, hint string) string {
	switch {
	case hint != "" && className != "":
		return hint + " " + className + "だより"
	case className != "":
		return className + "だより"
	case hint != "":
		return hint + " おたより"
	default:
		return "おたより"
	}
}

// keepExisting applies the asymmetric replacement policy: a caller-
// provided title survives unless it is empty, too generic, or it lacks a
// month token the inferred candidate has.
func (e *Engine) keepExisting(existing, inferred string) bool {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return false
	}
	if genericRe.MatchString(existing) {
		return false
	}
	if !monthTokenRe.MatchString(existing) && monthTokenRe.MatchString(inferred) {
		return false
	}
	return true
}

func (e *Engine) looksLikeSentence(text string) bool {
	if runeLen(text) < e.w.SentenceMinLen {
		return false
	}
	for _, suffix := range sentenceEndings {
		if strings.HasSuffix(text, suffix) {
			return true
		}
	}
	return false
}

// monthHint derives the month token ("7月") from the issue month, the
// issue date, or a scan of the leading OCR lines, in that order.
func monthHint(in Input, lines []string) string {
	if m := issueMonthRe.FindStringSubmatch(in.IssueMonth); m != nil {
		return monthToken(m[1])
	}
	if m := issueDateRe.FindStringSubmatch(in.IssueDate); m != nil {
		return monthToken(m[1])
	}

	n := len(lines)
	if n > monthScanLines {
		n = monthScanLines
	}
	for i := 0; i < n; i++ {
		if tok := monthTokenRe.FindString(lines[i]); tok != "" {
			return normalizeDigits(tok)
		}
	}
	return ""
}

func monthToken(padded string) string {
	n, err := strconv.Atoi(padded)
	if err != nil || n < 1 || n > 12 {
		return ""
	}
	return strconv.Itoa(n) + "月"
}

// cleanLines trims, collapses whitespace, drops empties and dedupes the
// OCR lines while preserving order.
func cleanLines(raw string) []string {
	var out []string
	seen := map[string]bool{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	return out
}

func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return '0' + (r - '０')
		}
		return r
	}, s)
}

// japaneseRatio is the share of Japanese runes among non-space runes.
func japaneseRatio(text string) float64 {
	total := 0
	japanese := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) || r == 'ー' || r == '々' {
			japanese++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(japanese) / float64(total)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
