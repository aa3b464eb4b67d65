package token

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type InlineType int

const (
	IText InlineType = iota
	IEmphasis
	IStrong
	ILiteral
	IInterpreted
	IPhraseRef
	ISimpleRef
	ITarget
	ISubstitution
	IFootnoteRef
	ICitationRef
	IURI
	IUnterminated
	IMismatch
)

func (t InlineType) String() string {
	return map[InlineType]string{
		IText:         "IText",
		IEmphasis:     "IEmphasis",
		IStrong:       "IStrong",
		ILiteral:      "ILiteral",
		IInterpreted:  "IInterpreted",
		IPhraseRef:    "IPhraseRef",
		ISimpleRef:    "ISimpleRef",
		ITarget:       "ITarget",
		ISubstitution: "ISubstitution",
		IFootnoteRef:  "IFootnoteRef",
		ICitationRef:  "ICitationRef",
		IURI:          "IURI",
		IUnterminated: "IUnterminated",
		IMismatch:     "IMismatch",
	}[t]
}

// Inline is a recognized piece of inline markup. Start and End bound the
// raw markup in the tokenized string, Body the content between the
// delimiters.
type Inline struct {
	Type       InlineType
	Start, End int
	Body       [2]int

	// Role is the explicit role of interpreted text, RoleSuffix reports
	// whether it was written after the text.
	Role       string
	RoleSuffix bool

	// Suffix is "_" or "__" on references and substitution references.
	Suffix string

	// Msg describes unterminated and mismatched markup.
	Msg string
}

var (
	roleRe     = regexp.MustCompile("^:([A-Za-z0-9]+(?:[-_.+:][A-Za-z0-9]+)*):")
	simpleRe   = regexp.MustCompile(`^[\p{L}\p{N}]+(?:[-._+:][\p{L}\p{N}]+)*`)
	footRe     = regexp.MustCompile(`^\[(#[\p{L}\p{N}_.\-]*|\*|[0-9]+|[\p{L}\p{N}_.\-]+)\]_`)
	uriRe      = regexp.MustCompile(`^(?:(?:https?|ftp|file)://|mailto:)[^\s<>]+`)
	uriTrimSet = `.,;:!?'")]}>`
)

// Tokenize splits s into plain text and inline markup. Nested reports
// whether s is itself the body of inline markup; emphasis, strong and
// literal markup is not recognized inside nested bodies.
func Tokenize(s string, nested bool) []Inline {
	tz := &tokenizer{s: s, nested: nested}
	tz.run()
	return tz.out
}

type tokenizer struct {
	s      string
	nested bool
	out    []Inline
	text   int
}

func (tz *tokenizer) emit(in Inline) {
	if in.Start > tz.text {
		tz.out = append(tz.out, Inline{Type: IText, Start: tz.text, End: in.Start, Body: [2]int{tz.text, in.Start}})
	}
	tz.out = append(tz.out, in)
	tz.text = in.End
}

func (tz *tokenizer) run() {
	s := tz.s
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' {
			i += 2
			continue
		}
		var (
			in Inline
			ok bool
		)
		switch c {
		case '`':
			if !tz.nested && strings.HasPrefix(s[i:], "``") {
				in, ok = tz.literal(i)
			} else {
				in, ok = tz.interpreted(i, "", i)
			}
		case '*':
			if tz.nested {
				break
			}
			if strings.HasPrefix(s[i:], "**") {
				in, ok = tz.delimited(i, "**", IStrong, "strong")
			} else {
				in, ok = tz.delimited(i, "*", IEmphasis, "emphasis")
			}
		case ':':
			in, ok = tz.rolePrefix(i)
		case '_':
			if strings.HasPrefix(s[i:], "_`") {
				in, ok = tz.delimited(i, "_`", ITarget, "target")
			}
		case '|':
			in, ok = tz.substitution(i)
		case '[':
			in, ok = tz.footnote(i)
		}
		if !ok && startsWord(s, i) {
			in, ok = tz.word(i)
		}
		if ok {
			tz.emit(in)
			i = in.End
			continue
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
	}
	if tz.text < len(s) {
		tz.out = append(tz.out, Inline{Type: IText, Start: tz.text, End: len(s), Body: [2]int{tz.text, len(s)}})
	}
}

func (tz *tokenizer) literal(i int) (Inline, bool) {
	s := tz.s
	if !tz.validStart(i, 2) {
		return Inline{}, false
	}
	for k := i + 3; k+1 < len(s); k++ {
		if s[k] != '`' || s[k+1] != '`' {
			continue
		}
		// literal content is not escape processed
		if isSpaceRune(lastRune(s[:k])) || !validEndAfter(s, k+2) {
			continue
		}
		for k+2 < len(s) && s[k+2] == '`' {
			k++
		}
		return Inline{Type: ILiteral, Start: i, End: k + 2, Body: [2]int{i + 2, k}}, true
	}
	return Inline{Type: IUnterminated, Start: i, End: i + 2, Msg: "Inline literal start-string without end-string."}, true
}

func (tz *tokenizer) delimited(i int, delim string, t InlineType, what string) (Inline, bool) {
	s := tz.s
	if !tz.validStart(i, len(delim)) {
		return Inline{}, false
	}
	end := delim
	if t == ITarget {
		end = "`"
	}
	for k := i + len(delim) + 1; k < len(s); k++ {
		if !strings.HasPrefix(s[k:], end) || Escaped(s, k) {
			continue
		}
		if !tz.validEnd(k, len(end)) {
			continue
		}
		return Inline{Type: t, Start: i, End: k + len(end), Body: [2]int{i + len(delim), k}}, true
	}
	msg := "Inline " + what + " start-string without end-string."
	return Inline{Type: IUnterminated, Start: i, End: i + len(delim), Msg: msg}, true
}

func (tz *tokenizer) rolePrefix(i int) (Inline, bool) {
	s := tz.s
	m := roleRe.FindStringSubmatch(s[i:])
	if m == nil {
		return Inline{}, false
	}
	bt := i + len(m[0])
	if bt >= len(s) || s[bt] != '`' || strings.HasPrefix(s[bt:], "``") {
		return Inline{}, false
	}
	if !startPrefixOK(s, i) {
		return Inline{}, false
	}
	return tz.interpreted(bt, m[1], i)
}

// interpreted handles `text`, `text`_, `text`__ and `text`:role:. bt is
// the opening backtick, start the beginning of the markup (the role
// prefix if any).
func (tz *tokenizer) interpreted(bt int, role string, start int) (Inline, bool) {
	s := tz.s
	if role == "" {
		if !startPrefixOK(s, bt) {
			return Inline{}, false
		}
		if bt+1 >= len(s) {
			return Inline{}, false
		}
		// a lone backtick next to another backtick is not a start-string
		if s[bt+1] == '`' || (bt > 0 && s[bt-1] == '`') {
			return Inline{}, false
		}
	}
	for k := bt + 1; k < len(s); k++ {
		if s[k] != '`' || Escaped(s, k) || k == bt+1 {
			continue
		}
		prev := lastRune(s[:k])
		if isSpaceRune(prev) && !Escaped(s, k-1) {
			continue
		}
		after := k + 1
		in := Inline{Type: IInterpreted, Start: start, Body: [2]int{bt + 1, k}, Role: role}
		switch {
		case strings.HasPrefix(s[after:], "__"):
			in.Type, in.Suffix = IPhraseRef, "__"
			after += 2
		case strings.HasPrefix(s[after:], "_"):
			in.Type, in.Suffix = IPhraseRef, "_"
			after++
		default:
			if m := roleRe.FindStringSubmatch(s[after:]); m != nil && validEndAfter(s, after+len(m[0])) {
				if role != "" {
					in.Type = IMismatch
					in.Msg = "Multiple roles in interpreted text (both prefix and suffix present; only one allowed)."
				} else {
					in.Role, in.RoleSuffix = m[1], true
				}
				after += len(m[0])
			}
		}
		if !validEndAfter(s, after) {
			continue
		}
		if in.Type == IPhraseRef && role != "" {
			in.Type = IMismatch
			in.Msg = "Mismatch: both interpreted text role prefix and reference suffix."
		}
		in.End = after
		return in, true
	}
	return Inline{Type: IUnterminated, Start: start, End: bt + 1,
		Msg: "Inline interpreted text or phrase reference start-string without end-string."}, true
}

func (tz *tokenizer) substitution(i int) (Inline, bool) {
	s := tz.s
	if !tz.validStart(i, 1) {
		return Inline{}, false
	}
	for k := i + 2; k < len(s); k++ {
		if s[k] != '|' || Escaped(s, k) {
			continue
		}
		if isSpaceRune(lastRune(s[:k])) {
			continue
		}
		in := Inline{Type: ISubstitution, Start: i, Body: [2]int{i + 1, k}}
		after := k + 1
		switch {
		case strings.HasPrefix(s[after:], "__"):
			in.Suffix = "__"
		case strings.HasPrefix(s[after:], "_"):
			in.Suffix = "_"
		}
		after += len(in.Suffix)
		if !validEndAfter(s, after) {
			continue
		}
		in.End = after
		return in, true
	}
	return Inline{Type: IUnterminated, Start: i, End: i + 1,
		Msg: "Inline substitution_reference start-string without end-string."}, true
}

func (tz *tokenizer) footnote(i int) (Inline, bool) {
	s := tz.s
	if !startPrefixOK(s, i) {
		return Inline{}, false
	}
	m := footRe.FindStringSubmatch(s[i:])
	if m == nil {
		return Inline{}, false
	}
	end := i + len(m[0])
	if !validEndAfter(s, end) {
		return Inline{}, false
	}
	label := m[1]
	t := ICitationRef
	switch {
	case label == "*", strings.HasPrefix(label, "#"), isDigits(label):
		t = IFootnoteRef
	}
	return Inline{Type: t, Start: i, End: end, Body: [2]int{i + 1, i + 1 + len(label)}}, true
}

// word recognizes simple references and standalone URIs.
func (tz *tokenizer) word(i int) (Inline, bool) {
	s := tz.s
	if m := uriRe.FindString(s[i:]); m != "" {
		m = strings.TrimRight(m, uriTrimSet)
		if m != "" && validEndAfter(s, i+len(m)) && !strings.HasSuffix(m, "://") {
			return Inline{Type: IURI, Start: i, End: i + len(m), Body: [2]int{i, i + len(m)}}, true
		}
	}
	m := simpleRe.FindString(s[i:])
	if m == "" {
		return Inline{}, false
	}
	end := i + len(m)
	suffix := ""
	switch {
	case strings.HasPrefix(s[end:], "__"):
		suffix = "__"
	case strings.HasPrefix(s[end:], "_"):
		suffix = "_"
	default:
		return Inline{}, false
	}
	if !validEndAfter(s, end+len(suffix)) {
		return Inline{}, false
	}
	return Inline{Type: ISimpleRef, Start: i, End: end + len(suffix), Body: [2]int{i, end}, Suffix: suffix}, true
}

func (tz *tokenizer) validStart(i, n int) bool {
	s := tz.s
	if !startPrefixOK(s, i) || i+n >= len(s) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[i+n:])
	if isSpaceRune(next) {
		return false
	}
	if i > 0 {
		prev := lastRune(s[:i])
		if closer, ok := quotePairs[prev]; ok && closer == next {
			return false
		}
	}
	return true
}

func (tz *tokenizer) validEnd(k, n int) bool {
	s := tz.s
	prev := lastRune(s[:k])
	if isSpaceRune(prev) && !Escaped(s, k-1) {
		return false
	}
	return validEndAfter(s, k+n)
}

var quotePairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'<':  '>',
	'"':  '"',
	'\'': '\'',
}

func startsWord(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return false
	}
	return startPrefixOK(s, i)
}

func startPrefixOK(s string, i int) bool {
	if i == 0 {
		return true
	}
	if Escaped(s, i) {
		return false
	}
	prev := lastRune(s[:i])
	if isSpaceRune(prev) {
		return true
	}
	if prev == '_' || prev == '\\' {
		return false
	}
	return unicode.In(prev, unicode.Ps, unicode.Pi, unicode.Pf, unicode.Pd, unicode.Po)
}

func validEndAfter(s string, j int) bool {
	if j >= len(s) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(s[j:])
	if isSpaceRune(next) || next == '\\' {
		return true
	}
	if next == '_' || next == '`' || next == '*' || next == '|' {
		return false
	}
	return unicode.In(next, unicode.Pe, unicode.Pi, unicode.Pf, unicode.Pd, unicode.Po)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
