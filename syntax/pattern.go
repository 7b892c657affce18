package syntax

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidPattern is wrapped by every pattern compilation failure.
var ErrInvalidPattern = errors.New("invalid pattern")

// A Match is the result of a successful pattern match. Start and End bound
// the captured text if the pattern has a capture, and the whole match
// otherwise. RawEnd is always the end of the whole match: a scanner must
// advance past RawEnd, never past End, or it would reprocess consumed text.
type Match struct {
	Start, End int
	RawEnd     int
}

type partKind uint8

const (
	partLiteral partKind = iota
	partClass
	partSet
	partTextStart
	partCaptureStart
	partCaptureEnd
	partRepeat
)

// A part is one element of a compiled pattern. Literals and classes consume
// a single rune. A repeat wraps the literal or class it modifies.
type part struct {
	kind    partKind
	lit     rune   // partLiteral: the rune to match
	class   rune   // partClass: '.', 'a', 'd', 'l', 'p', 's', 'u', 'w' or 'x'
	set     []part // partSet: literal and class alternatives
	negated bool   // partSet: true for [^...]
	op      rune   // partRepeat: '+', '*', '-' or '?'
	operand *part  // partRepeat: the modified literal or class
}

// A Pattern is a compiled matcher for the restricted pattern language used
// by token rules:
//
//	abc    literal runes
//	%d     a class: . any, a letter, d digit, l lower, p punctuation,
//	       s whitespace, u upper, w alphanumeric, x hex digit
//	%%     any other escaped rune is that literal rune
//	[ab%d] set of literals and classes, [^...] negates the set
//	+ * ?  one-or-more, zero-or-more, optional (greedy, apply to the
//	       preceding literal, class or set)
//	-      zero-or-more, shortest run that lets the rest of the pattern match
//	^      only match at the start of the text
//	(...)  at most one capture; the capture becomes the span's text
//
// There is no alternation and no backtracking beyond the single bounded
// scan each repetition performs, so matching is linear in the text scanned.
type Pattern struct {
	src   string
	parts []part
}

// CompilePattern parses src into a Pattern. A pattern that could match zero
// runes is rejected, since a scanner driven by it would never advance.
func CompilePattern(src string) (*Pattern, error) {
	p := &Pattern{src: src}

	var captureStart, captureEnd int = -1, -1
	runes := []rune(src)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch r {
		case '%':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("%w %q: expected another character after an escape character", ErrInvalidPattern, src)
			}
			i++
			p.parts = append(p.parts, escapedPart(runes[i]))
		case '^':
			p.parts = append(p.parts, part{kind: partTextStart})
		case '(':
			if captureStart >= 0 {
				return nil, fmt.Errorf("%w %q: only one capture is allowed", ErrInvalidPattern, src)
			}
			captureStart = len(p.parts)
			p.parts = append(p.parts, part{kind: partCaptureStart})
		case ')':
			if captureStart < 0 || captureEnd >= 0 {
				return nil, fmt.Errorf("%w %q: mismatched capture end", ErrInvalidPattern, src)
			}
			captureEnd = len(p.parts)
			p.parts = append(p.parts, part{kind: partCaptureEnd})
		case '+', '*', '-', '?':
			last := len(p.parts) - 1
			if last < 0 || (p.parts[last].kind != partLiteral && p.parts[last].kind != partClass && p.parts[last].kind != partSet) {
				return nil, fmt.Errorf("%w %q: modifier must follow a literal or a class", ErrInvalidPattern, src)
			}
			operand := p.parts[last]
			p.parts[last] = part{kind: partRepeat, op: r, operand: &operand}
		case '[':
			set, negated, rest, err := parseSet(runes[i+1:])
			if err != nil {
				return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, src, err)
			}
			i = len(runes) - rest - 1
			p.parts = append(p.parts, part{kind: partSet, set: set, negated: negated})
		default:
			p.parts = append(p.parts, part{kind: partLiteral, lit: r})
		}
	}

	if captureStart >= 0 && captureEnd < 0 {
		return nil, fmt.Errorf("%w %q: unterminated capture", ErrInvalidPattern, src)
	}
	if mayMatchNothing(p.parts) {
		return nil, fmt.Errorf("%w %q: may match nothing", ErrInvalidPattern, src)
	}
	if captureStart >= 0 && mayMatchNothing(p.parts[captureStart:captureEnd]) {
		return nil, fmt.Errorf("%w %q: may capture nothing", ErrInvalidPattern, src)
	}

	return p, nil
}

// MustPattern compiles src and panics on error. For built-in definitions.
func MustPattern(src string) *Pattern {
	p, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string { return p.src }

// parseSet parses the body of a bracketed set, after the '['. It returns the
// set elements, whether the set is negated, and the number of runes left
// after the closing bracket.
func parseSet(runes []rune) (set []part, negated bool, rest int, err error) {
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '^':
			if i == 0 {
				negated = true
				continue
			}
			set = append(set, part{kind: partLiteral, lit: r})
		case '%':
			if i+1 >= len(runes) {
				return nil, false, 0, errors.New("unterminated class")
			}
			i++
			set = append(set, escapedPart(runes[i]))
		case ']':
			return set, negated, len(runes) - i - 1, nil
		default:
			set = append(set, part{kind: partLiteral, lit: r})
		}
	}
	return nil, false, 0, errors.New("unterminated class")
}

// escapedPart resolves the rune following a '%'. Unknown escapes are the
// literal rune itself, which is how '%%', '%[' and '%(' are written.
func escapedPart(r rune) part {
	switch r {
	case '.', 'a', 'd', 'l', 'p', 's', 'u', 'w', 'x':
		return part{kind: partClass, class: r}
	default:
		return part{kind: partLiteral, lit: r}
	}
}

// mayMatchNothing reports whether parts could succeed after consuming zero
// runes. Anchors and capture markers consume nothing; so do the '*', '-'
// and '?' repetitions.
func mayMatchNothing(parts []part) bool {
	for i := range parts {
		switch parts[i].kind {
		case partLiteral, partClass, partSet:
			return false
		case partRepeat:
			if parts[i].op == '+' {
				return false
			}
		}
	}
	return true
}

// partial tracks capture bounds while matching. A value of -1 means the
// bound was not reached yet.
type partial struct {
	capStart, capEnd int
	end              int
}

func (m partial) withExistingCapture(capStart, capEnd int) partial {
	if capStart >= 0 {
		m.capStart = capStart
	}
	if capEnd >= 0 {
		m.capEnd = capEnd
	}
	return m
}

// MatchAt attempts to match the pattern against text beginning exactly at
// start. It never scans backwards from start.
func (p *Pattern) MatchAt(text []rune, start int) (Match, bool) {
	m, ok := p.matchParts(text, p.parts, start)
	if !ok {
		return Match{}, false
	}

	match := Match{Start: start, End: m.end, RawEnd: m.end}
	if m.capStart >= 0 {
		match.Start = m.capStart
	}
	if m.capEnd >= 0 {
		match.End = m.capEnd
	}
	return match, true
}

func (p *Pattern) matchParts(text []rune, parts []part, start int) (partial, bool) {
	i := start
	capStart, capEnd := -1, -1

	for pi := 0; pi < len(parts); pi++ {
		switch pt := &parts[pi]; pt.kind {
		case partTextStart:
			if i != 0 {
				return partial{}, false
			}
		case partCaptureStart:
			capStart = i
		case partCaptureEnd:
			capEnd = i
		case partRepeat:
			m, ok := p.matchRepeat(text, pt.op, pt.operand, parts[pi+1:], i)
			if !ok {
				return partial{}, false
			}
			return m.withExistingCapture(capStart, capEnd), true
		default:
			if !matchSingle(text, i, pt) {
				return partial{}, false
			}
			if i < len(text) {
				i++
			}
		}
	}

	return partial{capStart: capStart, capEnd: capEnd, end: i}, true
}

func (p *Pattern) matchRepeat(text []rune, op rune, operand *part, rest []part, start int) (partial, bool) {
	switch op {
	case '+':
		if start >= len(text) || !matchSingle(text, start, operand) {
			return partial{}, false
		}
		return p.matchGreedy(text, operand, rest, start+1)
	case '*':
		return p.matchGreedy(text, operand, rest, start)
	case '-':
		return p.matchFrugal(text, operand, rest, start)
	default: // '?'
		m, ok := p.matchParts(text, rest, start)
		if start < len(text) && matchSingle(text, start, operand) {
			if longer, lok := p.matchParts(text, rest, start+1); lok {
				return longer, true
			}
		}
		return m, ok
	}
}

// matchGreedy consumes the longest run of operand, preferring the match of
// rest that begins furthest along the run.
func (p *Pattern) matchGreedy(text []rune, operand *part, rest []part, start int) (partial, bool) {
	var best partial
	var found bool

	i := start
	for {
		if m, ok := p.matchParts(text, rest, i); ok {
			best, found = m, true
		}
		if i >= len(text) || !matchSingle(text, i, operand) {
			break
		}
		i++
	}

	return best, found
}

// matchFrugal consumes the shortest run of operand that lets rest match.
func (p *Pattern) matchFrugal(text []rune, operand *part, rest []part, start int) (partial, bool) {
	i := start
	for {
		if m, ok := p.matchParts(text, rest, i); ok {
			return m, true
		}
		if i >= len(text) || !matchSingle(text, i, operand) {
			return partial{}, false
		}
		i++
	}
}

// matchSingle reports whether the literal, class or set part matches the
// rune at text[i]. Past the end of the text nothing matches, except a
// negated set, which matches without consuming.
func matchSingle(text []rune, i int, pt *part) bool {
	if pt.kind == partSet {
		if i >= len(text) {
			return pt.negated
		}
		for si := range pt.set {
			if matchSingle(text, i, &pt.set[si]) {
				return !pt.negated
			}
		}
		return pt.negated
	}

	if i >= len(text) {
		return false
	}
	r := text[i]

	switch pt.kind {
	case partLiteral:
		return r == pt.lit
	case partClass:
		return matchClass(r, pt.class)
	}
	return false
}

func matchClass(r, class rune) bool {
	switch class {
	case '.':
		return true
	case 'a':
		return unicode.IsLetter(r)
	case 'd':
		return r >= '0' && r <= '9'
	case 'l':
		return unicode.IsLower(r)
	case 'p':
		return isASCIIPunct(r)
	case 's':
		return unicode.IsSpace(r)
	case 'u':
		return unicode.IsUpper(r)
	case 'w':
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case 'x':
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return false
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}
