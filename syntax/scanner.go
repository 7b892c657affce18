package syntax

// A Span is a classified, non-overlapping region of a single line, in rune
// offsets. End is exclusive. The spans for a line are ordered by Start and,
// together, exactly cover the line.
type Span struct {
	Start, End int
	Kind       Kind
}

// A LineState is the only state carried from one line to the next: either
// StateNormal, or the index of the range rule left open at the end of the
// line. A line's scan result depends only on its text and incoming state.
type LineState int

// StateNormal means no multi-line range is open.
const StateNormal LineState = -1

// InRange reports whether the state has an open range.
func (s LineState) InRange() bool { return s >= 0 }

// spanBuilder collects spans, merging adjacent spans of the same kind the
// way the renderer wants them.
type spanBuilder struct {
	spans []Span
}

func (b *spanBuilder) push(s Span) {
	if s.End <= s.Start {
		return
	}
	if n := len(b.spans); n > 0 {
		if last := &b.spans[n-1]; last.End == s.Start && last.Kind == s.Kind {
			last.End = s.End
			return
		}
	}
	b.spans = append(b.spans, s)
}

// ScanLine tokenizes a single line (without its delimiter) given the state
// left by the previous line. It returns the line's spans and the state for
// the next line. Scanning is total: any text produces a valid cover.
func ScanLine(lang *Language, line []rune, in LineState) ([]Span, LineState) {
	var b spanBuilder
	x := 0

	if in.InRange() {
		rule := &lang.Ranges[int(in)]
		end, closed, ok := scanRangeBody(line, 0, rule)
		if ok {
			b.push(Span{Start: 0, End: end, Kind: rule.Kind})
			if !closed {
				return b.spans, in
			}
			x = end
		}
		// Not ok means the open range overran its MaxLength; drop it and
		// rescan the line as normal text.
	}

scan:
	for x < len(line) {
		for i := range lang.Ranges {
			rule := &lang.Ranges[i]
			if !hasPrefix(line, x, rule.start) {
				continue
			}
			end, closed, ok := scanRangeBody(line, x+len(rule.start), rule)
			if !ok {
				continue
			}
			b.push(Span{Start: x, End: end, Kind: rule.Kind})
			x = end
			if !closed && rule.End != "\n" {
				return b.spans, LineState(i)
			}
			continue scan
		}

		for i := range lang.Patterns {
			rule := &lang.Patterns[i]
			m, ok := rule.Pattern.MatchAt(line, x)
			if !ok || m.RawEnd <= x {
				continue
			}
			// Only the capture gets the rule's kind; the rest of the raw
			// match is consumed as Plain.
			b.push(Span{Start: x, End: m.Start, Kind: Plain})
			b.push(Span{Start: m.Start, End: m.End, Kind: rule.Kind})
			b.push(Span{Start: m.End, End: m.RawEnd, Kind: Plain})
			x = m.RawEnd
			continue scan
		}

		if isIdentStart(line[x]) {
			end := x + 1
			for end < len(line) && isIdentRune(line[end]) {
				end++
			}
			kind := Plain
			if lang.HasKeyword(string(line[x:end])) {
				kind = Keyword
			}
			b.push(Span{Start: x, End: end, Kind: kind})
			x = end
			continue
		}

		b.push(Span{Start: x, End: x + 1, Kind: Plain})
		x++
	}

	return b.spans, StateNormal
}

// scanRangeBody scans for rule's end delimiter beginning at start, which is
// just past the start delimiter (or 0 when resuming an open range). It
// returns the exclusive end of the region and whether the delimiter was
// found before the end of the line. ok is false only when the body exceeds
// the rule's MaxLength, in which case the rule does not apply at all.
func scanRangeBody(line []rune, start int, rule *RangeRule) (end int, closed, ok bool) {
	i := start
	bodyLen := 0

	for i < len(line) {
		if rule.MaxLength > 0 && bodyLen > rule.MaxLength {
			return 0, false, false
		}
		if rule.Escape != 0 && line[i] == rule.Escape {
			i += 2
			bodyLen++
			continue
		}
		if hasPrefix(line, i, rule.end) {
			return i + len(rule.end), true, true
		}
		i++
		bodyLen++
	}

	if i > len(line) {
		i = len(line) // A trailing escape may have stepped past the end
	}
	return i, false, true
}

func hasPrefix(line []rune, at int, delim []rune) bool {
	if len(delim) == 0 || at+len(delim) > len(line) {
		return false
	}
	for i, r := range delim {
		if line[at+i] != r {
			return false
		}
	}
	return true
}

// Identifier runs start with a letter or underscore and continue with
// letters, digits and underscores. Keywords only match whole runs.
func isIdentStart(r rune) bool {
	return r == '_' || matchClass(r, 'a')
}

func isIdentRune(r rune) bool {
	return r == '_' || matchClass(r, 'w')
}
