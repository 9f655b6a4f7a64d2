package canonical

import (
	"strconv"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// tryParseFieldHead parses content (the already-indent-stripped text of
// one line, located at absolute byte offset in p.view.Input) as a
// "KEY: ...", "KEY[N]: ...", or "KEY[N]{f1,f2}: ..." head. It rejects any
// per-field delimiter override marker ("KEY[N|]: ..."), since the
// canonical profile uses a single delimiter for the whole document.
func (p *parser) tryParseFieldHead(content string, lineNum, offset int) (fieldHead, bool) {
	f, pos, ok := p.readKeyToken(content, offset)
	if !ok {
		return fieldHead{}, false
	}

	if pos < len(content) && content[pos] == '[' {
		length, newPos, ok := readLengthMarker(content, pos)
		if !ok {
			return fieldHead{}, false
		}

		f.length = &length
		pos = newPos

		if pos < len(content) && content[pos] == '{' {
			fields, newPos, ok := p.readFieldList(content, pos, offset)
			if !ok {
				return fieldHead{}, false
			}

			f.fields = fields
			pos = newPos
		}
	}

	if pos >= len(content) || content[pos] != ':' {
		return fieldHead{}, false
	}

	pos++

	if pos < len(content) {
		if content[pos] != ' ' {
			return fieldHead{}, false
		}

		f.hasValue = true
		f.valueStart = offset + pos + 1
		f.valueEnd = offset + len(content)
	}

	return f, true
}

// readKeyToken reads a bare or quoted key from the start of content,
// returning a fieldHead with the key populated and the byte offset within
// content immediately following it.
func (p *parser) readKeyToken(content string, offset int) (fieldHead, int, bool) {
	if content == "" {
		return fieldHead{}, 0, false
	}

	if content[0] == '"' {
		end, ok := findQuoteEnd(content, 0)
		if !ok {
			return fieldHead{}, 0, false
		}

		key, err := toon.UnquoteScalar(content[:end+1])
		if err != nil {
			return fieldHead{}, 0, false
		}

		return fieldHead{keyOwned: key, keyIsOwned: true}, end + 1, true
	}

	i := 0
	for i < len(content) && content[i] != '[' && content[i] != ':' {
		i++
	}

	return fieldHead{keyStart: offset, keyEnd: offset + i}, i, true
}

// findQuoteEnd returns the index of the closing, unescaped quote for a
// quoted span of content starting at start (content[start] == '"').
func findQuoteEnd(content string, start int) (int, bool) {
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '"':
			return i, true
		}
	}

	return 0, false
}

// readLengthMarker parses "[N]" starting at content[pos] == '['. It
// rejects "[ND]" (an explicit per-field delimiter override), which is
// outside the canonical profile.
func readLengthMarker(content string, pos int) (int, int, bool) {
	i := pos + 1
	digitsStart := i

	for i < len(content) && content[i] >= '0' && content[i] <= '9' {
		i++
	}

	if i == digitsStart {
		return 0, 0, false
	}

	length, err := strconv.Atoi(content[digitsStart:i])
	if err != nil {
		return 0, 0, false
	}

	if i >= len(content) || content[i] != ']' {
		return 0, 0, false
	}

	return length, i + 1, true
}

// readFieldList parses "{f1,f2,...}" starting at content[pos] == '{',
// splitting on the canonical profile's delimiter.
func (p *parser) readFieldList(content string, pos, offset int) ([]fieldSpan, int, bool) {
	end := -1
	depth := 0

	for i := pos; i < len(content); i++ {
		switch content[i] {
		case '"':
			qe, ok := findQuoteEnd(content, i)
			if !ok {
				return nil, 0, false
			}

			i = qe
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i

				goto found
			}
		}
	}

found:

	if end < 0 {
		return nil, 0, false
	}

	body := content[pos+1 : end]
	if body == "" {
		return nil, 0, false
	}

	spans, err := splitDelimitedSpans(body, offset+pos+1, p.profile.Delimiter.Byte())
	if err != nil {
		return nil, 0, false
	}

	fields := make([]fieldSpan, len(spans))

	for i, sp := range spans {
		text := p.view.Input[sp.start:sp.end]
		if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
			unq, err := toon.UnquoteScalar(text)
			if err != nil {
				return nil, 0, false
			}

			fields[i] = fieldSpan{owned: unq, isOwned: true}
		} else {
			fields[i] = sp
		}
	}

	return fields, end + 1, true
}

func fieldText(input string, fs fieldSpan) string {
	if fs.isOwned {
		return fs.owned
	}

	return input[fs.start:fs.end]
}

// splitDelimitedSpans splits raw (located at absolute offset baseOffset in
// the original input) on delim, treating any double-quoted span as opaque,
// and returns each token's absolute byte span.
func splitDelimitedSpans(raw string, baseOffset int, delim byte) ([]fieldSpan, error) {
	if raw == "" {
		return nil, nil
	}

	var spans []fieldSpan

	start := 0

	i := 0
	for i < len(raw) {
		switch raw[i] {
		case '"':
			end, ok := findQuoteEnd(raw, i)
			if !ok {
				return nil, &Violation{Message: "unterminated quote"}
			}

			i = end + 1
		case delim:
			spans = append(spans, fieldSpan{start: baseOffset + start, end: baseOffset + i})
			i++
			start = i
		default:
			i++
		}
	}

	spans = append(spans, fieldSpan{start: baseOffset + start, end: baseOffset + len(raw)})

	return spans, nil
}

// parseScalarSpan classifies the text in [start, end) of p.view.Input as a
// scalar and appends the corresponding arena node.
func (p *parser) parseScalarSpan(start, end, lineNum int) (int, error) {
	text := p.view.Input[start:end]

	if text == "" {
		return p.view.addNode(Node{Kind: KindString, DataIndex: p.view.addStringSpan(start, end)}), nil
	}

	if text[0] == '"' {
		unq, err := toon.UnquoteScalar(text)
		if err != nil {
			return 0, &Violation{Line: lineNum, Message: err.Error()}
		}

		return p.view.addNode(Node{Kind: KindString, DataIndex: p.view.addOwnedString(unq)}), nil
	}

	switch text {
	case "null":
		return p.view.addNode(Node{Kind: KindNull}), nil
	case "true":
		return p.view.addNode(Node{Kind: KindBool, Bool: true}), nil
	case "false":
		return p.view.addNode(Node{Kind: KindBool, Bool: false}), nil
	}

	if looksLikeNumber(text) {
		if _, err := toon.ParseNumber(text); err != nil {
			return 0, &Violation{Line: lineNum, Message: err.Error()}
		}

		return p.view.addNode(Node{Kind: KindNumber, DataIndex: p.view.addNumberSpan(start, end)}), nil
	}

	return p.view.addNode(Node{Kind: KindString, DataIndex: p.view.addStringSpan(start, end)}), nil
}

// looksLikeNumber reports whether text's first byte is consistent with a
// number literal (a digit, or a leading sign followed by a digit), a
// cheap pre-check before committing to a full parse with
// [toon.ParseNumber].
func looksLikeNumber(text string) bool {
	i := 0
	if text[0] == '+' || text[0] == '-' {
		i++
	}

	return i < len(text) && text[i] >= '0' && text[i] <= '9'
}
