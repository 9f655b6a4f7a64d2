package toon

import "strconv"

// fieldHead is the parsed structural head of a "KEY: ..." family line: the
// key, an optional array length marker, an optional tabular field list,
// the delimiter the marker declared (defaulting to comma), and the inline
// text (if any) following the colon.
type fieldHead struct {
	key      string
	length   *int
	fields   []string
	delim    Delimiter
	hasValue bool
	value    string
}

// parseFieldHead parses content as a "KEY: ...", "KEY[N]: ...",
// "KEY[N]:", or "KEY[N]{f1,f2}:" line.
func parseFieldHead(content string, lineNum int) (fieldHead, error) {
	f, ok := tryParseFieldHead(content, lineNum)
	if !ok {
		return fieldHead{}, &StructureError{
			Position: Position{Line: lineNum},
			Message:  "expected \"key:\" or \"key[n]:\"",
		}
	}

	return f, nil
}

// tryParseFieldHead is [parseFieldHead] without a hard failure: it returns
// ok=false when content has no top-level, unquoted colon at all (i.e. it
// is not a key line), which callers use to distinguish a dash-merged
// object field from a dash-merged bare scalar.
func tryParseFieldHead(content string, lineNum int) (fieldHead, bool) {
	key, pos, err := readKeyToken(content)
	if err != nil {
		return fieldHead{}, false
	}

	f := fieldHead{key: key, delim: DelimiterComma}

	if pos < len(content) && content[pos] == '[' {
		length, newPos, delim, ferr := readLengthMarker(content, pos, lineNum)
		if ferr != nil {
			return fieldHead{}, false
		}

		f.length = &length
		f.delim = delim
		pos = newPos

		if pos < len(content) && content[pos] == '{' {
			fields, newPos, ferr := readFieldList(content, pos, delim, lineNum)
			if ferr != nil {
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
		f.value = content[pos+1:]
	}

	return f, true
}

// readKeyToken reads a bare or quoted key from the start of content,
// returning the decoded key text and the byte offset immediately after it.
func readKeyToken(content string) (string, int, error) {
	if content == "" {
		return "", 0, &ScalarError{Message: "empty key"}
	}

	if content[0] == '"' {
		end, err := findQuoteEnd(content, 0)
		if err != nil {
			return "", 0, err
		}

		key, err := UnquoteScalar(content[:end+1])
		if err != nil {
			return "", 0, err
		}

		return key, end + 1, nil
	}

	i := 0
	for i < len(content) && content[i] != '[' && content[i] != ':' {
		i++
	}

	return content[:i], i, nil
}

// findQuoteEnd returns the index of the closing, unescaped quote for a
// quoted span of content starting at start (content[start] == '"').
func findQuoteEnd(content string, start int) (int, error) {
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '"':
			return i, nil
		}
	}

	return 0, &ScalarError{Message: "unterminated quote"}
}

// readLengthMarker parses "[N]" or "[ND]" (D one of the delimiter
// characters) starting at content[pos] == '['.
func readLengthMarker(content string, pos, lineNum int) (int, int, Delimiter, error) {
	i := pos + 1
	digitsStart := i

	for i < len(content) && content[i] >= '0' && content[i] <= '9' {
		i++
	}

	if i == digitsStart {
		return 0, 0, 0, &StructureError{Position: Position{Line: lineNum}, Message: "missing array length"}
	}

	length, err := strconv.Atoi(content[digitsStart:i])
	if err != nil {
		return 0, 0, 0, &StructureError{Position: Position{Line: lineNum}, Message: "invalid array length"}
	}

	delim := DelimiterComma

	if i < len(content) && content[i] != ']' {
		d, ok := DelimiterFromByte(content[i])
		if !ok {
			return 0, 0, 0, &DelimiterError{Position: Position{Line: lineNum}, Message: "unrecognized delimiter marker"}
		}

		delim = d
		i++
	}

	if i >= len(content) || content[i] != ']' {
		return 0, 0, 0, &StructureError{Position: Position{Line: lineNum}, Message: "unterminated array length marker"}
	}

	return length, i + 1, delim, nil
}

// readFieldList parses "{f1,f2,...}" starting at content[pos] == '{',
// splitting on delim and unquoting any quoted field names.
func readFieldList(content string, pos int, delim Delimiter, lineNum int) ([]string, int, error) {
	end := -1

	depth := 0

	for i := pos; i < len(content); i++ {
		switch content[i] {
		case '"':
			qe, err := findQuoteEnd(content, i)
			if err != nil {
				return nil, 0, err
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
		return nil, 0, &FieldError{Position: Position{Line: lineNum}, Message: "unterminated field list"}
	}

	body := content[pos+1 : end]
	if body == "" {
		return nil, 0, &FieldError{Position: Position{Line: lineNum}, Message: "field list cannot be empty"}
	}

	tokens, err := splitDelimited(body, delim)
	if err != nil {
		return nil, 0, err
	}

	fields := make([]string, len(tokens))

	for i, tok := range tokens {
		if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
			unq, err := UnquoteScalar(tok)
			if err != nil {
				return nil, 0, err
			}

			fields[i] = unq
		} else {
			fields[i] = tok
		}
	}

	return fields, end + 1, nil
}

// splitDelimited splits s on delim, treating any double-quoted span
// (respecting backslash escapes) as opaque so a delimiter byte inside
// quotes does not split.
func splitDelimited(s string, delim Delimiter) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	var tokens []string

	db := delim.Byte()
	start := 0

	i := 0
	for i < len(s) {
		switch s[i] {
		case '"':
			end, err := findQuoteEnd(s, i)
			if err != nil {
				return nil, err
			}

			i = end + 1
		case db:
			tokens = append(tokens, s[start:i])
			i++
			start = i
		default:
			i++
		}
	}

	tokens = append(tokens, s[start:])

	return tokens, nil
}

// validateFieldList rejects an empty field list, an empty field name, or
// a duplicate field name, matching the arity checks the original decoder
// performs before reading any tabular rows.
func validateFieldList(fields []string) error {
	if len(fields) == 0 {
		return &FieldError{Message: "field list cannot be empty for tabular arrays"}
	}

	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		if f == "" {
			return &FieldError{Message: "field name cannot be empty"}
		}

		if seen[f] {
			return &FieldError{Message: "duplicate field name: " + f}
		}

		seen[f] = true
	}

	return nil
}

// parseScalarText interprets token as a scalar: a quoted string, a
// keyword, a number, or (falling through) a bare string.
func parseScalarText(token string) (Value, error) {
	if token == "" {
		return "", nil
	}

	if token[0] == '"' {
		return UnquoteScalar(token)
	}

	switch token {
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if looksLikeNumber(token) {
		return ParseNumber(token)
	}

	return token, nil
}
