package canonical

import (
	"strconv"
	"strings"

	"github.com/bnomei/serde-toon-sub001/toon"
)

// Parse builds an [ArenaView] over input's bytes from a successful [Scan],
// rejecting any construct outside the canonical profile: a per-field
// delimiter override marker, or anything else the general decoder accepts
// but this fast path does not special-case. Dotted keys are kept as
// literal keys; they are neither expanded nor rejected.
func Parse(input string, scan ScanResult, profile Profile) (*ArenaView, error) {
	lines := make([]toon.Line, 0, len(scan.Lines))

	for _, l := range scan.Lines {
		if !l.Blank {
			lines = append(lines, l)
		}
	}

	p := &parser{view: NewArenaView(input), lines: lines, profile: profile, scan: scan}

	if len(lines) == 0 {
		p.view.RootIndex = p.view.addNode(Node{Kind: KindObject})

		return p.view, nil
	}

	first := lines[0]
	if first.Level != 0 {
		return nil, &Violation{Line: first.Num, Column: 1, Message: "first line must not be indented"}
	}

	if isDashLine(first.Content) {
		return nil, &Violation{Line: first.Num, Column: 1, Message: "a root-level list item has no declaring key"}
	}

	var (
		root int
		err  error
	)

	if strings.HasPrefix(first.Content, "[") {
		root, err = p.parseKeylessRootArray()
	} else {
		root, err = p.parseObjectBody(0)
	}

	if err != nil {
		return nil, err
	}

	p.view.RootIndex = root

	return p.view, nil
}

type parser struct {
	view    *ArenaView
	lines   []toon.Line
	profile Profile
	scan    ScanResult
	idx     int
}

func (p *parser) peek() (toon.Line, bool) {
	if p.idx >= len(p.lines) {
		return toon.Line{}, false
	}

	return p.lines[p.idx], true
}

// fieldHead is the parsed structural head of a "KEY: ..." line.
type fieldHead struct {
	keyStart, keyEnd int
	keyOwned         string
	keyIsOwned       bool
	length           *int
	fields           []fieldSpan
	hasValue         bool
	valueStart, valueEnd int
}

type fieldSpan struct {
	start, end int
	owned      string
	isOwned    bool
}

func (p *parser) parseKeylessRootArray() (int, error) {
	line := p.lines[p.idx]

	f, ok := p.tryParseFieldHead(line.Content, line.Num, 0)
	if !ok || f.length == nil {
		return 0, &Violation{Line: line.Num, Column: 1, Message: "expected an array length marker"}
	}

	p.idx++

	return p.readArrayValue(f, line.Num, 0, 1)
}

// parseObjectBody consumes sibling "KEY: ..." lines at depth and appends an
// object node whose pairs span [start, end) in p.view.Pairs.
func (p *parser) parseObjectBody(depth int) (int, error) {
	var pairs []Pair

	seen := make(map[string]bool)

	for {
		line, ok := p.peek()
		if !ok || line.Level < depth {
			break
		}

		if line.Level > depth {
			return 0, &Violation{Line: line.Num, Column: line.Indent + 1, Message: "unexpected indentation"}
		}

		if isDashLine(line.Content) {
			return 0, &Violation{Line: line.Num, Column: line.Indent + 1, Message: "unexpected list item inside an object body"}
		}

		lineOffset := p.scan.lineContentOffset(line)

		f, ok := p.tryParseFieldHead(line.Content, line.Num, lineOffset)
		if !ok {
			return 0, &Violation{Line: line.Num, Column: 1, Message: "expected \"key:\" or \"key[n]:\""}
		}

		p.idx++

		keyText, keyIndex := p.internKey(f)

		if seen[keyText] {
			return 0, &Violation{Line: line.Num, Column: 1, Message: "duplicate key " + strconv.Quote(keyText)}
		}

		seen[keyText] = true

		valNode, err := p.readFieldValue(f, line.Num, depth, depth+1)
		if err != nil {
			return 0, err
		}

		pairs = append(pairs, Pair{Key: keyIndex, Value: valNode})
	}

	// Nested values have already appended their own pairs, so this body's
	// pairs are appended only now to keep them one contiguous range.
	start := len(p.view.Pairs)
	p.view.Pairs = append(p.view.Pairs, pairs...)

	n := Node{Kind: KindObject, FirstChild: start, ChildLen: len(pairs)}

	return p.view.addNode(n), nil
}

func (p *parser) internKey(f fieldHead) (string, int) {
	if f.keyIsOwned {
		return f.keyOwned, p.view.addOwnedString(f.keyOwned)
	}

	text := p.view.Input[f.keyStart:f.keyEnd]

	return text, p.view.addStringSpan(f.keyStart, f.keyEnd)
}

func (p *parser) readFieldValue(f fieldHead, lineNum, depth, childDepth int) (int, error) {
	if f.length != nil || len(f.fields) > 0 {
		return p.readArrayValue(f, lineNum, depth, childDepth)
	}

	if f.hasValue {
		return p.parseScalarSpan(f.valueStart, f.valueEnd, lineNum)
	}

	line, ok := p.peek()
	if ok && line.Level == childDepth {
		return p.parseObjectBody(childDepth)
	}

	return p.view.addNode(Node{Kind: KindObject}), nil
}

func (p *parser) readArrayValue(f fieldHead, lineNum, depth, childDepth int) (int, error) {
	n := 0
	if f.length != nil {
		n = *f.length
	}

	if n < 0 {
		return 0, &Violation{Line: lineNum, Message: "array length must be non-negative"}
	}

	if len(f.fields) > 0 {
		return p.readTabularRows(f, lineNum, n, childDepth)
	}

	if f.hasValue {
		return p.readInlineArray(f, lineNum, n)
	}

	return p.readBlockArray(lineNum, n, childDepth)
}

func (p *parser) readInlineArray(f fieldHead, lineNum, n int) (int, error) {
	start := len(p.view.Children)

	if f.valueStart == f.valueEnd && n == 0 {
		node := Node{Kind: KindArray, FirstChild: start, ChildLen: 0}

		return p.view.addNode(node), nil
	}

	raw := p.view.Input[f.valueStart:f.valueEnd]

	spans, err := splitDelimitedSpans(raw, f.valueStart, p.profile.Delimiter.Byte())
	if err != nil {
		return 0, &Violation{Line: lineNum, Message: err.Error()}
	}

	if len(spans) != n {
		return 0, &Violation{Line: lineNum, Message: "array length marker does not match element count"}
	}

	children := make([]int, n)

	for i, sp := range spans {
		child, err := p.parseScalarSpan(sp.start, sp.end, lineNum)
		if err != nil {
			return 0, err
		}

		children[i] = child
	}

	p.view.Children = append(p.view.Children, children...)

	node := Node{Kind: KindArray, FirstChild: start, ChildLen: n}

	return p.view.addNode(node), nil
}

func (p *parser) readBlockArray(lineNum, n, childDepth int) (int, error) {
	start := len(p.view.Children)

	count := 0

	for {
		line, ok := p.peek()
		if !ok || line.Level < childDepth {
			break
		}

		if line.Level > childDepth {
			return 0, &Violation{Line: line.Num, Column: line.Indent + 1, Message: "unexpected indentation in array body"}
		}

		if !isDashLine(line.Content) {
			return 0, &Violation{Line: line.Num, Column: line.Indent + 1, Message: "expected a list item introduced by \"-\""}
		}

		child, err := p.parseListItem(line, childDepth)
		if err != nil {
			return 0, err
		}

		p.view.Children = append(p.view.Children, child)
		count++
	}

	if count != n {
		return 0, &Violation{Line: lineNum, Message: "array length marker does not match element count"}
	}

	node := Node{Kind: KindArray, FirstChild: start, ChildLen: count}

	return p.view.addNode(node), nil
}

func (p *parser) readTabularRows(f fieldHead, lineNum, n, childDepth int) (int, error) {
	if len(f.fields) == 0 {
		return 0, &Violation{Line: lineNum, Message: "field list cannot be empty for tabular arrays"}
	}

	seen := make(map[string]bool, len(f.fields))
	fieldNames := make([]string, len(f.fields))

	for i, fs := range f.fields {
		name := fieldText(p.view.Input, fs)

		if name == "" {
			return 0, &Violation{Line: lineNum, Message: "field name cannot be empty"}
		}

		if seen[name] {
			return 0, &Violation{Line: lineNum, Message: "duplicate field name: " + name}
		}

		seen[name] = true
		fieldNames[i] = name
	}

	start := len(p.view.Children)
	count := 0

	for {
		line, ok := p.peek()
		if !ok || line.Level < childDepth {
			break
		}

		if line.Level > childDepth {
			return 0, &Violation{Line: line.Num, Column: line.Indent + 1, Message: "unexpected indentation in tabular body"}
		}

		lineOffset := p.scan.lineContentOffset(line)

		spans, err := splitDelimitedSpans(line.Content, lineOffset, p.profile.Delimiter.Byte())
		if err != nil {
			return 0, &Violation{Line: line.Num, Message: err.Error()}
		}

		if len(spans) != len(f.fields) {
			return 0, &Violation{Line: line.Num, Message: "tabular row arity does not match the declared field list"}
		}

		pairStart := len(p.view.Pairs)

		for i, name := range fieldNames {
			keyIdx := p.view.addOwnedString(name)

			valNode, err := p.parseScalarSpan(spans[i].start, spans[i].end, line.Num)
			if err != nil {
				return 0, err
			}

			p.view.Pairs = append(p.view.Pairs, Pair{Key: keyIdx, Value: valNode})
		}

		row := Node{Kind: KindObject, FirstChild: pairStart, ChildLen: len(f.fields)}
		p.view.Children = append(p.view.Children, p.view.addNode(row))
		count++
		p.idx++
	}

	if count != n {
		return 0, &Violation{Line: lineNum, Message: "array length marker does not match element count"}
	}

	node := Node{Kind: KindArray, FirstChild: start, ChildLen: count}

	return p.view.addNode(node), nil
}

func (p *parser) parseListItem(line toon.Line, depth int) (int, error) {
	content := line.Content
	offset := p.scan.lineContentOffset(line)

	if content == "-" {
		p.idx++

		return p.view.addNode(Node{Kind: KindObject}), nil
	}

	rest := strings.TrimPrefix(content, "- ")
	restOffset := offset + (len(content) - len(rest))

	if f, ok := p.tryParseFieldHead(rest, line.Num, restOffset); ok {
		p.idx++

		_, keyIdx := p.internKey(f)

		val, err := p.readFieldValue(f, line.Num, depth, depth+2)
		if err != nil {
			return 0, err
		}

		body, err := p.parseObjectBody(depth + 1)
		if err != nil {
			return 0, err
		}

		pairs := append([]Pair{{Key: keyIdx, Value: val}}, p.view.NodePairs(p.view.Nodes[body])...)
		pairStart := len(p.view.Pairs)
		p.view.Pairs = append(p.view.Pairs, pairs...)

		node := Node{Kind: KindObject, FirstChild: pairStart, ChildLen: len(pairs)}

		return p.view.addNode(node), nil
	}

	if strings.HasPrefix(rest, "[") {
		p.idx++

		f, ok := p.tryParseFieldHead(rest, line.Num, restOffset)
		if !ok {
			return 0, &Violation{Line: line.Num, Message: "expected an array length marker"}
		}

		return p.readArrayValue(f, line.Num, depth, depth+1)
	}

	p.idx++

	return p.parseScalarSpan(restOffset, restOffset+len(rest), line.Num)
}

func isDashLine(content string) bool {
	return content == "-" || strings.HasPrefix(content, "- ")
}
