package toon

import (
	"strings"

	"github.com/bnomei/serde-toon-sub001/parallel"
)

// Decode parses TOON text into a [Value] under opts.
func Decode(text string, opts DecodeOptions) (Value, error) {
	opts = opts.withDefaults()

	scan, err := ScanLines(text, opts.Indent, opts.Strict)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(scan.Lines))

	for _, l := range scan.Lines {
		if !l.Blank {
			lines = append(lines, l)
		}
	}

	d := &decodeState{lines: lines, opts: opts}

	val, err := d.parseRoot()
	if err != nil {
		return nil, err
	}

	if opts.ExpandPaths == ExpandPathsSafe {
		if obj, ok := val.(*Object); ok {
			expanded, err := ExpandObjectPaths(obj)
			if err != nil {
				return nil, err
			}

			return expanded, nil
		}
	}

	return val, nil
}

// Validate reports the first structural violation in text, if any. It runs
// the same parser as [Decode] and discards the resulting tree; it exists
// as a convenience for callers that only care whether text parses, not
// what it parses to.
func Validate(text string) error {
	_, err := Decode(text, DefaultDecodeOptions())

	return err
}

type decodeState struct {
	lines []Line
	opts  DecodeOptions
	idx   int
}

func (d *decodeState) peek() (Line, bool) {
	if d.idx >= len(d.lines) {
		return Line{}, false
	}

	return d.lines[d.idx], true
}

func (d *decodeState) parseRoot() (Value, error) {
	if len(d.lines) == 0 {
		return NewObject(), nil
	}

	first := d.lines[0]
	if first.Level != 0 {
		return nil, &IndentError{
			Position: Position{Line: first.Num, Column: 1},
			Message:  "first line must not be indented",
		}
	}

	if isDashLine(first.Content) {
		return nil, &StructureError{
			Position: Position{Line: first.Num, Column: 1},
			Message:  "a root-level list item has no declaring key",
		}
	}

	if strings.HasPrefix(first.Content, "[") {
		return d.parseKeylessRootArray()
	}

	return d.parseObjectBody(0)
}

func (d *decodeState) parseKeylessRootArray() (Value, error) {
	line := d.lines[d.idx]

	f, err := parseFieldHead(line.Content, line.Num)
	if err != nil {
		return nil, err
	}

	if f.length == nil {
		return nil, &StructureError{
			Position: Position{Line: line.Num, Column: 1},
			Message:  "expected an array length marker",
		}
	}

	d.idx++

	return d.readArrayValue(f, line.Num, 0, 1)
}

// parseObjectBody consumes a run of sibling KEY lines at depth, building
// an Object, until a line at a shallower level or end of input is seen.
func (d *decodeState) parseObjectBody(depth int) (*Object, error) {
	obj := NewObject()

	for {
		line, ok := d.peek()
		if !ok || line.Level < depth {
			break
		}

		if line.Level > depth {
			return nil, &StructureError{
				Position: Position{Line: line.Num, Column: line.Indent + 1},
				Message:  "unexpected indentation",
			}
		}

		if isDashLine(line.Content) {
			return nil, &StructureError{
				Position: Position{Line: line.Num, Column: line.Indent + 1},
				Message:  "unexpected list item inside an object body",
			}
		}

		key, val, err := d.parseKeyedLine(line, depth)
		if err != nil {
			return nil, err
		}

		if err := obj.Insert(key, val); err != nil {
			return nil, &StructureError{
				Position: Position{Line: line.Num, Column: 1},
				Message:  err.Error(),
			}
		}
	}

	return obj, nil
}

// parseKeyedLine parses one "KEY: ..." family line at depth, consuming it
// (and any child lines its value requires) and returning the decoded key
// and value.
func (d *decodeState) parseKeyedLine(line Line, depth int) (string, Value, error) {
	f, err := parseFieldHead(line.Content, line.Num)
	if err != nil {
		return "", nil, err
	}

	d.idx++

	val, err := d.readFieldValue(f, line.Num, depth, depth+1)
	if err != nil {
		return "", nil, err
	}

	return f.key, val, nil
}

// readFieldValue interprets a parsed field head, consuming any following
// child lines (object fields, tabular rows, or list items) at childDepth.
func (d *decodeState) readFieldValue(f fieldHead, lineNum, depth, childDepth int) (Value, error) {
	if f.length != nil || len(f.fields) > 0 {
		return d.readArrayValue(f, lineNum, depth, childDepth)
	}

	if f.hasValue {
		v, err := parseScalarText(f.value)
		if err != nil {
			return nil, &ScalarError{Position: Position{Line: lineNum}, Message: err.Error()}
		}

		return v, nil
	}

	line, ok := d.peek()
	if ok && line.Level == childDepth {
		return d.parseObjectBody(childDepth)
	}

	return NewObject(), nil
}

// readArrayValue interprets a field head that carries an array length
// marker (with or without a tabular field list), consuming inline tokens,
// tabular rows, or block list items as appropriate.
func (d *decodeState) readArrayValue(f fieldHead, lineNum, depth, childDepth int) (Value, error) {
	n := 0
	if f.length != nil {
		n = *f.length
	}

	if n < 0 {
		return nil, &InvalidInputError{Message: "array length must be non-negative"}
	}

	if len(f.fields) > 0 {
		return d.readTabularRows(f, lineNum, n, childDepth)
	}

	if f.hasValue {
		return d.readInlineArray(f, lineNum, n)
	}

	return d.readBlockArray(lineNum, n, childDepth)
}

func (d *decodeState) readInlineArray(f fieldHead, lineNum, n int) (Value, error) {
	if f.value == "" && n == 0 {
		return []Value{}, nil
	}

	tokens, err := splitDelimited(f.value, f.delim)
	if err != nil {
		return nil, err
	}

	if len(tokens) != n {
		return nil, &LengthMismatchError{
			Position: Position{Line: lineNum},
			Expected: n,
			Actual:   len(tokens),
		}
	}

	values := make([]Value, n)

	for i, tok := range tokens {
		v, err := parseScalarText(tok)
		if err != nil {
			return nil, &ScalarError{Position: Position{Line: lineNum}, Message: err.Error()}
		}

		values[i] = v
	}

	return values, nil
}

func (d *decodeState) readBlockArray(lineNum, n, childDepth int) (Value, error) {
	values := make([]Value, 0, n)

	for {
		line, ok := d.peek()
		if !ok || line.Level < childDepth {
			break
		}

		if line.Level > childDepth {
			return nil, &StructureError{
				Position: Position{Line: line.Num, Column: line.Indent + 1},
				Message:  "unexpected indentation in array body",
			}
		}

		if !isDashLine(line.Content) {
			return nil, &StructureError{
				Position: Position{Line: line.Num, Column: line.Indent + 1},
				Message:  "expected a list item introduced by \"-\"",
			}
		}

		v, err := d.parseListItem(line, childDepth)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	if len(values) != n {
		return nil, &LengthMismatchError{Position: Position{Line: lineNum}, Expected: n, Actual: len(values)}
	}

	return values, nil
}

// readTabularRows consumes the rows of a tabular array body. Gathering the
// raw row lines is inherently sequential (it shares d's cursor), but parsing
// each gathered line into a field-named [*Object] is independent per row, so
// that step opts into [parallel.MapErr] once the row count crosses
// [parallel.Threshold].
func (d *decodeState) readTabularRows(f fieldHead, lineNum, n, childDepth int) (Value, error) {
	if err := validateFieldList(f.fields); err != nil {
		if fe, ok := err.(*FieldError); ok {
			fe.Position = Position{Line: lineNum}
		}

		return nil, err
	}

	rowLines := make([]Line, 0, n)

	for {
		line, ok := d.peek()
		if !ok || line.Level < childDepth {
			break
		}

		if line.Level > childDepth {
			return nil, &StructureError{
				Position: Position{Line: line.Num, Column: line.Indent + 1},
				Message:  "unexpected indentation in tabular body",
			}
		}

		rowLines = append(rowLines, line)
		d.idx++
	}

	if len(rowLines) != n {
		return nil, &LengthMismatchError{Position: Position{Line: lineNum}, Expected: n, Actual: len(rowLines)}
	}

	parseRow := func(line Line) (Value, error) {
		tokens, err := splitDelimited(line.Content, f.delim)
		if err != nil {
			return nil, err
		}

		if len(tokens) != len(f.fields) {
			return nil, &FieldError{
				Position: Position{Line: line.Num},
				Message:  "tabular row arity does not match the declared field list",
			}
		}

		row := NewObjectWithCapacity(len(f.fields))

		for i, name := range f.fields {
			v, err := parseScalarText(tokens[i])
			if err != nil {
				return nil, &ScalarError{Position: Position{Line: line.Num}, Message: err.Error()}
			}

			row.Set(name, v)
		}

		return row, nil
	}

	if !parallel.ShouldParallelize(len(rowLines)) {
		values := make([]Value, len(rowLines))

		for i, line := range rowLines {
			v, err := parseRow(line)
			if err != nil {
				return nil, err
			}

			values[i] = v
		}

		return values, nil
	}

	return parallel.MapErr(rowLines, parseRow)
}

// parseListItem parses one "- ..." item of a block array at depth.
func (d *decodeState) parseListItem(line Line, depth int) (Value, error) {
	content := line.Content

	if content == "-" {
		d.idx++

		return NewObject(), nil
	}

	rest := strings.TrimPrefix(content, "- ")

	if f, ok := tryParseFieldHead(rest, line.Num); ok {
		d.idx++

		obj := NewObject()

		val, err := d.readFieldValue(f, line.Num, depth, depth+2)
		if err != nil {
			return nil, err
		}

		if err := obj.Insert(f.key, val); err != nil {
			return nil, &StructureError{Position: Position{Line: line.Num}, Message: err.Error()}
		}

		siblings, err := d.parseObjectBody(depth + 1)
		if err != nil {
			return nil, err
		}

		var insertErr error

		siblings.Range(func(k string, v Value) bool {
			if insertErr = obj.Insert(k, v); insertErr != nil {
				return false
			}

			return true
		})

		if insertErr != nil {
			return nil, &StructureError{Position: Position{Line: line.Num}, Message: insertErr.Error()}
		}

		return obj, nil
	}

	if strings.HasPrefix(rest, "[") {
		d.idx++

		f, err := parseFieldHead(rest, line.Num)
		if err != nil {
			return nil, err
		}

		return d.readArrayValue(f, line.Num, depth, depth+1)
	}

	d.idx++

	v, err := parseScalarText(rest)
	if err != nil {
		return nil, &ScalarError{Position: Position{Line: line.Num}, Message: err.Error()}
	}

	return v, nil
}

func isDashLine(content string) bool {
	return content == "-" || strings.HasPrefix(content, "- ")
}
