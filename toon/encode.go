package toon

import (
	"strconv"
	"strings"

	"github.com/bnomei/serde-toon-sub001/parallel"
)

// Encoder renders [Value] trees as TOON text under a fixed [EncodeOptions]
// configuration.
type Encoder struct {
	opts EncodeOptions
}

// NewEncoder returns an Encoder configured with opts. Zero-valued fields in
// opts take their documented defaults.
func NewEncoder(opts EncodeOptions) *Encoder {
	return &Encoder{opts: opts.withDefaults()}
}

// Encode renders v as a TOON document.
func (e *Encoder) Encode(v Value) (string, error) {
	normalized := Normalize(v)

	st := &encodeState{opts: e.opts}
	if err := st.encodeRoot(normalized); err != nil {
		return "", err
	}

	return strings.Join(st.lines, "\n"), nil
}

// EncodeToBytes is equivalent to Encode but returns a byte slice.
func (e *Encoder) EncodeToBytes(v Value) ([]byte, error) {
	s, err := e.Encode(v)
	if err != nil {
		return nil, err
	}

	return []byte(s), nil
}

// Encode renders v as a TOON document using a one-shot Encoder built from
// opts.
func Encode(v Value, opts EncodeOptions) (string, error) {
	return NewEncoder(opts).Encode(v)
}

// EncodeToBytes is equivalent to Encode but returns a byte slice.
func EncodeToBytes(v Value, opts EncodeOptions) ([]byte, error) {
	return NewEncoder(opts).EncodeToBytes(v)
}

type encodeState struct {
	opts  EncodeOptions
	lines []string
}

func (s *encodeState) indent(depth int) string {
	if depth <= 0 {
		return ""
	}

	return strings.Repeat(" ", depth*s.opts.Indent)
}

func (s *encodeState) emit(line string) {
	s.lines = append(s.lines, line)
}

func (s *encodeState) checkDepth(depth int) error {
	if depth > MaxDepth {
		return &StructureError{Message: "maximum nesting depth exceeded"}
	}

	return nil
}

func (s *encodeState) encodeRoot(v Value) error {
	switch val := v.(type) {
	case *Object:
		if val.Len() == 0 {
			return nil
		}

		return s.encodeObjectFields(val, 0)
	case []Value:
		return s.encodeArrayField("", val, 0, false, 1)
	default:
		token, err := s.scalarToken(val)
		if err != nil {
			return err
		}

		s.emit(token)

		return nil
	}
}

func (s *encodeState) scalarToken(v Value) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case bool:
		if val {
			return "true", nil
		}

		return "false", nil
	case Number:
		return FormatNumber(val), nil
	case string:
		if NeedsQuoting(val, s.opts.Delimiter) {
			return QuoteScalar(val), nil
		}

		return val, nil
	default:
		return "", &InvalidInputError{Message: "value is not a scalar, array, or object"}
	}
}

func isScalar(v Value) bool {
	switch v.(type) {
	case nil, bool, Number, string:
		return true
	default:
		return false
	}
}

// encodeObjectFields emits obj's key: value pairs at depth, one per line,
// applying key folding first when enabled.
func (s *encodeState) encodeObjectFields(obj *Object, depth int) error {
	if err := s.checkDepth(depth); err != nil {
		return err
	}

	indent := s.indent(depth)

	for _, key := range obj.Keys() {
		val, _ := obj.Get(key)

		foldedKey, foldedVal := key, val
		if s.opts.KeyFolding == KeyFoldingSafe {
			foldedKey, foldedVal = FoldChain(key, val, s.opts.Delimiter, s.opts.FlattenDepth)
		}

		keyLiteral := EncodeKey(foldedKey, s.opts.Delimiter)

		switch v := foldedVal.(type) {
		case []Value:
			if err := s.encodeArrayField(keyLiteral, v, depth, false, depth+1); err != nil {
				return err
			}
		case *Object:
			s.emit(indent + keyLiteral + ":")

			if v.Len() > 0 {
				if err := s.encodeObjectFields(v, depth+1); err != nil {
					return err
				}
			}
		default:
			token, err := s.scalarToken(v)
			if err != nil {
				return err
			}

			s.emit(indent + keyLiteral + ": " + token)
		}
	}

	return nil
}

// encodeArrayField emits one array value: inline scalars, tabular rows, or
// a block of dash items. headerDepth is where the header line's indent
// column sits; dashPrefix prepends "- " to the header (used when this
// array is the first field of a dash-introduced object); childDepth is
// the depth at which tabular rows / block items render.
func (s *encodeState) encodeArrayField(keyLiteral string, values []Value, headerDepth int, dashPrefix bool, childDepth int) error {
	if err := s.checkDepth(headerDepth); err != nil {
		return err
	}

	delim := s.opts.Delimiter

	allScalar := true

	for _, v := range values {
		if !isScalar(v) {
			allScalar = false

			break
		}
	}

	if allScalar {
		header := renderArrayHeader(keyLiteral, len(values), delim, nil)
		line := s.indent(headerDepth)

		if dashPrefix {
			line += "- "
		}

		line += header

		if len(values) > 0 {
			tokens := make([]string, len(values))

			for i, v := range values {
				token, err := s.scalarToken(v)
				if err != nil {
					return err
				}

				tokens[i] = token
			}

			line += " " + strings.Join(tokens, delim.String())
		}

		s.emit(line)

		return nil
	}

	if fields, ok := detectTabularFields(values); ok {
		header := renderArrayHeader(keyLiteral, len(values), delim, fields)
		line := s.indent(headerDepth)

		if dashPrefix {
			line += "- "
		}

		s.emit(line + header)

		rowIndent := s.indent(childDepth)

		// Each row's token rendering only reads v and the shared,
		// read-only opts, so rows opt into parallel.MapErr once there are
		// enough of them; the result slice preserves row order either way.
		renderRow := func(v Value) (string, error) {
			obj := v.(*Object)
			tokens := make([]string, len(fields))

			for i, f := range fields {
				fv, _ := obj.Get(f)

				token, err := s.scalarToken(fv)
				if err != nil {
					return "", err
				}

				tokens[i] = token
			}

			return rowIndent + strings.Join(tokens, delim.String()), nil
		}

		var rows []string

		if parallel.ShouldParallelize(len(values)) {
			rendered, err := parallel.MapErr(values, renderRow)
			if err != nil {
				return err
			}

			rows = rendered
		} else {
			rows = make([]string, len(values))

			for i, v := range values {
				rendered, err := renderRow(v)
				if err != nil {
					return err
				}

				rows[i] = rendered
			}
		}

		for _, row := range rows {
			s.emit(row)
		}

		return nil
	}

	header := renderArrayHeader(keyLiteral, len(values), delim, nil)
	line := s.indent(headerDepth)

	if dashPrefix {
		line += "- "
	}

	s.emit(line + header)

	for _, item := range values {
		if err := s.encodeListItem(item, childDepth); err != nil {
			return err
		}
	}

	return nil
}

// encodeListItem emits one "- " item of a block-form array at dashDepth.
func (s *encodeState) encodeListItem(item Value, dashDepth int) error {
	if err := s.checkDepth(dashDepth); err != nil {
		return err
	}

	indent := s.indent(dashDepth)

	switch v := item.(type) {
	case *Object:
		return s.encodeObjectListItem(v, dashDepth)
	case []Value:
		return s.encodeArrayField("", v, dashDepth, true, dashDepth+1)
	default:
		token, err := s.scalarToken(v)
		if err != nil {
			return err
		}

		s.emit(indent + "- " + token)

		return nil
	}
}

// encodeObjectListItem emits a dash-introduced object. An empty object
// becomes the bare "-" line. Otherwise the first field is merged onto the
// dash line when it is a scalar or array; any remaining fields (or, if the
// first field was itself an object, every field) render as a normal keyed
// block at dashDepth+1.
func (s *encodeState) encodeObjectListItem(obj *Object, dashDepth int) error {
	indent := s.indent(dashDepth)

	if obj.Len() == 0 {
		s.emit(indent + "-")

		return nil
	}

	keys := obj.Keys()
	firstKey := keys[0]
	firstVal, _ := obj.Get(firstKey)

	foldedKey, foldedVal := firstKey, firstVal
	if s.opts.KeyFolding == KeyFoldingSafe {
		foldedKey, foldedVal = FoldChain(firstKey, firstVal, s.opts.Delimiter, s.opts.FlattenDepth)
	}

	switch v := foldedVal.(type) {
	case []Value:
		keyLiteral := EncodeKey(foldedKey, s.opts.Delimiter)
		if err := s.encodeArrayField(keyLiteral, v, dashDepth, true, dashDepth+2); err != nil {
			return err
		}

		return s.encodeRemainingFields(obj, keys[1:], dashDepth+1)
	case *Object:
		s.emit(indent + "-")

		return s.encodeObjectFields(obj, dashDepth+1)
	default:
		keyLiteral := EncodeKey(foldedKey, s.opts.Delimiter)

		token, err := s.scalarToken(v)
		if err != nil {
			return err
		}

		s.emit(indent + "- " + keyLiteral + ": " + token)

		return s.encodeRemainingFields(obj, keys[1:], dashDepth+1)
	}
}

func (s *encodeState) encodeRemainingFields(obj *Object, keys []string, depth int) error {
	if len(keys) == 0 {
		return nil
	}

	rest := NewObjectWithCapacity(len(keys))

	for _, k := range keys {
		v, _ := obj.Get(k)
		rest.Set(k, v)
	}

	return s.encodeObjectFields(rest, depth)
}

// detectTabularFields reports the shared field list for values if every
// element is a non-empty *Object with identical keys in identical order
// and every field value is a scalar. Returns (nil, false) otherwise,
// which sends the caller to block form.
func detectTabularFields(values []Value) ([]string, bool) {
	if len(values) == 0 {
		return nil, false
	}

	first, ok := values[0].(*Object)
	if !ok || first.Len() == 0 {
		return nil, false
	}

	fields := first.Keys()

	for _, f := range fields {
		fv, _ := first.Get(f)
		if !isScalar(fv) {
			return nil, false
		}
	}

	for _, v := range values[1:] {
		obj, ok := v.(*Object)
		if !ok {
			return nil, false
		}

		keys := obj.Keys()
		if len(keys) != len(fields) {
			return nil, false
		}

		for i, k := range keys {
			if k != fields[i] {
				return nil, false
			}

			fv, _ := obj.Get(k)
			if !isScalar(fv) {
				return nil, false
			}
		}
	}

	return fields, true
}

// renderArrayHeader renders "KEY[N]:" or, with a field list, "KEY[N]{f1,f2}:".
// The length marker carries the active delimiter character when it is not
// the default comma, matching the inline-array and tabular-row separator.
func renderArrayHeader(keyLiteral string, length int, delim Delimiter, fields []string) string {
	var b strings.Builder

	b.WriteString(keyLiteral)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(length))

	if delim != DelimiterComma {
		b.WriteRune(delim.Rune())
	}

	b.WriteByte(']')

	if len(fields) > 0 {
		b.WriteByte('{')

		for i, f := range fields {
			if i > 0 {
				b.WriteRune(delim.Rune())
			}

			b.WriteString(EncodeKey(f, delim))
		}

		b.WriteByte('}')
	}

	b.WriteByte(':')

	return b.String()
}
