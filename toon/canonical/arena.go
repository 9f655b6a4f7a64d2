package canonical

// NodeKind classifies an arena [Node].
type NodeKind uint8

const (
	KindNull NodeKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a lowercase name for k, matching the JSON type names used
// elsewhere in this codebase's schema inference.
func (k NodeKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Node is one entry in an [ArenaView]'s flat node table. Its payload is
// carried directly on the struct rather than in a separate tagged union,
// since Kind already disambiguates which fields are meaningful:
//
//   - KindBool:   Bool
//   - KindNumber: DataIndex indexes ArenaView.Numbers
//   - KindString: DataIndex indexes ArenaView.Strings
//   - KindArray:  FirstChild/ChildLen index into ArenaView.Children
//   - KindObject: FirstChild/ChildLen index into ArenaView.Pairs
type Node struct {
	Kind       NodeKind
	FirstChild int
	ChildLen   int
	Bool       bool
	DataIndex  int
}

// Span is a byte range [Start, End) into the original input.
type Span struct {
	Start int
	End   int
}

// StringRef is either a direct span into the input (the common,
// zero-copy case) or an owned string, used when the source text required
// unescaping (a quoted key or value containing a backslash escape) and so
// cannot be represented as a contiguous span of the original bytes.
type StringRef struct {
	Span    Span
	Owned   string
	IsOwned bool
}

// Pair is one key/value entry of an object node: Key indexes
// ArenaView.Strings, Value indexes ArenaView.Nodes.
type Pair struct {
	Key   int
	Value int
}

// ArenaView is the zero-copy parse output: a flat table of [Node]s plus
// side tables of string refs, number spans, array children, and object
// pairs, all referencing byte ranges of Input wherever possible.
type ArenaView struct {
	Input     string
	Nodes     []Node
	Strings   []StringRef
	Numbers   []Span
	Children  []int
	Pairs     []Pair
	RootIndex int
}

// NewArenaView returns an empty [ArenaView] over input, ready for a parser
// to populate.
func NewArenaView(input string) *ArenaView {
	return &ArenaView{Input: input}
}

// Root returns the root node, recorded at construction time by the parser
// since nodes are appended bottom-up (a container's children are built,
// and so occupy earlier indices, before the container node itself).
func (v *ArenaView) Root() (Node, bool) {
	if len(v.Nodes) == 0 {
		return Node{}, false
	}

	return v.Nodes[v.RootIndex], true
}

// GetStr resolves a string-table index to its text.
func (v *ArenaView) GetStr(index int) (string, bool) {
	if index < 0 || index >= len(v.Strings) {
		return "", false
	}

	ref := v.Strings[index]
	if ref.IsOwned {
		return ref.Owned, true
	}

	return v.Input[ref.Span.Start:ref.Span.End], true
}

// GetNumStr resolves a number-table index to its original literal text,
// for callers that want to reparse or re-emit it verbatim.
func (v *ArenaView) GetNumStr(index int) (string, bool) {
	if index < 0 || index >= len(v.Numbers) {
		return "", false
	}

	span := v.Numbers[index]

	return v.Input[span.Start:span.End], true
}

// NodeChildren returns node's array element node indices.
func (v *ArenaView) NodeChildren(node Node) []int {
	start := node.FirstChild
	end := start + node.ChildLen

	if start < 0 || end > len(v.Children) || start > end {
		return nil
	}

	return v.Children[start:end]
}

// NodePairs returns node's object key/value pairs, in source order.
func (v *ArenaView) NodePairs(node Node) []Pair {
	start := node.FirstChild
	end := start + node.ChildLen

	if start < 0 || end > len(v.Pairs) || start > end {
		return nil
	}

	return v.Pairs[start:end]
}

// addStringSpan appends a zero-copy string ref and returns its index.
func (v *ArenaView) addStringSpan(start, end int) int {
	v.Strings = append(v.Strings, StringRef{Span: Span{Start: start, End: end}})

	return len(v.Strings) - 1
}

// addOwnedString appends an owned (unescaped) string ref and returns its
// index.
func (v *ArenaView) addOwnedString(s string) int {
	v.Strings = append(v.Strings, StringRef{Owned: s, IsOwned: true})

	return len(v.Strings) - 1
}

// addNumberSpan appends a number literal span and returns its index.
func (v *ArenaView) addNumberSpan(start, end int) int {
	v.Numbers = append(v.Numbers, Span{Start: start, End: end})

	return len(v.Numbers) - 1
}

// addNode appends node and returns its index.
func (v *ArenaView) addNode(n Node) int {
	v.Nodes = append(v.Nodes, n)

	return len(v.Nodes) - 1
}
