package canonical

import "github.com/bnomei/serde-toon-sub001/toon"

// ToValue materializes node (and its descendants) into a [toon.Value]
// tree, the same shape [toon.Decode] produces. This gives up the arena's
// zero-copy advantage — every string and number span is copied out — so
// callers that only need to inspect or validate a document should prefer
// walking the [ArenaView] directly; ToValue is for interoperating with
// code written against the general [toon.Value] API, such as [schema] or
// the encoder.
func (v *ArenaView) ToValue() (toon.Value, error) {
	root, ok := v.Root()
	if !ok {
		return toon.NewObject(), nil
	}

	return v.nodeToValue(root)
}

func (v *ArenaView) nodeToValue(n Node) (toon.Value, error) {
	switch n.Kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return n.Bool, nil
	case KindNumber:
		text, ok := v.GetNumStr(n.DataIndex)
		if !ok {
			return nil, &Violation{Message: "missing number span"}
		}

		return toon.ParseNumber(text)
	case KindString:
		s, ok := v.GetStr(n.DataIndex)
		if !ok {
			return nil, &Violation{Message: "missing string span"}
		}

		return s, nil
	case KindArray:
		children := v.NodeChildren(n)
		values := make([]toon.Value, len(children))

		for i, childIdx := range children {
			val, err := v.nodeToValue(v.Nodes[childIdx])
			if err != nil {
				return nil, err
			}

			values[i] = val
		}

		return values, nil
	case KindObject:
		pairs := v.NodePairs(n)
		obj := toon.NewObjectWithCapacity(len(pairs))

		for _, pair := range pairs {
			key, ok := v.GetStr(pair.Key)
			if !ok {
				return nil, &Violation{Message: "missing object key"}
			}

			val, err := v.nodeToValue(v.Nodes[pair.Value])
			if err != nil {
				return nil, err
			}

			if err := obj.Insert(key, val); err != nil {
				return nil, &Violation{Message: err.Error()}
			}
		}

		return obj, nil
	default:
		return nil, &Violation{Message: "unknown node kind"}
	}
}

// DecodeCanonicalValue parses input under profile and materializes the
// result as a [toon.Value], combining [DecodeCanonical] and
// [ArenaView.ToValue] for callers that just want the decoded tree.
func DecodeCanonicalValue(input string, profile Profile) (toon.Value, error) {
	view, err := DecodeCanonical(input, profile)
	if err != nil {
		return nil, err
	}

	return view.ToValue()
}
