package canonical

// DecodeCanonical parses input under the canonical profile, returning a
// zero-copy [ArenaView] over input's bytes. It fails with a [Violation]
// both for malformed TOON and for well-formed TOON that falls outside the
// canonical profile (tabs, a non-default indent width, a per-field
// delimiter override, or a delimiter other than profile.Delimiter);
// callers that need to accept such documents should fall back to
// [toon.Decode] with a general [toon.DecodeOptions] instead.
func DecodeCanonical(input string, profile Profile) (*ArenaView, error) {
	scan, err := Scan(input, profile)
	if err != nil {
		return nil, err
	}

	return Parse(input, scan, profile)
}

// ValidateCanonical reports the first canonical-profile violation in
// input, if any, discarding the parsed result. It exists for callers that
// only want to know whether the canonical fast path applies.
func ValidateCanonical(input string, profile Profile) error {
	_, err := DecodeCanonical(input, profile)

	return err
}
