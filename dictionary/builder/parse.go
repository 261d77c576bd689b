package builder

import "strconv"

// parseU16U16I16 parses the left_context_id, right_context_id and
// word_cost columns shared by lexicon and user-dictionary rows (spec.md
// §4.2 step 3).
func parseU16U16I16(leftStr, rightStr, costStr string) (left, right uint16, cost int16, err error) {
	l, err := strconv.ParseUint(leftStr, 10, 16)
	if err != nil {
		return 0, 0, 0, err
	}
	r, err := strconv.ParseUint(rightStr, 10, 16)
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := strconv.ParseInt(costStr, 10, 16)
	if err != nil {
		return 0, 0, 0, err
	}
	return uint16(l), uint16(r), int16(c), nil
}
