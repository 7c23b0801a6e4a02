package blend

// div255 approximates x/255 as (x+255)>>8. For products of two bytes the
// result is at most one above the exact quotient and exact at both ends.
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 scales a by b/255. Multiplying by 255 is the identity and by 0
// yields 0.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

func inv255(x byte) byte {
	return 255 - x
}

// addClamp is saturating byte addition.
func addClamp(a, b byte) byte {
	if s := uint16(a) + uint16(b); s < 256 {
		return byte(s)
	}
	return 255
}
