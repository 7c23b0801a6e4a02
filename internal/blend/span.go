package blend

// BlendSpan composites the first n pixels of src onto dst in place. Both
// slices hold premultiplied RGBA and must be at least 4*n bytes long.
func BlendSpan(dst, src []byte, n int, mode BlendMode) {
	if n <= 0 {
		return
	}
	fn := GetBlendFunc(mode)

	dst = dst[:4*n]
	src = src[:4*n]
	for off := 0; off < len(dst); off += 4 {
		r, g, b, a := fn(
			src[off+0], src[off+1], src[off+2], src[off+3],
			dst[off+0], dst[off+1], dst[off+2], dst[off+3],
		)
		dst[off+0] = r
		dst[off+1] = g
		dst[off+2] = b
		dst[off+3] = a
	}
}

// CoverageSpan draws an 8-bit coverage mask into n pixels of dst, as if an
// alpha-only image were painted with opaque black using Source mode: each
// destination pixel becomes (0, 0, 0, coverage).
func CoverageSpan(dst, coverage []byte, n int) {
	if n <= 0 {
		return
	}
	dst = dst[:4*n]
	for i, c := range coverage[:n] {
		off := 4 * i
		dst[off+0] = 0
		dst[off+1] = 0
		dst[off+2] = 0
		dst[off+3] = c
	}
}
