// Package blend holds the span-level Porter-Duff operators behind the mask
// compositor.
//
// Every operator takes and returns premultiplied 8-bit channels laid out as
// in image.RGBA. See Porter and Duff, "Compositing Digital Images" (1984).
package blend

// BlendMode selects a compositing operator.
type BlendMode uint8

// Supported operators. S is the source pixel, D the destination.
const (
	BlendSource     BlendMode = iota // S
	BlendSourceOver                  // S + D*(1-Sa)
	BlendSourceIn                    // S*Da
)

var modeNames = [...]string{
	BlendSource:     "Source",
	BlendSourceOver: "SourceOver",
	BlendSourceIn:   "SourceIn",
}

func (m BlendMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Unknown"
}

// BlendFunc combines one source pixel with one destination pixel.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetBlendFunc returns the operator for mode. Unknown modes fall back to
// SourceOver.
func GetBlendFunc(mode BlendMode) BlendFunc {
	switch mode {
	case BlendSource:
		return blendSource
	case BlendSourceIn:
		return blendSourceIn
	default:
		return blendSourceOver
	}
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	k := inv255(sa)
	return addClamp(sr, mulDiv255(dr, k)),
		addClamp(sg, mulDiv255(dg, k)),
		addClamp(sb, mulDiv255(db, k)),
		addClamp(sa, mulDiv255(da, k))
}

// blendSourceIn keeps the source only where the destination has coverage.
func blendSourceIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}
