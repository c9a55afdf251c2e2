package sim

// lineSpacing values used when laying out rows of players.
const (
	allyKickoffSpacing  = 11.0
	enemyKickoffSpacing = 12.0
)

// lineOffsets returns count lateral offsets, left to right, spread
// symmetrically around zero with the given gap between neighbours.
func lineOffsets(count int, spacing float64) []float64 {
	offsets := make([]float64, count)
	mid := float64(count-1) / 2
	for i := range offsets {
		offsets[i] = (float64(i) - mid) * spacing
	}
	return offsets
}

// lineSlots places count players on a row at depth z centred on centerX.
func lineSlots(count int, spacing, centerX, z float64) []Vec3 {
	offsets := lineOffsets(count, spacing)
	slots := make([]Vec3, count)
	for i, off := range offsets {
		slots[i] = Vec3{X: centerX + off, Z: z}
	}
	return slots
}
