package video

// SpritePriorityBuffer resolves, per pixel column on the current scanline,
// which sprite owns that pixel when more than one sprite overlaps it. Real
// hardware resolves this by X coordinate first (lower X wins) and OAM
// index second (lower index wins when X is tied); both rules are captured
// here so drawSprites only ever needs to ask "do I own this pixel?".
type SpritePriorityBuffer struct {
	ownerIndex [FramebufferWidth]int
	ownerX     [FramebufferWidth]int
}

// Clear resets every column to "unowned".
func (s *SpritePriorityBuffer) Clear() {
	for i := range s.ownerIndex {
		s.ownerIndex[i] = -1
		s.ownerX[i] = 0xFF
	}
}

// TryClaimPixel attempts to make spriteIndex the owner of pixelX, given
// that sprite's screen X coordinate. It reports whether the claim
// succeeded (the caller should only draw the pixel if it did).
func (s *SpritePriorityBuffer) TryClaimPixel(pixelX, spriteIndex, spriteX int) bool {
	if pixelX < 0 || pixelX >= FramebufferWidth {
		return false
	}

	current := s.ownerIndex[pixelX]
	if current == -1 {
		s.ownerIndex[pixelX] = spriteIndex
		s.ownerX[pixelX] = spriteX
		return true
	}

	if spriteX < s.ownerX[pixelX] {
		s.ownerIndex[pixelX] = spriteIndex
		s.ownerX[pixelX] = spriteX
		return true
	}
	if spriteX == s.ownerX[pixelX] && spriteIndex < current {
		s.ownerIndex[pixelX] = spriteIndex
		return true
	}
	return false
}

// GetOwner returns the OAM index currently owning pixelX, or -1.
func (s *SpritePriorityBuffer) GetOwner(pixelX int) int {
	if pixelX < 0 || pixelX >= FramebufferWidth {
		return -1
	}
	return s.ownerIndex[pixelX]
}
