package jit

// Register encodings for the x86-64 general-purpose registers, keyed the
// same way the ModR/M and REX encoders expect: 0-7 are the legacy
// registers, 8-15 need REX.B/REX.R to reach.
const (
	regRAX = 0
	regRCX = 1
	regRDX = 2
	regRBX = 3
	regRSP = 4
	regRBP = 5
	regRSI = 6
	regRDI = 7
	regR8  = 8
	regR9  = 9
)

// Condition codes for the two-byte Jcc encoding (0F 8x).
const (
	ccE  = 0x84 // equal / zero
	ccNE = 0x85 // not equal / not zero
)
