package qam

type point struct {
	i, q int8
}

// levels amplitude levels per axis, index is the 2-bit level value
var levels = [4]int8{-96, -32, 32, 96}

// constellation 16-QAM, high 2 bits of the symbol pick the I level, low 2
// bits the Q level
var constellation = [16]point{
	0x0: {-96, -96}, 0x1: {-96, -32}, 0x2: {-96, 32}, 0x3: {-96, 96},
	0x4: {-32, -96}, 0x5: {-32, -32}, 0x6: {-32, 32}, 0x7: {-32, 96},
	0x8: {32, -96}, 0x9: {32, -32}, 0xA: {32, 32}, 0xB: {32, 96},
	0xC: {96, -96}, 0xD: {96, -32}, 0xE: {96, 32}, 0xF: {96, 96},
}

// level nearest amplitude level, thresholds at -64, 0 and 64
func level(v int8) byte {
	switch {
	case v <= -64:
		return 0
	case v <= 0:
		return 1
	case v <= 64:
		return 2
	default:
		return 3
	}
}

func mapSymbol(symbol byte) point {
	return constellation[symbol&0x0F]
}

func demapSymbol(i, q int8) byte {
	return level(i)<<2 | level(q)
}
