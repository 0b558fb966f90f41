package state

import "github.com/hupe1980/corebench/internal/crc"

// Bench scans input, xors every step-th non-comma byte with the low byte of
// seed1, scans again, then xors with the low byte of seed2. With seed1 equal
// to seed2 the input is left unchanged. The final and transition counters are
// folded into acc, interleaved per state.
func Bench(input []byte, seed1, seed2, step int16, acc uint16) uint16 {
	var final, track Counts

	if step < 1 {
		step = 1
	}

	Scan(input, &final, &track)
	corrupt(input, uint8(seed1), int(step)) //nolint:gosec // low byte intended

	Scan(input, &final, &track)
	corrupt(input, uint8(seed2), int(step)) //nolint:gosec // low byte intended

	for i := range final {
		acc = crc.U32(final[i], acc)
		acc = crc.U32(track[i], acc)
	}
	return acc
}

func corrupt(input []byte, mask uint8, step int) {
	for pos := 0; pos < len(input); pos += step {
		if input[pos] != ',' {
			input[pos] ^= mask
		}
	}
}
