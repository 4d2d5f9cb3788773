// Package keccak implements the unchanged NIST-draft Keccak-256 hash — not
// FIPS 202 SHA3-256, which differs only in its padding byte (0x06 instead
// of Keccak's 0x01). This is the hash Ethereum uses everywhere: addresses,
// transaction hashes, function selectors, event topics.
package keccak

const (
	rateBytes = 136 // 1088 bits
	laneCount = 25
	// domainByte is Keccak's padding byte. FIPS 202 SHA3 uses 0x06 here;
	// this single byte is the entire difference between the two hashes.
	domainByte = 0x01
)

// Size is the digest length in bytes.
const Size = 32

// Hash256 returns the Keccak-256 digest of data in one call.
func Hash256(data []byte) [Size]byte {
	var s State
	s.Absorb(data)
	return s.Finalize()
}

// Sum256 is an alias of Hash256 returning a slice, for callers that don't
// want a fixed-size array.
func Sum256(data []byte) []byte {
	d := Hash256(data)
	return d[:]
}

// State is the streaming Keccak-256 sponge. The zero value is ready to use.
// Absorb may be called any number of times with chunks of any length; it
// never modifies the caller's buffer. Finalize pads and squeezes the
// digest and may be called only once per State.
type State struct {
	lanes   [laneCount]uint64
	buf     [rateBytes]byte
	buflen  int
	done    bool
}

// Absorb feeds more input into the sponge.
func (s *State) Absorb(p []byte) {
	if s.done {
		panic("keccak: Absorb after Finalize")
	}
	for len(p) > 0 {
		n := copy(s.buf[s.buflen:], p)
		s.buflen += n
		p = p[n:]
		if s.buflen == rateBytes {
			s.absorbBlock(s.buf[:])
			s.buflen = 0
		}
	}
}

// Finalize pads the remaining buffered input, applies the last
// permutation(s), and returns the 32-byte digest.
func (s *State) Finalize() [Size]byte {
	s.done = true
	var block [rateBytes]byte
	copy(block[:], s.buf[:s.buflen])
	block[s.buflen] = domainByte
	block[rateBytes-1] |= 0x80
	s.absorbBlock(block[:])

	var out [Size]byte
	for i := 0; i < Size; i++ {
		out[i] = byte(s.lanes[i/8] >> (8 * uint(i%8)))
	}
	return out
}

func (s *State) absorbBlock(block []byte) {
	for i := 0; i < rateBytes/8; i++ {
		var lane uint64
		for b := 0; b < 8; b++ {
			lane |= uint64(block[i*8+b]) << (8 * uint(b))
		}
		s.lanes[i] ^= lane
	}
	keccakF1600(&s.lanes)
}

// rotc and piln are the standard Keccak rotation-offset and lane-permutation
// tables for the rho and pi steps (24 entries, one per non-trivial lane).
var rotc = [24]uint{1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14, 27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44}
var piln = [24]int{10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4, 15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1}

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

func rotl64(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

// keccakF1600 applies the 24-round Keccak-f[1600] permutation in place.
func keccakF1600(st *[laneCount]uint64) {
	var bc [5]uint64
	for round := 0; round < 24; round++ {
		// Theta
		for i := 0; i < 5; i++ {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ rotl64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				st[j+i] ^= t
			}
		}

		// Rho + Pi
		t := st[1]
		for i := 0; i < 24; i++ {
			j := piln[i]
			bc[0] = st[j]
			st[j] = rotl64(t, rotc[i])
			t = bc[0]
		}

		// Chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = st[j+i]
			}
			for i := 0; i < 5; i++ {
				st[j+i] ^= ^bc[(i+1)%5] & bc[(i+2)%5]
			}
		}

		// Iota
		st[0] ^= roundConstants[round]
	}
}
