package scheduler

import "math/rand/v2"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// idBits is the entropy requested for worker ids (6 symbols).
const idBits = 32

// RandomString returns a token carrying at least bits bits of randomness,
// written with the 64 symbols A-Z a-z 0-9 - _.
//
// Symbols are cut 6 bits at a time from the top 30 bits of fresh 32-bit
// words, five per word. Tokens are not globally unique; callers that need
// uniqueness check for collisions and draw again.
func RandomString(bits int) string {
	buf := make([]byte, 0, (bits+5)/6)
	for bits > 0 {
		word := rand.Uint32()
		for shift := 26; shift > 0 && bits > 0; shift, bits = shift-6, bits-6 {
			buf = append(buf, alphabet[(word>>shift)&0x3f])
		}
	}
	return string(buf)
}
