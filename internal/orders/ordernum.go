package orders

import "crypto/rand"

// No 0/O/1/I so the number survives being read over the phone.
const orderNumAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const orderNumLen = 10

// GenerateOrderNumber returns a short human-readable identifier. Collisions
// are possible in principle; the space is large enough that we do not handle
// them.
func GenerateOrderNumber() string {
	b := make([]byte, orderNumLen)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = orderNumAlphabet[int(b[i])%len(orderNumAlphabet)]
	}
	return string(b)
}
