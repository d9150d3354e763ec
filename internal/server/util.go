package server

import "crypto/rand"

// newJoinCode returns a 7-character public code from an alphabet with no
// ambiguous characters. Codes are assumed globally unique at creation; the
// join_code unique index catches the astronomically rare collision.
func newJoinCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
