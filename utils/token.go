package utils

import (
	"crypto/rand"
	"math/big"
)

const resetCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateResetCode returns a random code without look-alike characters.
func GenerateResetCode(length int) (string, error) {
	max := big.NewInt(int64(len(resetCodeCharset)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = resetCodeCharset[n.Int64()]
	}
	return string(code), nil
}
