package validate

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"

	"github.com/ShiraazMoollatjie/goluhn"
)

// Referral codes are 10-digit numbers with a Luhn check digit, so a mistyped
// code is rejected before any user lookup happens.
const referralCodeLen = 10

func IsReferralCode(s string) bool {
	if len(s) != referralCodeLen {
		return false
	}
	return goluhn.Validate(s) == nil
}

// GenerateReferralCode draws the payload digits at random and picks the check
// digit that satisfies goluhn.Validate.
func GenerateReferralCode() (string, error) {
	payload := make([]byte, 0, referralCodeLen-1)
	for i := 0; i < referralCodeLen-1; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		payload = append(payload, byte('0'+n.Int64()))
	}
	for check := 0; check <= 9; check++ {
		code := string(payload) + strconv.Itoa(check)
		if goluhn.Validate(code) == nil {
			return code, nil
		}
	}
	return "", errors.New("no valid check digit found")
}
