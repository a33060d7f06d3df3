package reservations

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateReference builds PREFIX-YYYYMMDD-XXXXXX
func generateReference(prefix string, now time.Time) (string, error) {
	randomPart := make([]byte, 6)
	for i := range randomPart {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			return "", err
		}
		randomPart[i] = referenceAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), randomPart), nil
}
