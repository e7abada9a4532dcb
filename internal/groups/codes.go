package groups

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mmynk/splitledger/internal/models"
)

const (
	// GroupCodeLength is the length of generated join codes.
	GroupCodeLength = 6
	// InviteCodeLength is the length of generated invite codes.
	InviteCodeLength = 8
	// maxCodeAttempts bounds collision retries for both kinds of code.
	maxCodeAttempts = 10
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator returns a random code of the given length drawn from A-Z0-9.
type CodeGenerator func(length int) (string, error)

// RandomCode is the default CodeGenerator, backed by crypto/rand.
func RandomCode(length int) (string, error) {
	base := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// uniqueCode draws codes until taken reports one free, giving up after
// maxCodeAttempts with models.ErrDuplicateCode.
func (e *Engine) uniqueCode(ctx context.Context, length int, taken func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := e.codes(length)
		if err != nil {
			return "", err
		}
		exists, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return models.NormalizeCode(code), nil
		}
	}
	return "", fmt.Errorf("%w: no free code after %d attempts", models.ErrDuplicateCode, maxCodeAttempts)
}
