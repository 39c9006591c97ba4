package chain

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidSignature = errors.New("signature does not match wallet")

// VerifyPersonalSign checks that signature is a personal_sign of message by
// the given wallet. Wallets return the recovery id as 27/28, go-ethereum
// expects 0/1.
func VerifyPersonalSign(message, signature, wallet string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	if len(sig) != 65 {
		return ErrInvalidSignature
	}
	if sig[64] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[64] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return ErrInvalidSignature
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	if !strings.EqualFold(recovered.Hex(), wallet) {
		return ErrInvalidSignature
	}

	return nil
}
