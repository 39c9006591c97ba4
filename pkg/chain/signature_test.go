package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func TestVerifyPersonalSign(t *testing.T) {
	key, _ := crypto.GenerateKey()
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()
	message := "Sign in to ETN Patron\nNonce: abc123"

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	assert.NoError(t, err)
	// Wallets report the recovery id as 27/28
	sig[64] += 27

	err = VerifyPersonalSign(message, hexutil.Encode(sig), wallet)
	assert.NoError(t, err)
}

func TestVerifyPersonalSign_RawRecoveryID(t *testing.T) {
	key, _ := crypto.GenerateKey()
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()
	message := "Sign in to ETN Patron\nNonce: xyz789"

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	assert.NoError(t, err)

	// Some signers already return 0/1
	err = VerifyPersonalSign(message, hexutil.Encode(sig), wallet)
	assert.NoError(t, err)
}

func TestVerifyPersonalSign_WrongWallet(t *testing.T) {
	key, _ := crypto.GenerateKey()
	message := "Sign in to ETN Patron\nNonce: abc123"

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	assert.NoError(t, err)
	sig[64] += 27

	err = VerifyPersonalSign(message, hexutil.Encode(sig), "0x000000000000000000000000000000000000dead")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyPersonalSign_WrongMessage(t *testing.T) {
	key, _ := crypto.GenerateKey()
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte("original message")), key)
	assert.NoError(t, err)
	sig[64] += 27

	err = VerifyPersonalSign("tampered message", hexutil.Encode(sig), wallet)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyPersonalSign_Garbage(t *testing.T) {
	assert.ErrorIs(t, VerifyPersonalSign("msg", "not-hex", "0xabc"), ErrInvalidSignature)
	assert.ErrorIs(t, VerifyPersonalSign("msg", "0x1234", "0xabc"), ErrInvalidSignature)
}
