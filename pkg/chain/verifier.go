package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrTxNotFound     = errors.New("transaction not found on chain")
	ErrTxPending      = errors.New("transaction is still pending")
	ErrTxFailed       = errors.New("transaction reverted")
	ErrNotConfirmed   = errors.New("transaction has too few confirmations")
	ErrWrongRecipient = errors.New("transaction recipient is not the payment contract")
	ErrWrongSender    = errors.New("transaction sender does not match the claimed wallet")
	ErrWrongAmount    = errors.New("transaction value does not match the claimed amount")
	ErrInvalidAmount  = errors.New("claimed amount is not a valid wei value")
)

// PaymentVerifier checks a client-reported transaction hash against the
// chain before anything derived from it is written. A payment counts only
// when the transaction is mined, successful, sufficiently confirmed, sent
// by the claimed wallet, paid to the platform contract, and carries the
// claimed value.
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, txHash, senderWallet, amountWei string) error
}

type paymentVerifier struct {
	client           EthClient
	contractAddress  common.Address
	minConfirmations uint64
}

func NewPaymentVerifier(client EthClient, contractAddress string, minConfirmations uint64) PaymentVerifier {
	return &paymentVerifier{
		client:           client,
		contractAddress:  common.HexToAddress(contractAddress),
		minConfirmations: minConfirmations,
	}
}

func (v *paymentVerifier) VerifyPayment(ctx context.Context, txHash, senderWallet, amountWei string) error {
	amount, ok := new(big.Int).SetString(amountWei, 10)
	if !ok || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	hash := common.HexToHash(txHash)

	tx, pending, err := v.client.TransactionByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return ErrTxNotFound
		}
		return fmt.Errorf("failed to fetch transaction: %w", err)
	}
	if pending {
		return ErrTxPending
	}

	receipt, err := v.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return ErrTxNotFound
		}
		return fmt.Errorf("failed to fetch receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return ErrTxFailed
	}

	head, err := v.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch head block: %w", err)
	}
	mined := receipt.BlockNumber.Uint64()
	if head < mined || head-mined+1 < v.minConfirmations {
		return ErrNotConfirmed
	}

	if tx.To() == nil || *tx.To() != v.contractAddress {
		return ErrWrongRecipient
	}

	if tx.Value().Cmp(amount) != 0 {
		return ErrWrongAmount
	}

	chainID, err := v.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch chain id: %w", err)
	}
	sender, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		return fmt.Errorf("failed to recover sender: %w", err)
	}
	if !strings.EqualFold(sender.Hex(), senderWallet) {
		return ErrWrongSender
	}

	return nil
}
