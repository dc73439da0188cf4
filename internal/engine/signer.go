package engine

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// WalletSigner signs every transaction in a batch with one local keypair.
// The single-use account signatures are already in place by assembly time,
// so only the wallet key is applied here.
type WalletSigner struct {
	wallet *solana.Wallet
}

func NewWalletSigner(wallet *solana.Wallet) *WalletSigner {
	return &WalletSigner{wallet: wallet}
}

func (s *WalletSigner) SignAll(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	for _, tx := range txs {
		_, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
			if s.wallet.PublicKey().Equals(key) {
				return &s.wallet.PrivateKey
			}
			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	return txs, nil
}
