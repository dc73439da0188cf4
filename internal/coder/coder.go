package coder

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// TokenAccountState is the head of the 165-byte SPL token account record:
// mint, owner, amount, then the optional delegate. The tail (state flags,
// native/close-authority options) is not interpreted here.
type TokenAccountState struct {
	Mint     solana.PublicKey
	Owner    solana.PublicKey
	Amount   uint64
	Delegate *solana.PublicKey
}

const tokenAccountMinLen = 108

func DecodeTokenAccount(data []byte) (*TokenAccountState, error) {
	if len(data) < tokenAccountMinLen {
		return nil, fmt.Errorf("token account data too short: %d bytes", len(data))
	}

	decoder := bin.NewBinDecoder(data)

	var state TokenAccountState

	mintBytes, err := decoder.ReadNBytes(32)
	if err != nil {
		return nil, err
	}
	state.Mint = solana.PublicKeyFromBytes(mintBytes)

	ownerBytes, err := decoder.ReadNBytes(32)
	if err != nil {
		return nil, err
	}
	state.Owner = solana.PublicKeyFromBytes(ownerBytes)

	amount, err := decoder.ReadUint64(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	state.Amount = amount

	delegateTag, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	if delegateTag == 1 {
		delegateBytes, err := decoder.ReadNBytes(32)
		if err != nil {
			return nil, err
		}
		delegate := solana.PublicKeyFromBytes(delegateBytes)
		state.Delegate = &delegate
	}

	return &state, nil
}

// DecodeRPCData unpacks the [content, encoding] pair getAccountInfo returns.
func DecodeRPCData(data []string) ([]byte, error) {
	if len(data) < 2 {
		return nil, errors.New("account data missing encoding tag")
	}

	switch data[1] {
	case "base64":
		return base64.StdEncoding.DecodeString(data[0])
	case "base58":
		return base58.Decode(data[0])
	default:
		return nil, fmt.Errorf("unsupported account data encoding %q", data[1])
	}
}
