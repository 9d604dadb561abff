package eth

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const SignatureLength = 65

var (
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	ErrInvalidSignature       = errors.New("invalid signature")
)

// Parses a hex encoded private key, with or without 0x prefix
func ParsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	if !has0xPrefix(privateKeyHex) {
		privateKeyHex = "0x" + privateKeyHex
	}
	buf, err := hexutil.Decode(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return crypto.ToECDSA(buf)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Signs a 32 byte digest. V is 27 or 28, the way wallets return it.
func Sign(digest common.Hash, key *ecdsa.PrivateKey) (signature []byte, err error) {
	signature, err = crypto.Sign(digest[:], key)
	if err != nil {
		return
	}
	signature[crypto.RecoveryIDOffset] += 27
	return
}

// Recovers the address that signed the digest.
// Accepts V in {0, 1, 27, 28} and rejects malleable (high s) signatures.
func RecoverSigner(digest common.Hash, signature []byte) (signer common.Address, err error) {
	if len(signature) != SignatureLength {
		err = ErrInvalidSignatureLength
		return
	}

	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[crypto.RecoveryIDOffset], r, s, true) {
		err = ErrInvalidSignature
		return
	}

	pub, err := crypto.SigToPub(digest[:], sig)
	if err != nil {
		return
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// EIP-191 personal message digest
func TextHash(data []byte) common.Hash {
	return common.BytesToHash(accounts.TextHash(data))
}
