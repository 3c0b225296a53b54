package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/gif-portal/internal/crypto"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("wallet")

var (
	// ErrUnavailable is returned when there is no wallet to connect to
	ErrUnavailable = errors.New("wallet not found")
	// ErrNotTrusted is returned by a trusted-only connect when the wallet was not approved yet
	ErrNotTrusted = errors.New("wallet has not approved this app")
	// ErrRejected is returned when approval was refused
	ErrRejected = errors.New("wallet connection rejected")
)

// PasswordFunc supplies the keystore password when a connect asks for approval.
// The keystore zeroes the returned slice after use.
type PasswordFunc func() ([]byte, error)

// Keystore is a wallet backed by an encrypted .cwt file.
// It is trusted once unlocked, and stays trusted until Disconnect.
type Keystore struct {
	mu       sync.Mutex
	filePath string
	password PasswordFunc
	key      solana.PrivateKey
}

// NewKeystore creates a keystore wallet for filePath
func NewKeystore(filePath string, password PasswordFunc) *Keystore {
	return &Keystore{
		filePath: filePath,
		password: password,
	}
}

// Available reports whether the wallet file exists
func (k *Keystore) Available() bool {
	return crypto.WalletExists(k.filePath)
}

// Connect returns the wallet public key. With onlyIfTrusted it never asks for
// approval and fails with ErrNotTrusted while locked; otherwise it unlocks the
// file with the password.
func (k *Keystore) Connect(ctx context.Context, onlyIfTrusted bool) (solana.PublicKey, error) {
	if !k.Available() {
		return solana.PublicKey{}, ErrUnavailable
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.key != nil {
		return k.key.PublicKey(), nil
	}
	if onlyIfTrusted {
		return solana.PublicKey{}, ErrNotTrusted
	}
	if err := ctx.Err(); err != nil {
		return solana.PublicKey{}, err
	}
	if k.password == nil {
		return solana.PublicKey{}, fmt.Errorf("%w: no password source", ErrRejected)
	}

	password, err := k.password()
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	defer clear(password)

	cwtFile, walletData, err := crypto.DecryptWallet(k.filePath, password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrRejected, err)
		}
		return solana.PublicKey{}, fmt.Errorf("failed to decrypt wallet: %w", err)
	}

	// Verify private key length (we store full 64-byte key)
	if len(walletData.PrivateKey) != 64 {
		clear(walletData.PrivateKey)
		return solana.PublicKey{}, fmt.Errorf("invalid private key length")
	}
	key := solana.PrivateKey(walletData.PrivateKey)
	if key.PublicKey().String() != cwtFile.Address {
		clear(walletData.PrivateKey)
		return solana.PublicKey{}, fmt.Errorf("private key does not match address")
	}

	k.key = key
	log.Infow("wallet unlocked", "address", cwtFile.Address)
	return key.PublicKey(), nil
}

// SignMessage signs a serialized transaction message
func (k *Keystore) SignMessage(_ context.Context, message []byte) (solana.Signature, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.key == nil {
		return solana.Signature{}, ErrNotTrusted
	}
	return k.key.Sign(message)
}

// Disconnect locks the wallet and wipes the key from memory
func (k *Keystore) Disconnect(context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	clear(k.key)
	k.key = nil
	return nil
}
