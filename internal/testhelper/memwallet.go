package testhelper

import (
	"context"
	"errors"
	"sync"

	"github.com/AlexZinkM/gif-portal/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// MemWallet is an in-memory wallet. It starts available and untrusted.
type MemWallet struct {
	lk        sync.Mutex
	key       solana.PrivateKey
	available bool
	trusted   bool
	reject    error
	failSign  bool
	connects  int
}

func NewMemWallet() *MemWallet {
	return &MemWallet{
		key:       solana.NewWallet().PrivateKey,
		available: true,
	}
}

func (w *MemWallet) PublicKey() solana.PublicKey {
	return w.key.PublicKey()
}

func (w *MemWallet) SetAvailable(available bool) {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.available = available
}

func (w *MemWallet) SetTrusted(trusted bool) {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.trusted = trusted
}

// SetReject makes the next connects fail with err; nil clears it.
func (w *MemWallet) SetReject(err error) {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.reject = err
}

func (w *MemWallet) SetFailSign(fail bool) {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.failSign = fail
}

// Connects returns how many times the wallet was asked to connect
func (w *MemWallet) Connects() int {
	w.lk.Lock()
	defer w.lk.Unlock()
	return w.connects
}

func (w *MemWallet) Available() bool {
	w.lk.Lock()
	defer w.lk.Unlock()
	return w.available
}

func (w *MemWallet) Connect(ctx context.Context, onlyIfTrusted bool) (solana.PublicKey, error) {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.connects++

	if !w.available {
		return solana.PublicKey{}, wallet.ErrUnavailable
	}
	if w.reject != nil {
		return solana.PublicKey{}, w.reject
	}
	if onlyIfTrusted && !w.trusted {
		return solana.PublicKey{}, wallet.ErrNotTrusted
	}
	w.trusted = true
	return w.key.PublicKey(), nil
}

func (w *MemWallet) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	w.lk.Lock()
	defer w.lk.Unlock()

	if w.failSign {
		return solana.Signature{}, errors.New("user rejected the request")
	}
	return w.key.Sign(message)
}

func (w *MemWallet) Disconnect(ctx context.Context) error {
	w.lk.Lock()
	defer w.lk.Unlock()
	w.trusted = false
	return nil
}
