package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// EnsureAccount checks whether the list account exists and loads it.
// NeedsInitialization reports the outcome afterwards.
func (p *Portal) EnsureAccount(ctx context.Context) (FetchResult, error) {
	return p.Refresh(ctx)
}

// NeedsInitialization is true only when the last fetch found no list account
func (p *Portal) NeedsInitialization() bool {
	return p.session.Status() == Connected && p.cache.LastFetch().Status == FetchNotFound
}

// InitializeAccount creates the list account and loads it. It refuses to run
// twice at once and refuses when the account already exists.
func (p *Portal) InitializeAccount(ctx context.Context) (solana.Signature, error) {
	pc, err := p.program()
	if err != nil {
		return solana.Signature{}, err
	}
	if !p.initializing.CompareAndSwap(false, true) {
		return solana.Signature{}, ErrInitializeInProgress
	}
	defer p.initializing.Store(false)

	address := p.BaseAccount()
	_, err = pc.FetchBaseAccount(ctx, address)
	switch {
	case err == nil:
		p.refresh(ctx, pc)
		return solana.Signature{}, ErrAlreadyInitialized
	case errors.Is(err, ErrAccountNotFound):
	default:
		return solana.Signature{}, fmt.Errorf("failed to check list account %s: %w", address, err)
	}

	sig, err := pc.StartStuffOff(ctx, p.baseAccount)
	if err != nil {
		log.Errorw("Error creating BaseAccount account", "address", address.String(), "err", err)
		return solana.Signature{}, err
	}
	log.Infow("Created a new BaseAccount", "address", address.String(), "signature", sig.String())

	p.refresh(ctx, pc)
	return sig, nil
}
