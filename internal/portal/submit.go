package portal

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// InputBuffer holds the link being typed. A submission moves the text to
// pending; it is cleared on success and put back on failure unless something
// new was typed in the meantime.
type InputBuffer struct {
	mu         sync.Mutex
	value      string
	pending    string
	hasPending bool
}

func (b *InputBuffer) Set(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
}

func (b *InputBuffer) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Pending returns the text of the submission in flight
func (b *InputBuffer) Pending() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending, b.hasPending
}

func (b *InputBuffer) take() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.value == "" {
		return "", false
	}
	b.pending = b.value
	b.hasPending = true
	b.value = ""
	return b.pending, true
}

func (b *InputBuffer) settle(taken string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !ok && b.value == "" {
		b.value = taken
	}
	if b.pending == taken {
		b.pending = ""
		b.hasPending = false
	}
}

// Submit appends link to the remote list as given and reloads it. An empty
// link is not sent.
func (p *Portal) Submit(ctx context.Context, link string) (solana.Signature, error) {
	if link == "" {
		log.Debug("No gif link given!")
		return solana.Signature{}, ErrEmptyLink
	}
	pc, err := p.program()
	if err != nil {
		return solana.Signature{}, err
	}
	return p.submit(ctx, pc, link)
}

// SetInput replaces the input buffer
func (p *Portal) SetInput(v string) {
	p.input.Set(v)
}

// SubmitInput submits the input buffer
func (p *Portal) SubmitInput(ctx context.Context) (solana.Signature, error) {
	pc, err := p.program()
	if err != nil {
		return solana.Signature{}, err
	}
	taken, ok := p.input.take()
	if !ok {
		log.Debug("No gif link given!")
		return solana.Signature{}, ErrEmptyLink
	}

	sig, err := p.submit(ctx, pc, taken)
	p.input.settle(taken, err == nil)
	return sig, err
}

func (p *Portal) submit(ctx context.Context, pc ProgramClient, link string) (solana.Signature, error) {
	address := p.BaseAccount()
	sig, err := pc.AddGif(ctx, address, link)
	if err != nil {
		log.Errorw("Error sending GIF", "address", address.String(), "err", err)
		return solana.Signature{}, err
	}
	log.Infow("GIF successfully sent to program", "link", link, "signature", sig.String())

	p.refresh(ctx, pc)
	return sig, nil
}
