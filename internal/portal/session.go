package portal

import (
	"context"
	"errors"
	"sync"

	"github.com/AlexZinkM/gif-portal/internal/program"
	"github.com/AlexZinkM/gif-portal/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// Wallet is the user's wallet: it approves connections and signs messages.
// *wallet.Keystore implements it.
type Wallet interface {
	Available() bool
	Connect(ctx context.Context, onlyIfTrusted bool) (solana.PublicKey, error)
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
	Disconnect(ctx context.Context) error
}

// SessionStatus is the wallet connection state
type SessionStatus int

const (
	Disconnected SessionStatus = iota
	Connecting
	Connected
)

func (s SessionStatus) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Session tracks the connection to the wallet.
//
// Disconnected -> Connecting on a connect attempt, Connecting -> Connected on
// approval, Connecting -> Disconnected on rejection or error. The public key is
// only cleared by Disconnect.
type Session struct {
	mu        sync.Mutex
	wallet    Wallet
	status    SessionStatus
	publicKey solana.PublicKey
}

// NewSession creates a disconnected session for w
func NewSession(w Wallet) *Session {
	return &Session{wallet: w}
}

// Status returns the current connection state
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PublicKey returns the connected wallet key
func (s *Session) PublicKey() (solana.PublicKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Connected {
		return solana.PublicKey{}, false
	}
	return s.publicKey, true
}

// Connect asks the wallet for its public key. With onlyIfTrusted the wallet
// must not prompt. Failures leave the session Disconnected and are not retried.
func (s *Session) Connect(ctx context.Context, onlyIfTrusted bool) (solana.PublicKey, error) {
	s.mu.Lock()
	switch s.status {
	case Connected:
		key := s.publicKey
		s.mu.Unlock()
		return key, nil
	case Connecting:
		s.mu.Unlock()
		return solana.PublicKey{}, ErrConnectInProgress
	}
	if !s.wallet.Available() {
		s.mu.Unlock()
		log.Warn("Solana wallet not found. Create one with `gifportal wallet generate`")
		return solana.PublicKey{}, ErrWalletUnavailable
	}
	s.status = Connecting
	s.mu.Unlock()

	key, err := s.wallet.Connect(ctx, onlyIfTrusted)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = Disconnected
		if errors.Is(err, wallet.ErrNotTrusted) {
			log.Infow("wallet not trusted yet, waiting for explicit connect")
		} else {
			log.Errorw("wallet connect failed", "onlyIfTrusted", onlyIfTrusted, "err", err)
		}
		return solana.PublicKey{}, err
	}

	s.status = Connected
	s.publicKey = key
	log.Infow("wallet connected", "address", key.String())
	return key, nil
}

// Disconnect drops the session and asks the wallet to forget the approval
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case Connecting:
		return ErrConnectInProgress
	case Disconnected:
		return nil
	}
	s.status = Disconnected
	s.publicKey = solana.PublicKey{}
	return s.wallet.Disconnect(ctx)
}

// Signer returns the connected wallet as a transaction signer
func (s *Session) Signer() (program.Signer, error) {
	key, ok := s.PublicKey()
	if !ok {
		return nil, ErrNotConnected
	}
	return &sessionSigner{key: key, wallet: s.wallet}, nil
}

type sessionSigner struct {
	key    solana.PublicKey
	wallet Wallet
}

func (s *sessionSigner) PublicKey() solana.PublicKey { return s.key }

func (s *sessionSigner) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	return s.wallet.SignMessage(ctx, message)
}
