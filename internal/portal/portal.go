package portal

import (
	"context"
	"sync/atomic"

	"github.com/AlexZinkM/gif-portal/internal/program"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("portal")

// ProgramClient is the remote list program as seen by the portal.
// *program.Client implements it.
type ProgramClient interface {
	FetchBaseAccount(ctx context.Context, address solana.PublicKey) (*program.BaseAccount, error)
	StartStuffOff(ctx context.Context, baseAccount solana.PrivateKey) (solana.Signature, error)
	AddGif(ctx context.Context, baseAccount solana.PublicKey, link string) (solana.Signature, error)
}

// Binder builds a program client for the connected wallet. It is called once
// per remote operation.
type Binder func(user program.Signer) ProgramClient

// NewBinder binds the cluster connection, program address and interface description
func NewBinder(conn program.RPC, programID solana.PublicKey, idl *program.IDL) Binder {
	return func(user program.Signer) ProgramClient {
		return program.NewClient(conn, user, programID, idl)
	}
}

// Portal keeps the local view of the wallet session and the remote GIF list
// in sync.
type Portal struct {
	session      *Session
	bind         Binder
	baseAccount  solana.PrivateKey
	cache        *ListCache
	input        *InputBuffer
	initializing atomic.Bool
}

// New creates a portal for the list account identified by baseAccount.
// The account key is only used to sign the creation of the account.
func New(w Wallet, bind Binder, baseAccount solana.PrivateKey) *Portal {
	return &Portal{
		session:     NewSession(w),
		bind:        bind,
		baseAccount: baseAccount,
		cache:       &ListCache{},
		input:       &InputBuffer{},
	}
}

// BaseAccount returns the list account address
func (p *Portal) BaseAccount() solana.PublicKey {
	return p.baseAccount.PublicKey()
}

func (p *Portal) Session() *Session { return p.session }

func (p *Portal) Cache() *ListCache { return p.cache }

func (p *Portal) Input() *InputBuffer { return p.input }

// AttemptAutoConnect connects without prompting if the wallet already trusts
// this app, and loads the list when it does.
func (p *Portal) AttemptAutoConnect(ctx context.Context) error {
	return p.connect(ctx, true)
}

// ConnectExplicitly asks the wallet for approval and loads the list
func (p *Portal) ConnectExplicitly(ctx context.Context) error {
	return p.connect(ctx, false)
}

func (p *Portal) connect(ctx context.Context, onlyIfTrusted bool) error {
	if _, err := p.session.Connect(ctx, onlyIfTrusted); err != nil {
		return err
	}
	_, err := p.EnsureAccount(ctx)
	return err
}

// Disconnect ends the session and forgets the cached list
func (p *Portal) Disconnect(ctx context.Context) error {
	if err := p.session.Disconnect(ctx); err != nil {
		return err
	}
	p.cache.reset()
	return nil
}

// program binds a program client for the current session
func (p *Portal) program() (ProgramClient, error) {
	signer, err := p.session.Signer()
	if err != nil {
		return nil, err
	}
	return p.bind(signer), nil
}

// State is a consistent view of the portal for rendering
type State struct {
	Session   SessionStatus
	PublicKey solana.PublicKey
	// Entries is nil while the list is not initialized or not loaded
	Entries             []GifEntry
	LastFetch           FetchResult
	NeedsInitialization bool
	Input               string
	Pending             string
}

// State returns a snapshot of the portal
func (p *Portal) State() State {
	st := State{Session: p.session.Status()}
	if key, ok := p.session.PublicKey(); ok {
		st.PublicKey = key
	}
	st.Entries, _ = p.cache.Entries()
	st.LastFetch = p.cache.LastFetch()
	st.NeedsInitialization = st.Session == Connected && st.LastFetch.Status == FetchNotFound
	st.Input = p.input.Value()
	st.Pending, _ = p.input.Pending()
	return st
}
