package testhelper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/gif-portal/internal/client"
	"github.com/AlexZinkM/gif-portal/internal/program"

	"github.com/gagliardetto/solana-go"
)

// DefaultSpace is the size the program allocates for the list account
const DefaultSpace = 9000

var _ program.RPC = (*Ledger)(nil)

// Ledger is an in-memory cluster running the portal program. It verifies
// transaction signatures and executes startStuffOff and addGif with the same
// borsh codec the client uses.
type Ledger struct {
	lk        sync.Mutex
	programID solana.PublicKey
	accounts  map[solana.PublicKey]*client.AccountData
	snapshot  map[solana.PublicKey]*client.AccountData
	failFetch error
	failSend  error
	fetches   int
	sends     int
	Space     int
}

func NewLedger(programID solana.PublicKey) *Ledger {
	return &Ledger{
		programID: programID,
		accounts:  make(map[solana.PublicKey]*client.AccountData),
		Space:     DefaultSpace,
	}
}

// SetFailFetch makes account fetches fail with err; nil clears it.
func (l *Ledger) SetFailFetch(err error) {
	l.lk.Lock()
	defer l.lk.Unlock()
	l.failFetch = err
}

// SetFailSend makes transaction submission fail with err; nil clears it.
func (l *Ledger) SetFailSend(err error) {
	l.lk.Lock()
	defer l.lk.Unlock()
	l.failSend = err
}

// SetStaleReads freezes what fetches observe at the current state, the way a
// lagging node at processed commitment does. Writes still apply.
func (l *Ledger) SetStaleReads(stale bool) {
	l.lk.Lock()
	defer l.lk.Unlock()
	if !stale {
		l.snapshot = nil
		return
	}
	l.snapshot = make(map[solana.PublicKey]*client.AccountData, len(l.accounts))
	for k, v := range l.accounts {
		l.snapshot[k] = copyAccount(v)
	}
}

// PutAccount stores raw account data, for seeding corrupt or foreign accounts
func (l *Ledger) PutAccount(address, owner solana.PublicKey, data []byte) {
	l.lk.Lock()
	defer l.lk.Unlock()
	l.accounts[address] = &client.AccountData{Address: address, Owner: owner, Data: data}
}

// Calls returns how many fetches and sends reached the ledger
func (l *Ledger) Calls() (fetches, sends int) {
	l.lk.Lock()
	defer l.lk.Unlock()
	return l.fetches, l.sends
}

func (l *Ledger) GetAccountData(ctx context.Context, address solana.PublicKey) (*client.AccountData, error) {
	l.lk.Lock()
	defer l.lk.Unlock()
	l.fetches++

	if l.failFetch != nil {
		return nil, l.failFetch
	}
	source := l.accounts
	if l.snapshot != nil {
		source = l.snapshot
	}
	acct, ok := source[address]
	if !ok {
		return nil, fmt.Errorf("%s: %w", address, client.ErrAccountNotFound)
	}
	return copyAccount(acct), nil
}

func (l *Ledger) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return solana.Hash{1, 2, 3}, nil
}

func (l *Ledger) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	l.lk.Lock()
	defer l.lk.Unlock()
	l.sends++

	if l.failSend != nil {
		return solana.Signature{}, l.failSend
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return solana.Signature{}, err
	}
	numSigners := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) != numSigners {
		return solana.Signature{}, fmt.Errorf("expected %d signatures, got %d", numSigners, len(tx.Signatures))
	}
	for i := 0; i < numSigners; i++ {
		if !tx.Signatures[i].Verify(tx.Message.AccountKeys[i], message) {
			return solana.Signature{}, fmt.Errorf("signature verification failed for %s", tx.Message.AccountKeys[i])
		}
	}

	for _, ci := range tx.Message.Instructions {
		if err := l.execute(tx, ci, numSigners); err != nil {
			return solana.Signature{}, err
		}
	}
	return tx.Signatures[0], nil
}

func (l *Ledger) execute(tx *solana.Transaction, ci solana.CompiledInstruction, numSigners int) error {
	keys := tx.Message.AccountKeys
	if !keys[ci.ProgramIDIndex].Equals(l.programID) {
		return fmt.Errorf("unknown program %s", keys[ci.ProgramIDIndex])
	}
	if len(ci.Data) < 8 || len(ci.Accounts) < 2 {
		return errors.New("invalid instruction")
	}

	base := keys[ci.Accounts[0]]
	user := keys[ci.Accounts[1]]
	if int(ci.Accounts[1]) >= numSigners {
		return errors.New("user must sign")
	}

	start := program.InstructionDiscriminator(program.InstructionStartStuffOff)
	add := program.InstructionDiscriminator(program.InstructionAddGif)
	switch {
	case bytes.Equal(ci.Data[:8], start[:]):
		if int(ci.Accounts[0]) >= numSigners {
			return errors.New("base account must sign")
		}
		if _, ok := l.accounts[base]; ok {
			return fmt.Errorf("Allocate: account Address { address: %s, base: None } already in use", base)
		}
		return l.store(base, &program.BaseAccount{GifList: []program.ItemStruct{}})

	case bytes.Equal(ci.Data[:8], add[:]):
		acct, ok := l.accounts[base]
		if !ok {
			return errors.New("AccountNotInitialized")
		}
		state, err := program.DecodeBaseAccount(acct.Data)
		if err != nil {
			return err
		}
		link, err := program.DecodeAddGifArgs(ci.Data)
		if err != nil {
			return err
		}
		state.GifList = append(state.GifList, program.ItemStruct{GifLink: link, UserAddress: user})
		state.TotalGifs++
		return l.store(base, state)

	default:
		return errors.New("InstructionFallbackNotFound")
	}
}

func (l *Ledger) store(address solana.PublicKey, state *program.BaseAccount) error {
	data, err := program.EncodeBaseAccount(state)
	if err != nil {
		return err
	}
	if len(data) > l.Space {
		return errors.New("AccountDidNotSerialize")
	}
	padded := make([]byte, l.Space)
	copy(padded, data)
	l.accounts[address] = &client.AccountData{Address: address, Owner: l.programID, Data: padded}
	return nil
}

func copyAccount(a *client.AccountData) *client.AccountData {
	c := *a
	c.Data = append([]byte(nil), a.Data...)
	return &c
}
