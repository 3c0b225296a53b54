package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/gif-portal/internal/client"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("program")

// ErrAccountNotFound is returned when the list account does not exist
var ErrAccountNotFound = client.ErrAccountNotFound

// RPC is the part of the cluster connection the program client needs.
// *client.SolanaClient implements it.
type RPC interface {
	GetAccountData(ctx context.Context, address solana.PublicKey) (*client.AccountData, error)
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Signer is the connected wallet: it pays fees and signs as the user.
type Signer interface {
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// Client is a binding of cluster connection, wallet, program address and
// interface description. It is cheap and meant to be built per call.
type Client struct {
	rpc       RPC
	user      Signer
	programID solana.PublicKey
	idl       *IDL
}

// NewClient binds a program client
func NewClient(conn RPC, user Signer, programID solana.PublicKey, idl *IDL) *Client {
	return &Client{
		rpc:       conn,
		user:      user,
		programID: programID,
		idl:       idl,
	}
}

// ProgramID returns the bound program address
func (c *Client) ProgramID() solana.PublicKey { return c.programID }

// FetchBaseAccount fetches and decodes the list account.
// Errors wrap ErrAccountNotFound or ErrDecode; anything else is a transport failure.
func (c *Client) FetchBaseAccount(ctx context.Context, address solana.PublicKey) (*BaseAccount, error) {
	data, err := c.rpc.GetAccountData(ctx, address)
	if err != nil {
		return nil, err
	}
	if !data.Owner.Equals(c.programID) {
		return nil, fmt.Errorf("%w: account %s is owned by %s", ErrDecode, address, data.Owner)
	}
	return DecodeBaseAccount(data.Data)
}

// StartStuffOff creates the list account. The account key signs together with the wallet.
func (c *Client) StartStuffOff(ctx context.Context, baseAccount solana.PrivateKey) (solana.Signature, error) {
	ix, err := c.instruction(InstructionStartStuffOff, map[string]solana.PublicKey{
		"baseAccount":   baseAccount.PublicKey(),
		"user":          c.user.PublicKey(),
		"systemProgram": solana.SystemProgramID,
	})
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix, baseAccount)
}

// AddGif appends one entry to the list account, signed by the wallet.
func (c *Client) AddGif(ctx context.Context, baseAccount solana.PublicKey, link string) (solana.Signature, error) {
	ix, err := c.instruction(InstructionAddGif, map[string]solana.PublicKey{
		"baseAccount": baseAccount,
		"user":        c.user.PublicKey(),
	}, link)
	if err != nil {
		return solana.Signature{}, err
	}
	return c.send(ctx, ix)
}

// instruction builds an instruction from its IDL definition. Account metas
// follow the IDL order and flags.
func (c *Client) instruction(name string, accounts map[string]solana.PublicKey, args ...interface{}) (solana.Instruction, error) {
	def, err := c.idl.Instruction(name)
	if err != nil {
		return nil, err
	}
	if len(args) != len(def.Args) {
		return nil, fmt.Errorf("%s expects %d args, got %d", name, len(def.Args), len(args))
	}

	metas := make(solana.AccountMetaSlice, 0, len(def.Accounts))
	for _, ref := range def.Accounts {
		key, ok := accounts[ref.Name]
		if !ok {
			return nil, fmt.Errorf("%s: missing account %q", name, ref.Name)
		}
		metas = append(metas, solana.NewAccountMeta(key, ref.IsMut, ref.IsSigner))
	}

	data, err := EncodeInstructionData(name, args...)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(c.programID, metas, data), nil
}

// send builds, signs and submits a single-instruction transaction paid by the wallet
func (c *Client) send(ctx context.Context, ix solana.Instruction, local ...solana.PrivateKey) (solana.Signature, error) {
	blockhash, err := c.rpc.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		blockhash,
		solana.TransactionPayer(c.user.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := c.sign(ctx, tx, local); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	log.Infow("transaction submitted", "program", c.programID.String(), "signature", sig.String())
	return sig, nil
}

// sign fills tx.Signatures in message signer order. Local keys sign
// directly; the wallet signs its own slot.
func (c *Client) sign(ctx context.Context, tx *solana.Transaction, local []solana.PrivateKey) error {
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	signers := tx.Message.AccountKeys[:tx.Message.Header.NumRequiredSignatures]
	signatures := make([]solana.Signature, 0, len(signers))
	for _, key := range signers {
		sig, err := c.signAs(ctx, key, message, local)
		if err != nil {
			return err
		}
		signatures = append(signatures, sig)
	}
	tx.Signatures = signatures
	return nil
}

func (c *Client) signAs(ctx context.Context, key solana.PublicKey, message []byte, local []solana.PrivateKey) (solana.Signature, error) {
	if key.Equals(c.user.PublicKey()) {
		return c.user.SignMessage(ctx, message)
	}
	for _, priv := range local {
		if priv.PublicKey().Equals(key) {
			return priv.Sign(message)
		}
	}
	return solana.Signature{}, errors.New("no signer for " + key.String())
}
