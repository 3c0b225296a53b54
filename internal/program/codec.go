package program

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ErrDecode is returned when account data does not match the BaseAccount layout
var ErrDecode = errors.New("account data decode failed")

// ItemStruct is one entry of the on-chain list
type ItemStruct struct {
	GifLink     string
	UserAddress solana.PublicKey
}

// BaseAccount is the shared list account
type BaseAccount struct {
	TotalGifs uint64
	GifList   []ItemStruct
}

// DecodeBaseAccount decodes raw account data, discriminator included.
// Trailing bytes are ignored: accounts are allocated larger than their content.
func DecodeBaseAccount(data []byte) (*BaseAccount, error) {
	disc := AccountDiscriminator(AccountBaseAccount)
	if len(data) < len(disc) || !bytes.Equal(data[:len(disc)], disc[:]) {
		return nil, fmt.Errorf("%w: discriminator mismatch", ErrDecode)
	}

	var acct BaseAccount
	if err := bin.NewBorshDecoder(data[len(disc):]).Decode(&acct); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &acct, nil
}

// EncodeBaseAccount encodes acct with its discriminator
func EncodeBaseAccount(acct *BaseAccount) ([]byte, error) {
	disc := AccountDiscriminator(AccountBaseAccount)
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(acct); err != nil {
		return nil, fmt.Errorf("failed to encode account: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeInstructionData builds instruction data: discriminator then borsh args in order
func EncodeInstructionData(name string, args ...interface{}) ([]byte, error) {
	disc := InstructionDiscriminator(name)
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	enc := bin.NewBorshEncoder(buf)
	for i, arg := range args {
		if err := enc.Encode(arg); err != nil {
			return nil, fmt.Errorf("failed to encode %s arg %d: %w", name, i, err)
		}
	}
	return buf.Bytes(), nil
}

// DecodeAddGifArgs returns the link carried by addGif instruction data
func DecodeAddGifArgs(data []byte) (string, error) {
	disc := InstructionDiscriminator(InstructionAddGif)
	if len(data) < len(disc) || !bytes.Equal(data[:len(disc)], disc[:]) {
		return "", fmt.Errorf("%w: not an %s instruction", ErrDecode, InstructionAddGif)
	}
	var link string
	if err := bin.NewBorshDecoder(data[len(disc):]).Decode(&link); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return link, nil
}
