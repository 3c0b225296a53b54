package wallet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticPassword(pw string) PasswordFunc {
	return func() ([]byte, error) { return []byte(pw), nil }
}

func TestKeystoreUnavailable(t *testing.T) {
	ks := NewKeystore(filepath.Join(t.TempDir(), "missing.cwt"), staticPassword("pw"))
	assert.False(t, ks.Available())

	_, err := ks.Connect(context.Background(), false)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestKeystoreConnectFlow(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	address, err := GenerateWallet(path, []byte("pw"))
	require.NoError(t, err)

	ks := NewKeystore(path, staticPassword("pw"))
	require.True(t, ks.Available())

	// not approved yet
	_, err = ks.Connect(ctx, true)
	assert.ErrorIs(t, err, ErrNotTrusted)
	_, err = ks.SignMessage(ctx, []byte("msg"))
	assert.ErrorIs(t, err, ErrNotTrusted)

	pub, err := ks.Connect(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, address, pub.String())

	// trusted now
	pub2, err := ks.Connect(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, pub, pub2)

	sig, err := ks.SignMessage(ctx, []byte("msg"))
	require.NoError(t, err)
	assert.True(t, sig.Verify(pub, []byte("msg")))

	require.NoError(t, ks.Disconnect(ctx))
	_, err = ks.Connect(ctx, true)
	assert.ErrorIs(t, err, ErrNotTrusted)
}

func TestKeystoreRejected(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	_, err := GenerateWallet(path, []byte("pw"))
	require.NoError(t, err)

	_, err = NewKeystore(path, staticPassword("wrong")).Connect(ctx, false)
	assert.ErrorIs(t, err, ErrRejected)

	_, err = NewKeystore(path, func() ([]byte, error) { return nil, errors.New("no tty") }).Connect(ctx, false)
	assert.ErrorIs(t, err, ErrRejected)

	_, err = NewKeystore(path, nil).Connect(ctx, false)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestGenerateWalletRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, err := GenerateWallet(filepath.Join(dir, "wallet.txt"), []byte("pw"))
	assert.Error(t, err)

	path := filepath.Join(dir, "wallet.cwt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	_, err = GenerateWallet(path, []byte("pw"))
	assert.True(t, IsFileExistsError(err))
}

func TestWriteQRFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "address.png")
	require.NoError(t, WriteQRFile(solana.NewWallet().PublicKey().String(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
