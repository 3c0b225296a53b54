package crypto

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/AlexZinkM/gif-portal/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	scryptN = 1 << 10
	os.Exit(m.Run())
}

func TestEncryptDecryptWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	key := solana.NewWallet().PrivateKey
	address := key.PublicKey().String()

	err := EncryptWallet(path, "solana", address, "qr", &model.WalletData{PrivateKey: key, CreatedAt: "now"}, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, WalletExists(path))

	got, err := ReadWalletAddress(path)
	require.NoError(t, err)
	assert.Equal(t, address, got)

	cwt, data, err := DecryptWallet(path, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "solana", cwt.Network)
	assert.Equal(t, []byte(key), data.PrivateKey)

	_, _, err = DecryptWallet(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// never overwrite
	err = EncryptWallet(path, "solana", address, "", &model.WalletData{PrivateKey: key}, []byte("pw"))
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestEncryptWalletExtension(t *testing.T) {
	err := EncryptWallet(filepath.Join(t.TempDir(), "wallet.json"), "solana", "", "", &model.WalletData{}, []byte("pw"))
	assert.Error(t, err)
}

func TestMissingWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.cwt")
	assert.False(t, WalletExists(path))
	_, err := ReadWalletAddress(path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestKeypairRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keypair.json")
	key := solana.NewWallet().PrivateKey

	require.NoError(t, WriteKeypair(path, key))
	assert.ErrorIs(t, WriteKeypair(path, key), os.ErrExist)

	got, err := LoadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), got.PublicKey())
}

func TestLoadWeb3Keypair(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	var kp model.Web3Keypair
	kp.Keypair.SecretKey = map[string]int{}
	kp.Keypair.PublicKey = map[string]int{}
	for i, b := range key {
		kp.Keypair.SecretKey[strconv.Itoa(i)] = int(b)
	}
	for i, b := range key.PublicKey() {
		kp.Keypair.PublicKey[strconv.Itoa(i)] = int(b)
	}
	data, err := json.Marshal(kp)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keypair.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	got, err := LoadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), got.PublicKey())
}

func TestLoadKeypairRejectsMismatch(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	other := solana.NewWallet().PrivateKey
	tampered := append(append([]byte{}, key[:32]...), other[32:]...)

	ints := make([]int, len(tampered))
	for i, b := range tampered {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keypair.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	_, err = LoadKeypair(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))
	_, err = LoadKeypair(path)
	assert.Error(t, err)
}
