package crypto

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/AlexZinkM/gif-portal/internal/model"

	"github.com/gagliardetto/solana-go"
)

// LoadKeypair reads the shared list account key material.
// Two formats are accepted: the solana-keygen JSON byte array and the
// JSON-serialized web3.js Keypair object.
func LoadKeypair(filePath string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file: %w", err)
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, bom))

	var raw []byte
	switch {
	case bytes.HasPrefix(data, []byte("[")):
		raw, err = parseKeygenArray(data)
	case bytes.HasPrefix(data, []byte("{")):
		raw, err = parseWeb3Keypair(data)
	default:
		err = errors.New("unrecognized keypair format")
	}
	if err != nil {
		return nil, err
	}

	if len(raw) != ed25519.PrivateKeySize {
		clear(raw)
		return nil, fmt.Errorf("invalid keypair length %d, expected %d", len(raw), ed25519.PrivateKeySize)
	}
	// The second half of the key must be the public key derived from the seed
	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	defer clear(derived)
	if !bytes.Equal(derived, raw) {
		clear(raw)
		return nil, errors.New("keypair public key does not match secret key")
	}

	return solana.PrivateKey(raw), nil
}

// WriteKeypair writes key in solana-keygen format. Existing files are never overwritten.
func WriteKeypair(filePath string, key solana.PrivateKey) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("keypair file %s: %w", filePath, os.ErrExist)
	}

	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return fmt.Errorf("failed to marshal keypair: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write keypair file: %w", err)
	}
	return nil
}

func parseKeygenArray(data []byte) ([]byte, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keypair array: %w", err)
	}
	return intsToBytes(ints)
}

func parseWeb3Keypair(data []byte) ([]byte, error) {
	var kp model.Web3Keypair
	if err := json.Unmarshal(data, &kp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal web3 keypair: %w", err)
	}

	secret := kp.Keypair.SecretKey
	ints := make([]int, len(secret))
	for k, v := range secret {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(secret) {
			return nil, fmt.Errorf("invalid secretKey index %q", k)
		}
		ints[i] = v
	}
	return intsToBytes(ints)
}

func intsToBytes(ints []int) ([]byte, error) {
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			clear(out)
			return nil, fmt.Errorf("invalid key byte %d at index %d", v, i)
		}
		out[i] = byte(v)
	}
	return out, nil
}
