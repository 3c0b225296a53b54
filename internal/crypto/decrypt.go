package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/gif-portal/internal/model"
)

var (
	// ErrFileNotFound is returned when the wallet file does not exist or is empty
	ErrFileNotFound = errors.New("wallet file not found")
	// ErrInvalidPassword is returned when the ciphertext cannot be opened
	ErrInvalidPassword = errors.New("invalid password")
)

// DecryptWallet reads and decrypts .cwt file
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(filePath string, password []byte) (*model.CWTFile, *model.WalletData, error) {
	cwtFile, err := readCWTFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(cwtFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(cwtFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cwtFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	// Derive key from password and create GCM
	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	// Deserialize wallet data
	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return cwtFile, &walletData, nil
}

// ReadWalletAddress reads only the address from .cwt file (without decryption)
func ReadWalletAddress(filePath string) (string, error) {
	cwtFile, err := readCWTFile(filePath)
	if err != nil {
		return "", err
	}
	return cwtFile.Address, nil
}

// WalletExists reports whether a non-empty wallet file is present
func WalletExists(filePath string) bool {
	fileInfo, err := os.Stat(filePath)
	return err == nil && fileInfo.Size() > 0
}

func readCWTFile(filePath string) (*model.CWTFile, error) {
	// Check if file exists
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	// Check that file is not empty
	if fileInfo.Size() == 0 {
		return nil, ErrFileNotFound
	}

	// Read file
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	// Skip UTF-8 BOM if present
	fileData = bytes.TrimPrefix(fileData, bom)

	// Deserialize file structure
	var cwtFile model.CWTFile
	if err := json.Unmarshal(fileData, &cwtFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &cwtFile, nil
}
