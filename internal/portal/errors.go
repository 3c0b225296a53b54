package portal

import (
	"errors"

	"github.com/AlexZinkM/gif-portal/internal/program"
	"github.com/AlexZinkM/gif-portal/internal/wallet"
)

var (
	// ErrWalletUnavailable is returned when there is no wallet to connect to
	ErrWalletUnavailable = wallet.ErrUnavailable
	// ErrNotConnected is returned by remote operations while the session is not Connected
	ErrNotConnected = errors.New("wallet not connected")
	// ErrConnectInProgress is returned when a connect attempt is already running
	ErrConnectInProgress = errors.New("wallet connection in progress")
	// ErrAlreadyInitialized is returned by InitializeAccount when the list account exists
	ErrAlreadyInitialized = errors.New("list account already initialized")
	// ErrInitializeInProgress is returned when an initialization is already running
	ErrInitializeInProgress = errors.New("list account initialization in progress")
	// ErrEmptyLink is returned when submitting an empty link; nothing is sent
	ErrEmptyLink = errors.New("no gif link given")
	// ErrAccountNotFound is returned when the list account does not exist
	ErrAccountNotFound = program.ErrAccountNotFound
	// ErrDecode is returned when the list account data cannot be decoded
	ErrDecode = program.ErrDecode
)
