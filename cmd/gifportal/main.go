package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/gif-portal/internal/api"
	"github.com/AlexZinkM/gif-portal/internal/client"
	"github.com/AlexZinkM/gif-portal/internal/config"
	"github.com/AlexZinkM/gif-portal/internal/crypto"
	"github.com/AlexZinkM/gif-portal/internal/portal"
	"github.com/AlexZinkM/gif-portal/internal/program"
	"github.com/AlexZinkM/gif-portal/internal/wallet"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("main")

func main() {
	app := &cli.App{
		Name:  "gifportal",
		Usage: "shared GIF list on Solana",
		Before: func(cctx *cli.Context) error {
			if err := config.Init(); err != nil {
				return err
			}
			return logging.SetLogLevel("*", config.Get().LogLevel)
		},
		Commands: []*cli.Command{
			serveCmd, walletCmd, accountCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Warn(err)
		os.Exit(1)
	}
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "start the portal HTTP server",
	Action: func(cctx *cli.Context) error {
		return runServe(cctx.Context)
	},
}

func runServe(ctx context.Context) error {
	walletPath := config.GetWalletFilePath()
	if crypto.WalletExists(walletPath) {
		if err := config.PromptForPassword(); err != nil {
			return err
		}
	} else {
		log.Warnw("no wallet file, connect requests will fail until one is generated", "path", walletPath)
	}
	keystore := wallet.NewKeystore(walletPath, config.GetWalletPasswordBytes)

	baseAccount, err := crypto.LoadKeypair(config.GetBaseAccountKeyPath())
	if err != nil {
		return fmt.Errorf("failed to load list account key: %w", err)
	}

	idl, programID, err := loadProgram()
	if err != nil {
		return err
	}
	conn := client.NewSolanaClient(config.GetSolanaRPCURL())

	p := portal.New(keystore, portal.NewBinder(conn, programID, idl), baseAccount)
	if err := p.AttemptAutoConnect(ctx); err != nil {
		log.Infow("auto connect skipped", "reason", err.Error())
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           api.SetupRouter(p, conn),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Warnw("received shutdown", "signal", sig)
		case <-ctx.Done():
			log.Warn("received shutdown")
		}

		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutting down HTTP server failed: %s", err)
		}
	}()

	log.Infow("portal listening",
		"addr", srv.Addr,
		"rpc", conn.RPCURL(),
		"program", programID.String(),
		"baseAccount", baseAccount.PublicKey().String(),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.Info("Graceful shutdown successful")
	return nil
}

// loadProgram returns the embedded IDL and the program address, PROGRAM_ID taking precedence
func loadProgram() (*program.IDL, solana.PublicKey, error) {
	idl, err := program.DefaultIDL()
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if override := config.GetProgramID(); override != "" {
		programID, err := solana.PublicKeyFromBase58(override)
		if err != nil {
			return nil, solana.PublicKey{}, fmt.Errorf("invalid PROGRAM_ID: %w", err)
		}
		return idl, programID, nil
	}
	programID, err := idl.Address()
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return idl, programID, nil
}
