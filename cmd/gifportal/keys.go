package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/gif-portal/internal/client"
	"github.com/AlexZinkM/gif-portal/internal/config"
	"github.com/AlexZinkM/gif-portal/internal/crypto"
	"github.com/AlexZinkM/gif-portal/internal/model"
	"github.com/AlexZinkM/gif-portal/internal/program"
	"github.com/AlexZinkM/gif-portal/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"
)

var walletCmd = &cli.Command{
	Name:  "wallet",
	Usage: "manage the local encrypted wallet",
	Subcommands: []*cli.Command{
		walletGenerateCmd,
		walletAddressCmd,
	},
}

var walletGenerateCmd = &cli.Command{
	Name:  "generate",
	Usage: "generate a new wallet and save it to WALLET_FILE_PATH",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "qr", Usage: "also write the address as a QR code PNG to this path"},
	},
	Action: func(cctx *cli.Context) error {
		if err := config.PromptForPassword(); err != nil {
			return err
		}
		password, err := config.GetWalletPasswordBytes()
		if err != nil {
			return err
		}
		defer clear(password)

		address, err := wallet.GenerateWallet(config.GetWalletFilePath(), password)
		if err != nil {
			return err
		}

		resp := model.GenerateResponse{
			Success: true,
			Message: "Wallet generated successfully",
			Address: address,
		}
		if qrPath := cctx.String("qr"); qrPath != "" {
			if err := wallet.WriteQRFile(address, qrPath); err != nil {
				return err
			}
			resp.QRPath = qrPath
		}
		return printJSON(resp)
	},
}

var walletAddressCmd = &cli.Command{
	Name:  "address",
	Usage: "print the wallet address without unlocking it",
	Action: func(cctx *cli.Context) error {
		address, err := crypto.ReadWalletAddress(config.GetWalletFilePath())
		if err != nil {
			return err
		}
		fmt.Println(address)
		return nil
	},
}

var accountCmd = &cli.Command{
	Name:  "account",
	Usage: "manage the shared list account",
	Subcommands: []*cli.Command{
		accountKeygenCmd,
		accountShowCmd,
	},
}

var accountKeygenCmd = &cli.Command{
	Name:  "keygen",
	Usage: "create the list account key file at BASE_ACCOUNT_KEYPAIR",
	Action: func(cctx *cli.Context) error {
		key := solana.NewWallet().PrivateKey
		if err := crypto.WriteKeypair(config.GetBaseAccountKeyPath(), key); err != nil {
			return err
		}
		fmt.Println(key.PublicKey().String())
		return nil
	},
}

var accountShowCmd = &cli.Command{
	Name:  "show",
	Usage: "fetch the list account and print its entries",
	Action: func(cctx *cli.Context) error {
		baseAccount, err := crypto.LoadKeypair(config.GetBaseAccountKeyPath())
		if err != nil {
			return err
		}
		idl, programID, err := loadProgram()
		if err != nil {
			return err
		}

		// reads need no signer
		conn := client.NewSolanaClient(config.GetSolanaRPCURL())
		pc := program.NewClient(conn, nil, programID, idl)

		address := baseAccount.PublicKey()
		acct, err := pc.FetchBaseAccount(cctx.Context, address)
		if errors.Is(err, program.ErrAccountNotFound) {
			fmt.Fprintf(os.Stderr, "list account %s is not initialized\n", address)
			return nil
		}
		if err != nil {
			return err
		}

		items := make([]model.GifItem, 0, len(acct.GifList))
		for _, item := range acct.GifList {
			items = append(items, model.GifItem{GifLink: item.GifLink, UserAddress: item.UserAddress.String()})
		}
		return printJSON(struct {
			Address   string          `json:"address"`
			TotalGifs uint64          `json:"totalGifs"`
			Gifs      []model.GifItem `json:"gifs"`
		}{address.String(), acct.TotalGifs, items})
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
