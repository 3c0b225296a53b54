package model

// CWTFile represents .cwt file structure
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data
type WalletData struct {
	PrivateKey []byte `json:"privateKey"` // 64 bytes key (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// Web3Keypair is the shape JSON.stringify gives a web3.js Keypair:
// {"_keypair":{"publicKey":{"0":1,...},"secretKey":{"0":2,...}}}
type Web3Keypair struct {
	Keypair struct {
		PublicKey map[string]int `json:"publicKey"`
		SecretKey map[string]int `json:"secretKey"`
	} `json:"_keypair"`
}
