package model

// GifItem is a single list entry as rendered by the API
type GifItem struct {
	GifLink     string `json:"gifLink"`
	UserAddress string `json:"userAddress"`
}

// FetchInfo describes the outcome of the last account fetch
type FetchInfo struct {
	Status string `json:"status"` // "unknown", "ok", "not-found", "decode-error", "transport-error"
	Error  string `json:"error,omitempty"`
}

// StateResponse represents response for GET /portal/state
type StateResponse struct {
	Session             string    `json:"session"`
	Address             string    `json:"address,omitempty"`
	Gifs                []GifItem `json:"gifs"` // null until the list account is initialized
	NeedsInitialization bool      `json:"needsInitialization"`
	LastFetch           FetchInfo `json:"lastFetch"`
	Input               string    `json:"input"`
	Pending             string    `json:"pending,omitempty"`
}

// SubmitRequest represents request for POST /portal/gifs
type SubmitRequest struct {
	GifLink string `json:"gifLink"`
}

// InputRequest represents request for PUT /portal/input
type InputRequest struct {
	Value string `json:"value"`
}

// TxResponse represents a response carrying a transaction signature
type TxResponse struct {
	Signature string `json:"signature"`
}

// BalanceResponse represents response for GET /portal/balance
type BalanceResponse struct {
	Address string `json:"address"`
	SOL     string `json:"sol"`
}
