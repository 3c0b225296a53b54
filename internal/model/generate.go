package model

// GenerateResponse represents the result of `wallet generate`
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
	QRPath  string `json:"qrPath,omitempty"`
}
