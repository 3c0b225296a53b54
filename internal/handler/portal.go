package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/gif-portal/internal/common"
	"github.com/AlexZinkM/gif-portal/internal/model"
	"github.com/AlexZinkM/gif-portal/internal/portal"
	"github.com/AlexZinkM/gif-portal/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// BalanceSource reads SOL balances. *client.SolanaClient implements it.
type BalanceSource interface {
	GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error)
}

// PortalHandler exposes the portal over HTTP
type PortalHandler struct {
	portal   *portal.Portal
	balances BalanceSource
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(p *portal.Portal, balances BalanceSource) *PortalHandler {
	return &PortalHandler{
		portal:   p,
		balances: balances,
	}
}

// State handles GET /portal/state
// @Summary      Get portal state
// @Description  Returns the wallet session, the cached GIF list (null until the list account exists), the last fetch result and the input buffer
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Router       /portal/state [get]
func (h *PortalHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(h.portal.State()))
}

// Connect handles POST /portal/connect
// @Summary      Connect wallet
// @Description  Asks the wallet for approval, then checks the list account and loads it
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /portal/connect [post]
func (h *PortalHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.portal.ConnectExplicitly(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(h.portal.State()))
}

// Disconnect handles POST /portal/disconnect
// @Summary      Disconnect wallet
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /portal/disconnect [post]
func (h *PortalHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.portal.Disconnect(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(h.portal.State()))
}

// Initialize handles POST /portal/initialize
// @Summary      Create the GIF list account
// @Description  One-time creation of the shared list account, signed by the account key and the wallet
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.TxResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /portal/initialize [post]
func (h *PortalHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	sig, err := h.portal.InitializeAccount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TxResponse{Signature: sig.String()})
}

// Refresh handles POST /portal/refresh
// @Summary      Reload the GIF list
// @Description  Fetches the list account and replaces the cached list. Fetch failures are reported in lastFetch.
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Failure      401  {object}  model.ErrorResponse
// @Router       /portal/refresh [post]
func (h *PortalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if _, err := h.portal.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(h.portal.State()))
}

// Gifs handles GET and POST /portal/gifs
func (h *PortalHandler) Gifs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listGifs(w, r)
	case http.MethodPost:
		h.submitGif(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// listGifs handles GET /portal/gifs
// @Summary      Get cached GIF list
// @Description  Returns the cached list in submission order, or null while the list account is not initialized
// @Tags         portal
// @Produce      json
// @Success      200  {array}  model.GifItem
// @Router       /portal/gifs [get]
func (h *PortalHandler) listGifs(w http.ResponseWriter, r *http.Request) {
	entries, _ := h.portal.Cache().Entries()
	writeJSON(w, http.StatusOK, gifItems(entries))
}

// submitGif handles POST /portal/gifs
// @Summary      Submit a GIF link
// @Description  Appends a link to the shared list and reloads it
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        request  body      model.SubmitRequest  true  "GIF link"
// @Success      200      {object}  model.TxResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /portal/gifs [post]
func (h *PortalHandler) submitGif(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "bad_request"})
		return
	}

	sig, err := h.portal.Submit(r.Context(), req.GifLink)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TxResponse{Signature: sig.String()})
}

// Input handles PUT and POST /portal/input
func (h *PortalHandler) Input(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.setInput(w, r)
	case http.MethodPost:
		h.submitInput(w, r)
	default:
		http.Error(w, "Method not allowed. Should be PUT or POST", http.StatusMethodNotAllowed)
	}
}

// setInput handles PUT /portal/input
// @Summary      Set the input buffer
// @Description  Replaces the text of the GIF link being typed
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        request  body      model.InputRequest  true  "Input text"
// @Success      200      {object}  model.StateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /portal/input [put]
func (h *PortalHandler) setInput(w http.ResponseWriter, r *http.Request) {
	var req model.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "bad_request"})
		return
	}
	h.portal.SetInput(req.Value)
	writeJSON(w, http.StatusOK, stateResponse(h.portal.State()))
}

// submitInput handles POST /portal/input
// @Summary      Submit the input buffer
// @Description  Sends the buffered link. The buffer is cleared on success and restored on failure unless it was changed meanwhile.
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.TxResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /portal/input [post]
func (h *PortalHandler) submitInput(w http.ResponseWriter, r *http.Request) {
	sig, err := h.portal.SubmitInput(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TxResponse{Signature: sig.String()})
}

// Balance handles GET /portal/balance
// @Summary      Get wallet balance
// @Description  Gets the SOL balance of the connected wallet, which pays the transaction fees
// @Tags         portal
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /portal/balance [get]
func (h *PortalHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	address, ok := h.portal.Session().PublicKey()
	if !ok {
		writeError(w, portal.ErrNotConnected)
		return
	}
	lamports, err := h.balances.GetBalance(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BalanceResponse{
		Address: address.String(),
		SOL:     common.LamportsToSOL(lamports),
	})
}

func stateResponse(st portal.State) model.StateResponse {
	resp := model.StateResponse{
		Session:             st.Session.String(),
		Gifs:                gifItems(st.Entries),
		NeedsInitialization: st.NeedsInitialization,
		LastFetch:           model.FetchInfo{Status: st.LastFetch.Status.String()},
		Input:               st.Input,
		Pending:             st.Pending,
	}
	if !st.PublicKey.IsZero() {
		resp.Address = st.PublicKey.String()
	}
	if st.LastFetch.Err != nil {
		resp.LastFetch.Error = st.LastFetch.Err.Error()
	}
	return resp
}

// gifItems keeps nil as nil so an uninitialized list encodes as null
func gifItems(entries []portal.GifEntry) []model.GifItem {
	if entries == nil {
		return nil
	}
	items := make([]model.GifItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.GifItem{GifLink: e.Link, UserAddress: e.Submitter.String()})
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, portal.ErrWalletUnavailable):
		return http.StatusServiceUnavailable, "wallet_unavailable"
	case errors.Is(err, portal.ErrNotConnected):
		return http.StatusUnauthorized, "not_connected"
	case errors.Is(err, wallet.ErrNotTrusted), errors.Is(err, wallet.ErrRejected):
		return http.StatusUnauthorized, "wallet_rejected"
	case errors.Is(err, portal.ErrEmptyLink):
		return http.StatusBadRequest, "empty_link"
	case errors.Is(err, portal.ErrAlreadyInitialized):
		return http.StatusConflict, "already_initialized"
	case errors.Is(err, portal.ErrInitializeInProgress), errors.Is(err, portal.ErrConnectInProgress):
		return http.StatusConflict, "in_progress"
	default:
		return http.StatusBadGateway, "remote_error"
	}
}
