package portal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexZinkM/gif-portal/internal/portal"
	"github.com/AlexZinkM/gif-portal/internal/program"
	"github.com/AlexZinkM/gif-portal/internal/testhelper"
	"github.com/AlexZinkM/gif-portal/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	portal    *portal.Portal
	ledger    *testhelper.Ledger
	wallet    *testhelper.MemWallet
	programID solana.PublicKey
}

func newFixture(t *testing.T) *fixture {
	idl, err := program.DefaultIDL()
	require.NoError(t, err)
	programID, err := idl.Address()
	require.NoError(t, err)

	ledger := testhelper.NewLedger(programID)
	w := testhelper.NewMemWallet()
	p := portal.New(w, portal.NewBinder(ledger, programID, idl), solana.NewWallet().PrivateKey)
	return &fixture{portal: p, ledger: ledger, wallet: w, programID: programID}
}

func (f *fixture) connect(t *testing.T) {
	require.NoError(t, f.portal.ConnectExplicitly(context.Background()))
}

func (f *fixture) initialize(t *testing.T) {
	f.connect(t)
	_, err := f.portal.InitializeAccount(context.Background())
	require.NoError(t, err)
}

func links(entries []portal.GifEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Link)
	}
	return out
}

func TestWalletUnavailable(t *testing.T) {
	f := newFixture(t)
	f.wallet.SetAvailable(false)

	err := f.portal.AttemptAutoConnect(context.Background())
	assert.ErrorIs(t, err, portal.ErrWalletUnavailable)
	err = f.portal.ConnectExplicitly(context.Background())
	assert.ErrorIs(t, err, portal.ErrWalletUnavailable)

	assert.Equal(t, portal.Disconnected, f.portal.Session().Status())
	assert.Zero(t, f.wallet.Connects())
}

func TestSessionTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// not trusted yet: stays disconnected without prompting
	err := f.portal.AttemptAutoConnect(ctx)
	assert.ErrorIs(t, err, wallet.ErrNotTrusted)
	assert.Equal(t, portal.Disconnected, f.portal.Session().Status())

	require.NoError(t, f.portal.ConnectExplicitly(ctx))
	st := f.portal.State()
	assert.Equal(t, portal.Connected, st.Session)
	assert.Equal(t, f.wallet.PublicKey(), st.PublicKey)
	assert.True(t, st.NeedsInitialization)

	connects := f.wallet.Connects()
	key, err := f.portal.Session().Connect(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, f.wallet.PublicKey(), key)
	assert.Equal(t, connects, f.wallet.Connects())

	require.NoError(t, f.portal.Disconnect(ctx))
	st = f.portal.State()
	assert.Equal(t, portal.Disconnected, st.Session)
	assert.True(t, st.PublicKey.IsZero())
	assert.Nil(t, st.Entries)
	assert.False(t, st.NeedsInitialization)

	// disconnect revokes trust
	err = f.portal.AttemptAutoConnect(ctx)
	assert.ErrorIs(t, err, wallet.ErrNotTrusted)
}

func TestAutoConnectTrusted(t *testing.T) {
	f := newFixture(t)
	f.wallet.SetTrusted(true)

	require.NoError(t, f.portal.AttemptAutoConnect(context.Background()))
	assert.Equal(t, portal.Connected, f.portal.Session().Status())
	assert.Equal(t, portal.FetchNotFound, f.portal.State().LastFetch.Status)
}

func TestConnectRejected(t *testing.T) {
	f := newFixture(t)
	rejected := errors.New("User rejected the request.")
	f.wallet.SetReject(rejected)

	err := f.portal.ConnectExplicitly(context.Background())
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, portal.Disconnected, f.portal.Session().Status())

	fetches, sends := f.ledger.Calls()
	assert.Zero(t, fetches)
	assert.Zero(t, sends)
}

func TestRemoteCallsRequireSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.portal.SetInput("https://i.giphy.com/a.webp")

	_, err := f.portal.Refresh(ctx)
	assert.ErrorIs(t, err, portal.ErrNotConnected)
	_, err = f.portal.EnsureAccount(ctx)
	assert.ErrorIs(t, err, portal.ErrNotConnected)
	_, err = f.portal.InitializeAccount(ctx)
	assert.ErrorIs(t, err, portal.ErrNotConnected)
	_, err = f.portal.Submit(ctx, "https://i.giphy.com/a.webp")
	assert.ErrorIs(t, err, portal.ErrNotConnected)
	_, err = f.portal.SubmitInput(ctx)
	assert.ErrorIs(t, err, portal.ErrNotConnected)

	fetches, sends := f.ledger.Calls()
	assert.Zero(t, fetches)
	assert.Zero(t, sends)
	assert.Equal(t, "https://i.giphy.com/a.webp", f.portal.Input().Value())
	assert.False(t, f.portal.NeedsInitialization())
}

func TestUninitializedIsNotEmpty(t *testing.T) {
	f := newFixture(t)
	f.connect(t)

	st := f.portal.State()
	assert.Nil(t, st.Entries)
	assert.Equal(t, portal.FetchNotFound, st.LastFetch.Status)
	assert.ErrorIs(t, st.LastFetch.Err, portal.ErrAccountNotFound)
	assert.True(t, f.portal.NeedsInitialization())

	_, err := f.portal.InitializeAccount(context.Background())
	require.NoError(t, err)

	st = f.portal.State()
	require.NotNil(t, st.Entries)
	assert.Len(t, st.Entries, 0)
	assert.Equal(t, portal.FetchOK, st.LastFetch.Status)
	assert.False(t, st.NeedsInitialization)
}

func TestInitializeOnlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	_, err := f.portal.Submit(ctx, "https://i.giphy.com/a.webp")
	require.NoError(t, err)
	_, sends := f.ledger.Calls()

	_, err = f.portal.InitializeAccount(ctx)
	assert.ErrorIs(t, err, portal.ErrAlreadyInitialized)

	_, after := f.ledger.Calls()
	assert.Equal(t, sends, after)
	entries, ok := f.portal.Cache().Entries()
	require.True(t, ok)
	assert.Equal(t, []string{"https://i.giphy.com/a.webp"}, links(entries))
}

func TestInitializeUnknownState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.connect(t)

	f.ledger.SetFailFetch(errors.New("connection refused"))
	_, err := f.portal.InitializeAccount(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, portal.ErrAlreadyInitialized))

	_, sends := f.ledger.Calls()
	assert.Zero(t, sends)
}

func TestInitializeFailure(t *testing.T) {
	f := newFixture(t)
	f.connect(t)
	f.wallet.SetFailSign(true)

	_, err := f.portal.InitializeAccount(context.Background())
	require.Error(t, err)
	assert.True(t, f.portal.NeedsInitialization())
	assert.Nil(t, f.portal.State().Entries)
}

func TestSubmitRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	sent := []string{
		"https://i.giphy.com/media/a/giphy.gif",
		"https://i.giphy.com/media/b/giphy.webp",
		"https://i.giphy.com/media/c/giphy.gif",
	}
	for _, link := range sent {
		_, err := f.portal.Submit(ctx, link)
		require.NoError(t, err)
	}

	entries, ok := f.portal.Cache().Entries()
	require.True(t, ok)
	assert.Equal(t, sent, links(entries))
	for _, e := range entries {
		assert.Equal(t, f.wallet.PublicKey(), e.Submitter)
	}

	_, err := f.portal.Refresh(ctx)
	require.NoError(t, err)
	entries, _ = f.portal.Cache().Entries()
	assert.Equal(t, sent, links(entries))
}

func TestSubmitKeepsLinkExactly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	sent := []string{" https://i.giphy.com/a.webp ", "   ", "https://i.giphy.com/b.gif\n"}
	for _, link := range sent {
		_, err := f.portal.Submit(ctx, link)
		require.NoError(t, err)
	}

	f.portal.SetInput("\thttps://i.giphy.com/c.gif")
	_, err := f.portal.SubmitInput(ctx)
	require.NoError(t, err)

	entries, _ := f.portal.Cache().Entries()
	assert.Equal(t, append(sent, "\thttps://i.giphy.com/c.gif"), links(entries))
}

func TestEmptyLinkIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)
	fetches, sends := f.ledger.Calls()

	_, err := f.portal.Submit(ctx, "")
	assert.ErrorIs(t, err, portal.ErrEmptyLink)

	f.portal.SetInput("")
	_, err = f.portal.SubmitInput(ctx)
	assert.ErrorIs(t, err, portal.ErrEmptyLink)
	_, pending := f.portal.Input().Pending()
	assert.False(t, pending)

	afterFetches, afterSends := f.ledger.Calls()
	assert.Equal(t, fetches, afterFetches)
	assert.Equal(t, sends, afterSends)
	entries, ok := f.portal.Cache().Entries()
	assert.True(t, ok)
	assert.Empty(t, entries)
}

func TestSubmitInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	f.portal.SetInput("https://i.giphy.com/a.webp")
	_, err := f.portal.SubmitInput(ctx)
	require.NoError(t, err)

	st := f.portal.State()
	assert.Empty(t, st.Input)
	assert.Empty(t, st.Pending)
	assert.Equal(t, []string{"https://i.giphy.com/a.webp"}, links(st.Entries))
}

func TestSubmitInputRestoredOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	f.ledger.SetFailSend(errors.New("Blockhash not found"))
	f.portal.SetInput("https://i.giphy.com/a.webp")
	_, err := f.portal.SubmitInput(ctx)
	require.Error(t, err)

	st := f.portal.State()
	assert.Equal(t, "https://i.giphy.com/a.webp", st.Input)
	assert.Empty(t, st.Pending)
	assert.Empty(t, st.Entries)
}

func TestFetchFailureClearsCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)
	_, err := f.portal.Submit(ctx, "https://i.giphy.com/a.webp")
	require.NoError(t, err)

	f.ledger.SetFailFetch(errors.New("connection refused"))
	res, err := f.portal.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, portal.FetchTransportError, res.Status)

	st := f.portal.State()
	assert.Nil(t, st.Entries)
	assert.False(t, st.NeedsInitialization)

	f.ledger.SetFailFetch(nil)
	res, err = f.portal.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, portal.FetchOK, res.Status)
	assert.Len(t, f.portal.State().Entries, 1)
}

func TestFetchCorruptAccount(t *testing.T) {
	f := newFixture(t)
	f.ledger.PutAccount(f.portal.BaseAccount(), f.programID, []byte{1, 2, 3})
	f.connect(t)

	st := f.portal.State()
	assert.Equal(t, portal.FetchDecodeError, st.LastFetch.Status)
	assert.Nil(t, st.Entries)
	assert.False(t, st.NeedsInitialization)

	_, err := f.portal.InitializeAccount(context.Background())
	assert.ErrorIs(t, err, portal.ErrDecode)
	_, sends := f.ledger.Calls()
	assert.Zero(t, sends)
}

func TestRefreshAfterSubmitMayBeStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	f.ledger.SetStaleReads(true)
	_, err := f.portal.Submit(ctx, "https://i.giphy.com/a.webp")
	require.NoError(t, err)
	entries, ok := f.portal.Cache().Entries()
	assert.True(t, ok)
	assert.Empty(t, entries)

	f.ledger.SetStaleReads(false)
	_, err = f.portal.Refresh(ctx)
	require.NoError(t, err)
	entries, _ = f.portal.Cache().Entries()
	assert.Equal(t, []string{"https://i.giphy.com/a.webp"}, links(entries))
}

func TestTwoWritersShareTheList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.initialize(t)

	idl, err := program.DefaultIDL()
	require.NoError(t, err)
	other := testhelper.NewMemWallet()
	c := program.NewClient(f.ledger, other, f.programID, idl)
	_, err = c.AddGif(ctx, f.portal.BaseAccount(), "https://i.giphy.com/other.gif")
	require.NoError(t, err)

	_, err = f.portal.Submit(ctx, "https://i.giphy.com/mine.gif")
	require.NoError(t, err)

	entries, _ := f.portal.Cache().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, other.PublicKey(), entries[0].Submitter)
	assert.Equal(t, f.wallet.PublicKey(), entries[1].Submitter)
}
