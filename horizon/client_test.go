package horizon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarns/snsd/txn"
)

func pageBody(records []Account) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"_embedded": map[string]interface{}{"records": records},
	})
	return body
}

func TestAccountPagerFollowsCursor(t *testing.T) {
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "GSIGNER", q.Get("signer"))
		require.Equal(t, "asc", q.Get("order"))
		require.Equal(t, strconv.Itoa(defaultPageLimit), q.Get("limit"))

		cursor := q.Get("cursor")
		cursors = append(cursors, cursor)
		switch cursor {
		case "":
			w.Write(pageBody([]Account{
				{AccountID: "GA", PagingToken: "1"},
				{AccountID: "GB", PagingToken: "2"},
			}))
		case "2":
			w.Write(pageBody([]Account{{AccountID: "GC", PagingToken: "3"}}))
		default:
			w.Write(pageBody(nil))
		}
	}))
	defer srv.Close()

	pager := New(srv.URL).AccountsForSigner("GSIGNER")
	var seen []string
	err := pager.Each(context.Background(), func(acc Account) bool {
		seen = append(seen, acc.AccountID)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"GA", "GB", "GC"}, seen)
	assert.Equal(t, []string{"", "2", "3"}, cursors)

	// exhausted pager stays exhausted
	records, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAccountPagerStopsEarly(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(pageBody([]Account{
			{AccountID: "GA", PagingToken: "1"},
			{AccountID: "GB", PagingToken: "2"},
		}))
	}))
	defer srv.Close()

	pager := New(srv.URL).AccountsForSigner("GSIGNER")
	err := pager.Each(context.Background(), func(acc Account) bool {
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestAccountPagerHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pageBody(nil))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pager := New(srv.URL).AccountsForSigner("GSIGNER")
	_, err := pager.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseErrorExtractsResultCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"title": "Transaction Failed",
			"detail": "The transaction failed when submitted to the stellar network.",
			"extras": {"result_codes": {"transaction": "tx_bad_seq"}}
		}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitTransaction(context.Background(), "AAAA")
	require.Error(t, err)
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusBadRequest, herr.StatusCode)
	assert.Equal(t, "Transaction Failed", herr.Title)
	assert.Contains(t, herr.ResultCodes, "tx_bad_seq")
	assert.Contains(t, herr.Error(), "tx_bad_seq")
}

func TestLoadAccountMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"Resource Missing"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).LoadAccount(context.Background(), "GNOBODY")
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
	assert.Equal(t, "Resource Missing", herr.Title)
}

func TestLoadAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/GUSER", r.URL.Path)
		json.NewEncoder(w).Encode(Account{ID: "GUSER", AccountID: "GUSER", Sequence: "123"})
	}))
	defer srv.Close()

	acc, err := New(srv.URL).LoadAccount(context.Background(), "GUSER")
	require.NoError(t, err)
	seq, err := acc.SequenceNumber()
	require.NoError(t, err)
	assert.EqualValues(t, 123, seq)
}

func TestClaimableBalances(t *testing.T) {
	asset := txn.NewAsset("Domain", "GISSUER")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/claimable_balances", r.URL.Path)
		assert.Equal(t, asset.String(), r.URL.Query().Get("asset"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"_embedded":{"records":[{"id":"00aa","amount":"0.0000001"}]}}`))
	}))
	defer srv.Close()

	balances, err := New(srv.URL).ClaimableBalances(context.Background(), asset, 1)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "00aa", balances[0].ID)
}

func TestHoldsPositive(t *testing.T) {
	asset := txn.NewAsset("Domain", "GISSUER")
	acc := Account{Balances: []Balance{
		{Balance: "0.0000000", AssetType: "credit_alphanum12", AssetCode: "Domain", AssetIssuer: "GISSUER"},
	}}
	assert.False(t, acc.HoldsPositive(asset))

	acc.Balances[0].Balance = "0.0000001"
	assert.True(t, acc.HoldsPositive(asset))

	// same code, different issuer
	assert.False(t, acc.HoldsPositive(txn.NewAsset("Domain", "GOTHER")))
}

func TestDataValueDecoding(t *testing.T) {
	acc := Account{Data: map[string]string{
		"domain": "YWxpY2Uuc3RlbGxhcg==", // alice.stellar
		"broken": "%%%",
	}}
	v, ok := acc.DataValue("domain")
	assert.True(t, ok)
	assert.Equal(t, "alice.stellar", v)

	_, ok = acc.DataValue("broken")
	assert.False(t, ok)

	_, ok = acc.DataValue("absent")
	assert.False(t, ok)

	raw, ok := acc.DataRaw("domain")
	assert.True(t, ok)
	assert.Equal(t, "YWxpY2Uuc3RlbGxhcg==", raw)
}
