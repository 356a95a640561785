package snsd

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/stellarns/snsd/config"
	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

const (
	testRegistrar = "GREGISTRARXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"
	testNow       = int64(1700000000)
	testPeriod    = int64(31536000)
)

// fakeLedger serves horizon-shaped fixtures over httptest, with small
// pages so resolver tests exercise cursor draining.
type fakeLedger struct {
	signerAccounts []horizon.Account            // cosigned by the registrar
	assetHolders   map[string][]horizon.Account // key: asset string
	accounts       map[string]horizon.Account   // key: account id
	claimables     map[string][]horizon.ClaimableBalance
	pageSize       int
	failAll        bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		assetHolders: make(map[string][]horizon.Account),
		accounts:     make(map[string]horizon.Account),
		claimables:   make(map[string][]horizon.ClaimableBalance),
		pageSize:     2,
	}
}

func (f *fakeLedger) addAccount(acc horizon.Account) {
	f.accounts[acc.AccountID] = acc
}

func (f *fakeLedger) addDomainAccount(acc horizon.Account) {
	f.signerAccounts = append(f.signerAccounts, acc)
	f.addAccount(acc)
}

func (f *fakeLedger) addHolder(asset txn.Asset, acc horizon.Account) {
	f.assetHolders[asset.String()] = append(f.assetHolders[asset.String()], acc)
	f.addAccount(acc)
}

func (f *fakeLedger) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"title":"Internal Server Error"}`))
			return
		}
		q := r.URL.Query()
		switch {
		case r.URL.Path == "/accounts" && q.Get("signer") != "":
			f.writePage(w, f.signerAccounts, q.Get("cursor"))
		case r.URL.Path == "/accounts" && q.Get("asset") != "":
			f.writePage(w, f.assetHolders[q.Get("asset")], q.Get("cursor"))
		case r.URL.Path == "/claimable_balances":
			writeRecords(w, f.claimables[q.Get("asset")])
		case len(r.URL.Path) > len("/accounts/") && r.URL.Path[:len("/accounts/")] == "/accounts/":
			id := r.URL.Path[len("/accounts/"):]
			acc, ok := f.accounts[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"title":"Resource Missing"}`))
				return
			}
			json.NewEncoder(w).Encode(acc)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"Resource Missing"}`))
		}
	}))
}

func (f *fakeLedger) writePage(w http.ResponseWriter, all []horizon.Account, cursor string) {
	start := 0
	if cursor != "" {
		start, _ = strconv.Atoi(cursor)
	}
	end := start + f.pageSize
	if end > len(all) {
		end = len(all)
	}
	records := make([]horizon.Account, 0, f.pageSize)
	if start < len(all) {
		for i, acc := range all[start:end] {
			acc.PagingToken = strconv.Itoa(start + i + 1)
			records = append(records, acc)
		}
	}
	writeRecords(w, records)
}

func writeRecords[T any](w http.ResponseWriter, records []T) {
	if records == nil {
		records = []T{}
	}
	page := map[string]interface{}{
		"_embedded": map[string]interface{}{
			"records": records,
		},
	}
	json.NewEncoder(w).Encode(page)
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// domainAccount builds an issuer-account fixture carrying the domain data
// entries.
func domainAccount(id, domain string, expires int64, parent string) horizon.Account {
	data := map[string]string{schema.DataKeyDomain: b64(domain)}
	if expires > 0 {
		data[schema.DataKeyExpires] = b64(strconv.FormatInt(expires, 10))
	}
	return horizon.Account{
		ID:                   id,
		AccountID:            id,
		Sequence:             "7000",
		InflationDestination: parent,
		Data:                 data,
	}
}

// holderAccount builds an account fixture holding the given balance of the
// asset.
func holderAccount(id string, asset txn.Asset, balance string) horizon.Account {
	return horizon.Account{
		ID:        id,
		AccountID: id,
		Sequence:  "5000",
		Data:      map[string]string{},
		Balances: []horizon.Balance{
			{Balance: balance, AssetType: asset.Type(), AssetCode: asset.Code, AssetIssuer: asset.Issuer},
		},
	}
}

func testConfig() config.Config {
	return config.Config{
		NetworkPassphrase: config.TestnetPassphrase,
		RegistrarAccount:  testRegistrar,
		DomainExpiration:  testPeriod,
	}
}

// testContract wires a Contract against a fixture ledger with a frozen
// clock. The registrar account fixture is registered automatically.
func testContract(f *fakeLedger) (*Contract, *httptest.Server) {
	f.addAccount(horizon.Account{ID: testRegistrar, AccountID: testRegistrar, Sequence: "41"})
	srv := f.server()
	cli := horizon.New(srv.URL)
	cfg := testConfig()
	return &Contract{
		res: NewResolver(cli, cfg.RegistrarAccount),
		cli: cli,
		cfg: cfg,
		now: func() int64 { return testNow },
	}, srv
}
