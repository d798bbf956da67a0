package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tranvictor/claimview/claim"
	"github.com/tranvictor/claimview/provider"
)

var contractAddr = common.HexToAddress("0xC1a1Ee5C1a1Ee5C1a1Ee5C1a1Ee5C1a1Ee5C1a1E")

const testDocument = "bafkreidon73zkcrwdb5iafqtijxildoonbwnpv7dyd6ef3qdgads2jc4su"

// logProvider returns every log whose event topic matches the query.
type logProvider struct {
	chainID *big.Int
	logs    []types.Log
}

func (p *logProvider) ChainID(context.Context) (*big.Int, error) {
	return p.chainID, nil
}

func (p *logProvider) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	out := []types.Log{}
	for _, l := range p.logs {
		ok := true
		for i, set := range q.Topics {
			if len(set) == 0 {
				continue
			}
			if i >= len(l.Topics) || set[0] != l.Topics[i] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func packLog(t *testing.T, event string, args ...interface{}) types.Log {
	t.Helper()
	ev := claim.DefaultABI().Events[event]
	rules := [][]interface{}{}
	data := []interface{}{}
	for i, in := range ev.Inputs {
		if in.Indexed {
			rules = append(rules, []interface{}{args[i]})
		} else {
			data = append(data, args[i])
		}
	}
	topics, err := abi.MakeTopics(rules...)
	if err != nil {
		t.Fatalf("make topics: %s", err)
	}
	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		t.Fatalf("pack %s: %s", event, err)
	}
	l := types.Log{Address: contractAddr, Topics: []common.Hash{ev.ID}, Data: packed}
	for _, topic := range topics {
		l.Topics = append(l.Topics, topic[0])
	}
	return l
}

func claimLogs(t *testing.T) []types.Log {
	policy := common.BigToHash(big.NewInt(0xB))
	return []types.Log{
		packLog(t, claim.EventDispute, common.HexToAddress("0x0000000000000000000000000000000000000001"), big.NewInt(42), big.NewInt(0xB), big.NewInt(0xA)),
		packLog(t, claim.EventCreatedClaim, big.NewInt(0xA), policy, big.NewInt(500)),
		packLog(t, claim.EventCreatedPolicy, policy,
			common.HexToAddress("0x00000000000000000000000000000000000A11cE"), common.HexToAddress("0x0000000000000000000000000000000000000B0b"),
			big.NewInt(1000), big.NewInt(2000000000), testDocument),
	}
}

func query() string {
	return `{"arbitrableContractAddress":"` + contractAddr.Hex() +
		`","arbitratorContractAddress":"0x0000000000000000000000000000000000000001","disputeID":"42","arbitrableChainID":"100"}`
}

func newTestServer(t *testing.T, p provider.Provider, ready func(context.Context) (*Readiness, error)) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(Options{
		NewSession: func(raw string, l *slog.Logger) *claim.Session {
			var host provider.Host = provider.NoHost{}
			if p != nil {
				host = provider.StaticHost{Provider: p}
			}
			return claim.NewSession(claim.SessionOptions{
				RawQuery:  raw,
				Providers: provider.NewResolver(provider.Options{Host: host, Logger: l}),
				Logger:    l,
			})
		},
		Gateway: "https://gw.example/ipfs/",
		Logger:  logger,
		Ready:   ready,
	})
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, u string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %s", u, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %s", err)
	}
	return resp, string(body)
}

func TestClaimPageLoaded(t *testing.T) {
	srv := newTestServer(t, &logProvider{chainID: big.NewInt(100), logs: claimLogs(t)}, nil)

	resp, body := get(t, srv.URL+"/claim?"+url.PathEscape(query()))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Errorf("missing request id header")
	}
	for _, want := range []string{
		`data-state="LOADED"`,
		"Coverage: 1,000",
		"https://gw.example/ipfs/" + testDocument,
		"IPFS link to Policy",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body misses %q:\n%s", want, body)
		}
	}
}

func TestClaimPageErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider provider.Provider
		want     []string
	}{
		{
			name:     "no provider",
			provider: nil,
			want:     []string{`data-state="PROVIDER_ERROR"`, provider.NoProviderMessage},
		},
		{
			name:     "dispute not found",
			provider: &logProvider{chainID: big.NewInt(100)},
			want:     []string{`data-state="ERROR"`, claim.TitleFetchFailure, "No result from: Dispute"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.provider, nil)
			resp, body := get(t, srv.URL+"/claim?"+url.PathEscape(query()))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status: %d", resp.StatusCode)
			}
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body misses %q:\n%s", w, body)
				}
			}
		})
	}
}

func TestClaimPageWithoutParameters(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	_, body := get(t, srv.URL+"/claim")
	if !strings.Contains(body, `data-state="LOADING"`) {
		t.Errorf("expected loading card, got:\n%s", body)
	}
}

func TestClaimJSON(t *testing.T) {
	srv := newTestServer(t, &logProvider{chainID: big.NewInt(100), logs: claimLogs(t)}, nil)

	resp, body := get(t, srv.URL+"/claim.json?"+url.PathEscape(query()))
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: %s", ct)
	}
	var v viewJSON
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("decode: %s", err)
	}
	if v.State != "LOADED" {
		t.Fatalf("state: %s", v.State)
	}
	if v.Claim == nil || v.Claim.Coverage != "1000" || v.Claim.EndTime != "2000000000" {
		t.Fatalf("claim: %+v", v.Claim)
	}
	if v.Claim.DocumentURL != "https://gw.example/ipfs/"+testDocument {
		t.Errorf("document url: %s", v.Claim.DocumentURL)
	}
	if v.Parameters == nil || v.Parameters.DisputeID != "42" {
		t.Errorf("parameters: %+v", v.Parameters)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	notReady := errors.New("no node")
	srv := newTestServer(t, nil, func(context.Context) (*Readiness, error) { return nil, notReady })

	resp, _ := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz: %d", resp.StatusCode)
	}
	resp, body := get(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("readyz: %d", resp.StatusCode)
	}
	if !strings.Contains(body, "no node") {
		t.Errorf("readyz body: %s", body)
	}

	srv = newTestServer(t, nil, func(context.Context) (*Readiness, error) {
		return &Readiness{Source: "network", ChainID: "100", Block: 31000000}, nil
	})
	resp, body = get(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("readyz: %d", resp.StatusCode)
	}
	for _, want := range []string{`"status":"ready"`, `"chainId":"100"`, `"block":31000000`, `"source":"network"`} {
		if !strings.Contains(body, want) {
			t.Errorf("readyz body misses %s: %s", want, body)
		}
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := NewHandler(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	handler := requestIDMiddleware(h.recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/claim", nil)
	req.Header.Set("X-Request-Id", "abc")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") != "abc" {
		t.Errorf("request id not propagated: %q", rec.Header().Get("X-Request-Id"))
	}
}

// chainService answers eth_chainId and eth_getLogs over a real RPC server.
type chainService struct{}

func (chainService) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(100))
}

func (chainService) GetLogs(map[string]interface{}) ([]types.Log, error) {
	return []types.Log{}, nil
}

func TestPerClaimConnectionsAreReleased(t *testing.T) {
	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName("eth", chainService{}); err != nil {
		t.Fatalf("register: %s", err)
	}
	node := httptest.NewServer(rpcServer.WebsocketHandler([]string{"*"}))
	defer node.Close()
	defer rpcServer.Stop()

	srv := newTestServer(t, nil, nil)
	wsURL := "ws" + strings.TrimPrefix(node.URL, "http")
	q := strings.TrimSuffix(query(), "}") + `,"arbitrableJsonRpcUrl":"` + wsURL + `"}`

	// warm up so lazily started runtime goroutines are counted
	get(t, srv.URL+"/claim.json?"+url.PathEscape(q))
	time.Sleep(100 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		_, body := get(t, srv.URL+"/claim.json?"+url.PathEscape(q))
		if !strings.Contains(body, "No result from: Dispute") {
			t.Fatalf("request %d did not reach the node: %s", i, body)
		}
	}

	deadline := time.Now().Add(3 * time.Second)
	for runtime.NumGoroutine() > baseline+5 {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines grew from %d to %d, connections are leaking", baseline, runtime.NumGoroutine())
		}
		time.Sleep(50 * time.Millisecond)
	}
}
