package reader

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

type stubNode struct {
	name    string
	chainID *big.Int
	logs    []types.Log
	block   uint64
	err     error
}

func (n *stubNode) NodeName() string { return n.name }
func (n *stubNode) NodeURL() string  { return "http://" + n.name }

func (n *stubNode) ChainID(context.Context) (*big.Int, error) {
	return n.chainID, n.err
}

func (n *stubNode) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return n.logs, n.err
}

func (n *stubNode) CurrentBlock(context.Context) (uint64, error) {
	return n.block, n.err
}

func TestEthReaderFirstSuccessWins(t *testing.T) {
	r := NewEthReaderWithNodes(
		&stubNode{name: "down", err: errors.New("connection refused")},
		&stubNode{name: "up", chainID: big.NewInt(100), logs: []types.Log{{Index: 3}}, block: 77},
	)
	ctx := context.Background()

	id, err := r.ChainID(ctx)
	if err != nil || id.Int64() != 100 {
		t.Errorf("ChainID: %v %v", id, err)
	}
	logs, err := r.FilterLogs(ctx, ethereum.FilterQuery{})
	if err != nil || len(logs) != 1 || logs[0].Index != 3 {
		t.Errorf("FilterLogs: %v %v", logs, err)
	}
	block, err := r.CurrentBlock(ctx)
	if err != nil || block != 77 {
		t.Errorf("CurrentBlock: %v %v", block, err)
	}
}

func TestEthReaderAllFail(t *testing.T) {
	cause := errors.New("rate limited")
	r := NewEthReaderWithNodes(
		&stubNode{name: "a", err: cause},
		&stubNode{name: "b", err: errors.New("timeout")},
	)
	_, err := r.ChainID(context.Background())
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected the node errors to be joined, got %s", err)
	}
	for _, name := range []string{"a: rate limited", "b: timeout"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error misses %q: %s", name, err)
		}
	}
}

func TestEthReaderWithoutNodes(t *testing.T) {
	r := NewEthReaderGeneric(nil, 0)
	if _, err := r.FilterLogs(context.Background(), ethereum.FilterQuery{}); err == nil {
		t.Errorf("expected an error without nodes")
	}
}

func TestNodeNamesSorted(t *testing.T) {
	r := NewEthReaderGeneric(map[string]string{
		"zeta":  "http://z",
		"alpha": "http://a",
	}, 0)
	names := r.NodeNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestOneNodeReaderDialFailureNamesTheNode(t *testing.T) {
	r := NewOneNodeReader("broken", "unsupported://nowhere", 0)
	_, err := r.ChainID(context.Background())
	if err == nil {
		t.Fatalf("expected a dial error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the node: %s", err)
	}
}

type closingNode struct {
	stubNode
	closed int
}

func (n *closingNode) Close() error {
	n.closed++
	return nil
}

func TestEthReaderCloseClosesNodes(t *testing.T) {
	a := &closingNode{stubNode: stubNode{name: "a"}}
	b := &stubNode{name: "b"}
	r := NewEthReaderWithNodes(a, b)
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if a.closed != 1 {
		t.Errorf("node a closed %d times", a.closed)
	}
}

func TestOneNodeReaderCloseBeforeDial(t *testing.T) {
	r := NewOneNodeReader("lazy", "http://localhost:8545", 0)
	if err := r.Close(); err != nil {
		t.Errorf("closing an undialed reader: %s", err)
	}
}
