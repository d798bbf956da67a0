package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthReader fans every read out to all of its nodes and returns the first
// successful answer.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string, timeout time.Duration) *EthReader {
	ns := map[string]EthereumNode{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c, timeout)
	}
	return &EthReader{nodes: ns}
}

func NewEthReaderWithNodes(nodes ...EthereumNode) *EthReader {
	ns := map[string]EthereumNode{}
	for _, n := range nodes {
		ns[n.NodeName()] = n
	}
	return &EthReader{nodes: ns}
}

// NodeNames returns the node names in a stable order.
func (er *EthReader) NodeNames() []string {
	res := make([]string, 0, len(er.nodes))
	for name := range er.nodes {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Close closes every node that holds a connection.
func (er *EthReader) Close() error {
	errs := []error{}
	for _, name := range er.NodeNames() {
		if c, ok := er.nodes[name].(io.Closer); ok {
			errs = append(errs, wrapError(c.Close(), name))
		}
	}
	return errors.Join(errs...)
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type chainIDResponse struct {
	ChainID *big.Int
	Error   error
}

func (er *EthReader) ChainID(ctx context.Context) (*big.Int, error) {
	if len(er.nodes) == 0 {
		return nil, fmt.Errorf("no nodes configured")
	}
	resCh := make(chan chainIDResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			id, err := n.ChainID(ctx)
			resCh <- chainIDResponse{
				ChainID: id,
				Error:   wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.ChainID, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type getLogsResponse struct {
	Logs  []types.Log
	Error error
}

func (er *EthReader) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	if len(er.nodes) == 0 {
		return nil, fmt.Errorf("no nodes configured")
	}
	resCh := make(chan getLogsResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			logs, err := n.FilterLogs(ctx, q)
			resCh <- getLogsResponse{
				Logs:  logs,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Logs, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type getBlockResponse struct {
	Block uint64
	Error error
}

func (er *EthReader) CurrentBlock(ctx context.Context) (uint64, error) {
	if len(er.nodes) == 0 {
		return 0, fmt.Errorf("no nodes configured")
	}
	resCh := make(chan getBlockResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			block, err := n.CurrentBlock(ctx)
			resCh <- getBlockResponse{
				Block: block,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Block, nil
		}
		errs = append(errs, result.Error)
	}
	return 0, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}
