package claim

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/claimview/provider"
)

// ContractBinding queries one contract's event log through a provider.
type ContractBinding struct {
	address   common.Address
	abi       *abi.ABI
	provider  provider.Provider
	fromBlock *big.Int
}

// Event is a decoded log. Args holds every input of the event, indexed or
// not, in ABI order.
type Event struct {
	Name string
	Log  types.Log
	Args []interface{}
}

// Arg returns the i-th positional argument.
func (e Event) Arg(i int) (interface{}, error) {
	if i < 0 || i >= len(e.Args) {
		return nil, fmt.Errorf("%s event has no argument at position %d", e.Name, i)
	}
	return e.Args[i], nil
}

// Bind checks the address and the ABI and returns a binding. Errors are
// KindBindingFailure.
func Bind(address string, contractABI *abi.ABI, p provider.Provider) (*ContractBinding, error) {
	if p == nil {
		return nil, newError(KindBindingFailure, "no provider to bind %s to", address)
	}
	if !common.IsHexAddress(address) {
		return nil, newError(KindBindingFailure, "invalid address %q", address)
	}
	if contractABI == nil {
		contractABI = DefaultABI()
	}
	return &ContractBinding{
		address:  common.HexToAddress(address),
		abi:      contractABI,
		provider: p,
	}, nil
}

// WithFromBlock limits every query to blocks from n on. Queries start at
// genesis otherwise.
func (c *ContractBinding) WithFromBlock(n uint64) *ContractBinding {
	if n > 0 {
		c.fromBlock = new(big.Int).SetUint64(n)
	}
	return c
}

func (c *ContractBinding) Address() common.Address {
	return c.address
}

// FilterQuery builds a log filter the way positional event filters work:
// args line up with the event inputs, nil matches anything, and only
// indexed inputs may carry a value.
func (c *ContractBinding) FilterQuery(event string, args ...interface{}) (ethereum.FilterQuery, error) {
	ev, found := c.abi.Events[event]
	if !found {
		return ethereum.FilterQuery{}, fmt.Errorf("abi has no %s event", event)
	}
	if len(args) > len(ev.Inputs) {
		return ethereum.FilterQuery{}, fmt.Errorf("%s takes %d arguments, got %d", event, len(ev.Inputs), len(args))
	}

	rules := [][]interface{}{{ev.ID}}
	for i, input := range ev.Inputs {
		var arg interface{}
		if i < len(args) {
			arg = args[i]
		}
		if !input.Indexed {
			if arg != nil {
				return ethereum.FilterQuery{}, fmt.Errorf("%s argument %d (%s) is not indexed", event, i, input.Name)
			}
			continue
		}
		if arg == nil {
			rules = append(rules, nil)
		} else {
			rules = append(rules, []interface{}{arg})
		}
	}

	topics, err := abi.MakeTopics(rules...)
	if err != nil {
		return ethereum.FilterQuery{}, fmt.Errorf("couldn't build %s topics: %w", event, err)
	}
	return ethereum.FilterQuery{
		FromBlock: c.fromBlock,
		Addresses: []common.Address{c.address},
		Topics:    topics,
	}, nil
}

// QueryFilter returns the matching events in log order. Logs removed by a
// reorg are skipped.
func (c *ContractBinding) QueryFilter(ctx context.Context, event string, args ...interface{}) ([]Event, error) {
	q, err := c.FilterQuery(event, args...)
	if err != nil {
		return nil, err
	}
	logs, err := c.provider.FilterLogs(ctx, q)
	if err != nil {
		return nil, err
	}
	result := make([]Event, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		ev, err := c.UnpackLog(event, l)
		if err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, nil
}

// UnpackLog decodes l as an instance of event.
func (c *ContractBinding) UnpackLog(event string, l types.Log) (Event, error) {
	ev, found := c.abi.Events[event]
	if !found {
		return Event{}, fmt.Errorf("abi has no %s event", event)
	}
	if len(l.Topics) == 0 || l.Topics[0] != ev.ID {
		return Event{}, fmt.Errorf("log %s:%d is not a %s event", l.TxHash.Hex(), l.Index, event)
	}

	nonIndexed, err := ev.Inputs.Unpack(l.Data)
	if err != nil {
		return Event{}, fmt.Errorf("couldn't unpack %s data: %w", event, err)
	}

	args := make([]interface{}, 0, len(ev.Inputs))
	topicIdx, dataIdx := 1, 0
	for _, input := range ev.Inputs {
		if !input.Indexed {
			if dataIdx >= len(nonIndexed) {
				return Event{}, fmt.Errorf("%s data is missing %s", event, input.Name)
			}
			args = append(args, nonIndexed[dataIdx])
			dataIdx++
			continue
		}
		if topicIdx >= len(l.Topics) {
			return Event{}, fmt.Errorf("%s log is missing topic for %s", event, input.Name)
		}
		out := map[string]interface{}{}
		if err := abi.ParseTopicsIntoMap(out, abi.Arguments{input}, l.Topics[topicIdx:topicIdx+1]); err != nil {
			return Event{}, fmt.Errorf("couldn't parse %s topic %s: %w", event, input.Name, err)
		}
		args = append(args, out[input.Name])
		topicIdx++
	}
	return Event{Name: event, Log: l, Args: args}, nil
}
