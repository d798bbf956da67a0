package claim

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	EventDispute       = "Dispute"
	EventCreatedClaim  = "CreatedClaim"
	EventCreatedPolicy = "CreatedPolicy"
)

//go:embed abi/ClaimManager.json
var claimManagerABI []byte

// DefaultABI returns the bundled ClaimManager ABI.
func DefaultABI() *abi.ABI {
	result, err := ParseABI(claimManagerABI)
	if err != nil {
		panic(fmt.Errorf("bundled ClaimManager ABI is broken: %w", err))
	}
	return result
}

// LoadABI reads an ABI from path. Both a bare ABI array and a build
// artifact with an "abi" field are accepted.
func LoadABI(path string) (*abi.ABI, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseABI(content)
}

func ParseABI(content []byte) (*abi.ABI, error) {
	content = bytes.TrimSpace(content)
	if len(content) > 0 && content[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(content, &artifact); err != nil {
			return nil, fmt.Errorf("couldn't read abi artifact: %w", err)
		}
		if len(artifact.ABI) == 0 {
			return nil, fmt.Errorf("abi artifact has no \"abi\" field")
		}
		content = artifact.ABI
	}
	result, err := abi.JSON(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	for _, name := range []string{EventDispute, EventCreatedClaim, EventCreatedPolicy} {
		if _, found := result.Events[name]; !found {
			return nil, fmt.Errorf("abi has no %s event", name)
		}
	}
	return &result, nil
}
