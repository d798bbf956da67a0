package networks

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NodeFromEnv returns the operator supplied node URL for n, if any.
func NodeFromEnv(n Network) (string, bool) {
	url := strings.TrimSpace(os.Getenv(n.GetNodeVariableName()))
	return url, url != ""
}

// DescribeChainID renders a chain id with its known network name, e.g.
// "gnosis (100)". Unknown ids render as the bare number.
func DescribeChainID(id *big.Int) string {
	if id == nil {
		return "unknown"
	}
	if !id.IsUint64() {
		return id.String()
	}
	n, err := GetNetworkByID(id.Uint64())
	if err != nil {
		return id.String()
	}
	return fmt.Sprintf("%s (%s)", n.GetName(), id.String())
}

// OtherClaimManager reports the ClaimManager deployment n is known for,
// when there is one and it is not address.
func OtherClaimManager(n Network, address common.Address) (common.Address, bool) {
	known := n.GetClaimManagerAddress()
	if known == "" || !common.IsHexAddress(known) {
		return common.Address{}, false
	}
	k := common.HexToAddress(known)
	return k, k != address
}
