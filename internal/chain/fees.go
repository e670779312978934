package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Fees holds EIP-1559 fee caps for a new transaction.
type Fees struct {
	TipCap *big.Int
	FeeCap *big.Int
	// BaseFee is nil on chains without EIP-1559.
	BaseFee *big.Int
}

// SuggestFees derives fee caps from the latest base fee and the node's tip
// suggestion. Nodes without eth_maxPriorityFeePerGas fall back to
// eth_gasPrice for the tip.
func (c *Client) SuggestFees(ctx context.Context) (*Fees, error) {
	gasPrice, err := c.GasPrice(ctx)
	if err != nil {
		return nil, err
	}

	tip := new(big.Int).Set(gasPrice)
	var suggested hexutil.Big
	if err := c.rpc.CallContext(ctx, &suggested, "eth_maxPriorityFeePerGas"); err == nil {
		tip = suggested.ToInt()
	}

	var head *struct {
		BaseFeePerGas *hexutil.Big `json:"baseFeePerGas"`
	}
	if err := c.rpc.CallContext(ctx, &head, "eth_getBlockByNumber", "latest", false); err != nil {
		return nil, err
	}

	fees := &Fees{TipCap: tip}
	if head != nil && head.BaseFeePerGas != nil {
		fees.BaseFee = head.BaseFeePerGas.ToInt()
		// 2*base + tip survives six consecutive full blocks.
		fees.FeeCap = new(big.Int).Add(new(big.Int).Mul(fees.BaseFee, big.NewInt(2)), tip)
	} else {
		fees.FeeCap = new(big.Int).Mul(gasPrice, big.NewInt(2))
	}
	if fees.FeeCap.Cmp(fees.TipCap) < 0 {
		fees.FeeCap = new(big.Int).Set(fees.TipCap)
	}
	return fees, nil
}
