package daemon

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrjson/v3"
	"github.com/decred/dcrd/rpcclient/v7"

	"github.com/zentcash/zentwallet/keys"
)

// RPCClient is the default Client implementation. It is a thin adapter
// around rpcclient.Client's generic raw-request facility: the same
// dependency the wider ecosystem uses for talking to a node's JSON-RPC
// port, retargeted here at our node's own method set instead of a
// Decred full node's. Errors returned here are plain transport/decode
// errors; translating a transport failure into the build pipeline's
// DaemonOffline kind is the caller's job (components B and H), the same
// way lnwallet leaves ErrDoubleSpend/ErrNotMine as plain sentinel errors
// for its callers to classify.
type RPCClient struct {
	rpc *rpcclient.Client
}

// NewRPCClient wraps an already-connected rpcclient.Client.
func NewRPCClient(rpc *rpcclient.Client) *RPCClient {
	return &RPCClient{rpc: rpc}
}

var _ Client = (*RPCClient)(nil)

func (c *RPCClient) call(method string, params ...interface{}) (json.RawMessage, error) {
	raw := make([]json.RawMessage, len(params))
	for i, p := range params {
		enc, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("daemon: marshal params for %s: %w", method, err)
		}
		raw[i] = enc
	}

	resp, err := c.rpc.RawRequest(method, raw)
	if err != nil {
		var rpcErr *dcrjson.RPCError
		if errors.As(err, &rpcErr) {
			return nil, fmt.Errorf("daemon: %s: node returned error %d: %s", method, rpcErr.Code, rpcErr.Message)
		}
		return nil, fmt.Errorf("daemon: %s: %w", method, err)
	}
	return resp, nil
}

// NetworkBlockCount implements Client.
func (c *RPCClient) NetworkBlockCount() (uint64, error) {
	resp, err := c.call("getheight")
	if err != nil {
		return 0, err
	}

	var result struct {
		Height uint64 `json:"height"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return 0, fmt.Errorf("daemon: decode getheight response: %w", err)
	}
	return result.Height, nil
}

// NodeFee implements Client.
func (c *RPCClient) NodeFee() (uint64, string, error) {
	resp, err := c.call("feeinfo")
	if err != nil {
		return 0, "", err
	}

	var result struct {
		Amount  uint64 `json:"amount"`
		Address string `json:"address"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return 0, "", fmt.Errorf("daemon: decode feeinfo response: %w", err)
	}
	return result.Amount, result.Address, nil
}

// GetRandomOutsByAmounts implements Client.
func (c *RPCClient) GetRandomOutsByAmounts(amounts []uint64, count uint64) (bool, []AmountOuts, error) {
	resp, err := c.call("get_random_outs", struct {
		Amounts   []uint64 `json:"amounts"`
		OutsCount uint64   `json:"outs_count"`
	}{Amounts: amounts, OutsCount: count})
	if err != nil {
		return false, nil, err
	}

	var result struct {
		Status string `json:"status"`
		Outs   []struct {
			Amount uint64 `json:"amount"`
			Outs   []struct {
				GlobalAmountIndex uint64 `json:"global_amount_index"`
				OutKey            string `json:"out_key"`
			} `json:"outs"`
		} `json:"outs"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return false, nil, fmt.Errorf("daemon: decode get_random_outs response: %w", err)
	}

	if result.Status != "OK" {
		return false, nil, nil
	}

	perAmount := make([]AmountOuts, len(result.Outs))
	for i, group := range result.Outs {
		outs := make([]Out, len(group.Outs))
		for j, o := range group.Outs {
			pub, decodeErr := keys.PublicKeyFromHex(o.OutKey)
			if decodeErr != nil {
				return false, nil, fmt.Errorf("daemon: decode out key: %w", decodeErr)
			}
			outs[j] = Out{GlobalAmountIndex: o.GlobalAmountIndex, OutKey: pub}
		}
		perAmount[i] = AmountOuts{Amount: group.Amount, Outs: outs}
	}

	return true, perAmount, nil
}

// SendTransaction implements Client.
func (c *RPCClient) SendTransaction(raw []byte) (bool, bool, string, error) {
	resp, err := c.call("sendrawtransaction", struct {
		Hex string `json:"tx_as_hex"`
	}{Hex: hex.EncodeToString(raw)})
	if err != nil {
		return false, true, "", nil
	}

	var result struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return false, false, "", fmt.Errorf("daemon: decode sendrawtransaction response: %w", err)
	}

	if result.Status != "OK" {
		return false, false, result.Reason, nil
	}
	return true, false, "", nil
}
