package rpc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	id "govassets/pkg/domain"
)

// Commitment is the bank state level queried.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// Request is one JSON-RPC 2.0 call inside a batch.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

// NewRequest builds a request; the batch assigns ids.
func NewRequest(method string, params ...any) Request {
	return Request{JSONRPC: "2.0", Method: method, Params: params}
}

// Response is one JSON-RPC 2.0 reply.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *NodeError      `json:"error,omitempty"`
}

// NodeError is the error object returned by the node.
type NodeError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AccountInfo is an account as returned with base64 encoding.
type AccountInfo struct {
	Lamports   uint64       `json:"lamports"`
	Owner      id.PublicKey `json:"owner"`
	Data       []byte       `json:"-"`
	Executable bool         `json:"executable"`
	RentEpoch  uint64       `json:"rentEpoch"`
}

type rawAccount struct {
	Lamports   uint64       `json:"lamports"`
	Owner      id.PublicKey `json:"owner"`
	Data       []string     `json:"data"`
	Executable bool         `json:"executable"`
	RentEpoch  uint64       `json:"rentEpoch"`
}

func (r *rawAccount) decode() (*AccountInfo, error) {
	info := &AccountInfo{
		Lamports:   r.Lamports,
		Owner:      r.Owner,
		Executable: r.Executable,
		RentEpoch:  r.RentEpoch,
	}
	if len(r.Data) == 0 {
		return info, nil
	}
	if len(r.Data) > 1 && r.Data[1] != "base64" {
		return nil, fmt.Errorf("unexpected account encoding %q", r.Data[1])
	}
	data, err := base64.StdEncoding.DecodeString(r.Data[0])
	if err != nil {
		return nil, fmt.Errorf("decode account data: %w", err)
	}
	info.Data = data
	return info, nil
}

// KeyedAccount pairs an account with its address.
type KeyedAccount struct {
	Pubkey  id.PublicKey
	Account *AccountInfo
}

type rawKeyedAccount struct {
	Pubkey  id.PublicKey `json:"pubkey"`
	Account rawAccount   `json:"account"`
}

// Filter narrows getProgramAccounts results.
type Filter struct {
	DataSize *uint64 `json:"dataSize,omitempty"`
	Memcmp   *Memcmp `json:"memcmp,omitempty"`
}

// Memcmp compares base58 bytes at an offset.
type Memcmp struct {
	Offset uint64 `json:"offset"`
	Bytes  string `json:"bytes"`
}

func DataSizeFilter(size uint64) Filter {
	return Filter{DataSize: &size}
}

func MemcmpFilter(offset uint64, b []byte) Filter {
	return Filter{Memcmp: &Memcmp{Offset: offset, Bytes: base58.Encode(b)}}
}

type accountConfig struct {
	Commitment Commitment `json:"commitment,omitempty"`
	Encoding   string     `json:"encoding,omitempty"`
	Filters    []Filter   `json:"filters,omitempty"`
}

type contextValue[T any] struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value T `json:"value"`
}
