package rpc

import (
	"context"
	"fmt"

	id "govassets/pkg/domain"
)

// multipleAccountsChunk is the node-side cap for getMultipleAccounts.
const multipleAccountsChunk = 100

// GetAccountInfoBatch fetches each key with its own getAccountInfo call in one
// batch. Missing accounts are nil.
func (c *Client) GetAccountInfoBatch(ctx context.Context, keys []id.PublicKey) ([]*AccountInfo, error) {
	const method = "getAccountInfo"
	reqs := make([]Request, len(keys))
	for i, k := range keys {
		reqs[i] = NewRequest(method, k.String(), accountConfig{Commitment: c.commitment, Encoding: "base64"})
	}
	resps, err := c.Batch(ctx, reqs)
	if err != nil {
		return nil, err
	}
	out := make([]*AccountInfo, len(keys))
	for i, resp := range resps {
		var res contextValue[*rawAccount]
		if err := decodeResult(method, resp, &res); err != nil {
			return nil, err
		}
		if res.Value == nil {
			continue
		}
		info, err := res.Value.decode()
		if err != nil {
			return nil, NewError(ErrorBadData, method, keys[i].String(), err)
		}
		out[i] = info
	}
	return out, nil
}

// GetMultipleAccounts fetches keys with getMultipleAccounts, chunked to the
// node limit. Missing accounts are nil; order matches keys.
func (c *Client) GetMultipleAccounts(ctx context.Context, keys []id.PublicKey) ([]*AccountInfo, error) {
	const method = "getMultipleAccounts"
	var reqs []Request
	for start := 0; start < len(keys); start += multipleAccountsChunk {
		end := min(start+multipleAccountsChunk, len(keys))
		encoded := make([]string, 0, end-start)
		for _, k := range keys[start:end] {
			encoded = append(encoded, k.String())
		}
		reqs = append(reqs, NewRequest(method, encoded, accountConfig{Commitment: c.commitment, Encoding: "base64"}))
	}
	resps, err := c.Batch(ctx, reqs)
	if err != nil {
		return nil, err
	}
	out := make([]*AccountInfo, 0, len(keys))
	for _, resp := range resps {
		var res contextValue[[]*rawAccount]
		if err := decodeResult(method, resp, &res); err != nil {
			return nil, err
		}
		for _, raw := range res.Value {
			if raw == nil {
				out = append(out, nil)
				continue
			}
			info, err := raw.decode()
			if err != nil {
				return nil, NewError(ErrorBadData, method, "account data", err)
			}
			out = append(out, info)
		}
	}
	if len(out) != len(keys) {
		return nil, NewError(ErrorBadData, method, fmt.Sprintf("got %d accounts for %d keys", len(out), len(keys)), nil)
	}
	return out, nil
}

// GetProgramAccountsBatch runs one getProgramAccounts call per filter set in a
// single batch and returns the matches per set.
func (c *Client) GetProgramAccountsBatch(ctx context.Context, program id.PublicKey, filterSets [][]Filter) ([][]KeyedAccount, error) {
	const method = "getProgramAccounts"
	reqs := make([]Request, len(filterSets))
	for i, filters := range filterSets {
		reqs[i] = NewRequest(method, program.String(), accountConfig{
			Commitment: c.commitment,
			Encoding:   "base64",
			Filters:    filters,
		})
	}
	resps, err := c.Batch(ctx, reqs)
	if err != nil {
		return nil, err
	}
	out := make([][]KeyedAccount, len(filterSets))
	for i, resp := range resps {
		var raws []rawKeyedAccount
		if err := decodeResult(method, resp, &raws); err != nil {
			return nil, err
		}
		accounts, err := decodeKeyed(method, raws)
		if err != nil {
			return nil, err
		}
		out[i] = accounts
	}
	return out, nil
}

// GetTokenAccountsByOwner lists token accounts of owner under tokenProgram.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner, tokenProgram id.PublicKey) ([]KeyedAccount, error) {
	const method = "getTokenAccountsByOwner"
	resps, err := c.Batch(ctx, []Request{NewRequest(method,
		owner.String(),
		map[string]string{"programId": tokenProgram.String()},
		accountConfig{Commitment: c.commitment, Encoding: "base64"},
	)})
	if err != nil {
		return nil, err
	}
	var res contextValue[[]rawKeyedAccount]
	if err := decodeResult(method, resps[0], &res); err != nil {
		return nil, err
	}
	return decodeKeyed(method, res.Value)
}

// GetMinimumBalanceForRentExemption returns the rent-exempt minimum for size bytes.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	const method = "getMinimumBalanceForRentExemption"
	resps, err := c.Batch(ctx, []Request{NewRequest(method, size, accountConfig{Commitment: c.commitment})})
	if err != nil {
		return 0, err
	}
	var lamports uint64
	if err := decodeResult(method, resps[0], &lamports); err != nil {
		return 0, err
	}
	return lamports, nil
}

// Health calls getHealth; any reply other than "ok" is an outage.
func (c *Client) Health(ctx context.Context) error {
	const method = "getHealth"
	resps, err := c.Batch(ctx, []Request{NewRequest(method)})
	if err != nil {
		return err
	}
	var status string
	if err := decodeResult(method, resps[0], &status); err != nil {
		return err
	}
	if status != "ok" {
		return NewError(ErrorOutage, method, "node reported "+status, nil)
	}
	return nil
}

func decodeKeyed(method string, raws []rawKeyedAccount) ([]KeyedAccount, error) {
	out := make([]KeyedAccount, 0, len(raws))
	for _, raw := range raws {
		info, err := raw.Account.decode()
		if err != nil {
			return nil, NewError(ErrorBadData, method, raw.Pubkey.String(), err)
		}
		out = append(out, KeyedAccount{Pubkey: raw.Pubkey, Account: info})
	}
	return out, nil
}
