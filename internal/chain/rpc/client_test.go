package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "govassets/pkg/domain"
	"govassets/pkg/platform/circuit"
)

var (
	keyA = id.MustParsePublicKey("So11111111111111111111111111111111111111112")
	keyB = id.MustParsePublicKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

type incoming struct {
	ID     int               `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers batches with a per-call handler and records traffic.
type fakeNode struct {
	mu       sync.Mutex
	posts    int
	calls    []incoming
	status   int
	reverse  bool
	rawReply string
	answer   func(call incoming) (any, *NodeError)
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.posts++
	status := f.status
	f.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if f.rawReply != "" {
		_, _ = io.WriteString(w, f.rawReply)
		return
	}
	var batch []incoming
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.calls = append(f.calls, batch...)
	f.mu.Unlock()

	replies := make([]map[string]any, 0, len(batch))
	for _, call := range batch {
		result, nodeErr := f.answer(call)
		reply := map[string]any{"jsonrpc": "2.0", "id": call.ID}
		if nodeErr != nil {
			reply["error"] = nodeErr
		} else {
			reply["result"] = result
		}
		replies = append(replies, reply)
	}
	if f.reverse {
		slices.Reverse(replies)
	}
	_ = json.NewEncoder(w).Encode(replies)
}

func account(data []byte, lamports uint64) map[string]any {
	return map[string]any{
		"lamports":   lamports,
		"owner":      keyB.String(),
		"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
		"executable": false,
		"rentEpoch":  uint64(18446744073709551615),
	}
}

type ClientSuite struct {
	suite.Suite
	node   *fakeNode
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.node = &fakeNode{}
	s.server = httptest.NewServer(s.node)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) newClient(opts ...Option) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithLogger(logger), WithRetries(0, 0)}, opts...)
	c, err := New(s.server.URL, opts...)
	s.Require().NoError(err)
	return c
}

func (s *ClientSuite) TestNew() {
	_, err := New("  ")
	s.Error(err)
}

func (s *ClientSuite) TestGetAccountInfoBatch() {
	s.node.reverse = true
	s.node.answer = func(call incoming) (any, *NodeError) {
		var key string
		_ = json.Unmarshal(call.Params[0], &key)
		if key == keyB.String() {
			return map[string]any{"context": map[string]any{"slot": 1}, "value": nil}, nil
		}
		return map[string]any{"context": map[string]any{"slot": 1}, "value": account([]byte{1, 2, 3}, 99)}, nil
	}
	c := s.newClient()

	infos, err := c.GetAccountInfoBatch(context.Background(), []id.PublicKey{keyA, keyB, keyA})
	s.Require().NoError(err)
	s.Require().Len(infos, 3)

	s.Run("replies are mapped back by id", func() {
		s.Require().NotNil(infos[0])
		s.Equal([]byte{1, 2, 3}, infos[0].Data)
		s.Equal(uint64(99), infos[0].Lamports)
		s.Equal(keyB, infos[0].Owner)
		s.Nil(infos[1], "missing account is nil")
		s.NotNil(infos[2])
	})

	s.Run("one HTTP request carries the batch", func() {
		s.Equal(1, s.node.posts)
		s.Len(s.node.calls, 3)
		s.Equal("getAccountInfo", s.node.calls[0].Method)
		s.JSONEq(`{"commitment":"confirmed","encoding":"base64"}`, string(s.node.calls[0].Params[1]))
	})
}

func (s *ClientSuite) TestBatchChunking() {
	s.node.answer = func(call incoming) (any, *NodeError) {
		return "ok", nil
	}
	c := s.newClient(WithBatchSize(2), WithConcurrency(1))

	reqs := make([]Request, 5)
	for i := range reqs {
		reqs[i] = NewRequest("getHealth")
	}
	resps, err := c.Batch(context.Background(), reqs)
	s.Require().NoError(err)
	s.Len(resps, 5)
	s.Equal(3, s.node.posts)
}

func (s *ClientSuite) TestGetProgramAccountsBatch() {
	owner := make([]byte, 165)
	s.node.answer = func(call incoming) (any, *NodeError) {
		return []map[string]any{{"pubkey": keyA.String(), "account": account(owner, 2039280)}}, nil
	}
	c := s.newClient()

	results, err := c.GetProgramAccountsBatch(context.Background(), keyB, [][]Filter{
		{DataSizeFilter(165), MemcmpFilter(32, keyA[:])},
		{DataSizeFilter(165), MemcmpFilter(32, keyB[:])},
	})
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Require().Len(results[0], 1)
	s.Equal(keyA, results[0][0].Pubkey)
	s.Len(results[0][0].Account.Data, 165)

	var cfg map[string]any
	s.Require().NoError(json.Unmarshal(s.node.calls[0].Params[1], &cfg))
	filters := cfg["filters"].([]any)
	s.Equal(float64(165), filters[0].(map[string]any)["dataSize"])
	memcmp := filters[1].(map[string]any)["memcmp"].(map[string]any)
	s.Equal(float64(32), memcmp["offset"])
	s.Equal(keyA.String(), memcmp["bytes"])
}

func (s *ClientSuite) TestGetMultipleAccountsChunksKeys() {
	s.node.answer = func(call incoming) (any, *NodeError) {
		var keys []string
		_ = json.Unmarshal(call.Params[0], &keys)
		values := make([]any, len(keys))
		for i := range keys {
			values[i] = account([]byte{byte(i)}, 1)
		}
		return map[string]any{"context": map[string]any{"slot": 1}, "value": values}, nil
	}
	c := s.newClient()

	keys := make([]id.PublicKey, 150)
	for i := range keys {
		keys[i] = keyA
	}
	infos, err := c.GetMultipleAccounts(context.Background(), keys)
	s.Require().NoError(err)
	s.Len(infos, 150)
	s.Len(s.node.calls, 2, "two getMultipleAccounts calls of 100 and 50")
	s.Equal([]byte{byte(49)}, infos[149].Data)
}

func (s *ClientSuite) TestNodeErrors() {
	s.node.answer = func(call incoming) (any, *NodeError) {
		return nil, &NodeError{Code: -32602, Message: "Invalid param"}
	}
	c := s.newClient()

	_, err := c.GetMinimumBalanceForRentExemption(context.Background(), 0)
	s.Require().Error(err)
	var rpcErr *Error
	s.Require().ErrorAs(err, &rpcErr)
	s.Equal(ErrorNodeError, rpcErr.Category)
	s.Equal(-32602, rpcErr.Code)
	s.False(rpcErr.Retryable)
}

func (s *ClientSuite) TestSingleErrorObjectFailsBatch() {
	s.node.rawReply = `{"jsonrpc":"2.0","error":{"code":-32600,"message":"batch too large"},"id":null}`
	c := s.newClient()

	err := c.Health(context.Background())
	s.Require().Error(err)
	s.Equal(ErrorNodeError, GetCategory(err))
}

func (s *ClientSuite) TestRateLimitedIsRetried() {
	s.node.status = http.StatusTooManyRequests
	c := s.newClient(WithRetries(2, 1))

	_, err := c.GetMinimumBalanceForRentExemption(context.Background(), 0)
	s.Require().Error(err)
	s.Equal(ErrorRateLimited, GetCategory(err))
	s.True(IsRetryable(err))
	s.Equal(3, s.node.posts, "initial attempt plus two retries")
}

func (s *ClientSuite) TestBreakerFailsFast() {
	s.node.status = http.StatusBadGateway
	c := s.newClient(WithBreaker(circuit.New("test", circuit.WithFailureThreshold(1))))

	err := c.Health(context.Background())
	s.Require().Error(err)
	s.Equal(ErrorOutage, GetCategory(err))

	err = c.Health(context.Background())
	s.Require().ErrorIs(err, ErrCircuitOpen)
	s.Equal(1, s.node.posts, "open breaker does not hit the endpoint")
}

func TestDecodeBatch(t *testing.T) {
	t.Run("rejects response count mismatch", func(t *testing.T) {
		_, err := decodeBatch("m", []byte(`[{"jsonrpc":"2.0","id":0,"result":1}]`), 2)
		require.Error(t, err)
		assert.Equal(t, ErrorBadData, GetCategory(err))
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := decodeBatch("m", []byte(`[{"id":0,"result":1},{"id":0,"result":2}]`), 2)
		require.Error(t, err)
	})

	t.Run("reorders by id", func(t *testing.T) {
		resps, err := decodeBatch("m", []byte(`[{"id":1,"result":"b"},{"id":0,"result":"a"}]`), 2)
		require.NoError(t, err)
		assert.JSONEq(t, `"a"`, string(resps[0].Result))
		assert.JSONEq(t, `"b"`, string(resps[1].Result))
	})
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsRetryable(NewError(ErrorTimeout, "m", "slow", nil)))
	assert.False(t, IsRetryable(NewError(ErrorBadData, "m", "bad", nil)))
	assert.Equal(t, ErrorTimeout, GetCategory(classifyTransport("m", context.DeadlineExceeded)))
	assert.Equal(t, ErrorInternal, GetCategory(assert.AnError))
}
