package rpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/coder"
)

type AccountInfo struct {
	Value *AccountInfoValue `json:"value"`
}

type AccountInfoValue struct {
	Data       []string `json:"data"`
	Owner      string   `json:"owner"`
	Lamports   uint64   `json:"lamports"`
	Executable bool     `json:"executable"`
}

type BlockhashResult struct {
	Value BlockhashValue `json:"value"`
}

type BlockhashValue struct {
	Blockhash string `json:"blockhash"`
}

type RequestBody struct {
	Jsonrpc string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type ResponseBody struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{},
	}
}

func (c *Client) call(ctx context.Context, method string, params interface{}) (*ResponseBody, error) {
	requestBody := RequestBody{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	reqBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var responseBody ResponseBody
	if err := json.Unmarshal(body, &responseBody); err != nil {
		return nil, err
	}

	if responseBody.Error != nil {
		return nil, errors.New(responseBody.Error.Message)
	}

	return &responseBody, nil
}

// SendTransaction broadcasts one signed transaction and returns the network
// signature. No retries here; a rejected transaction is the caller's report.
func (c *Client) SendTransaction(ctx context.Context, transaction *solana.Transaction) (solana.Signature, error) {
	msg, err := transaction.MarshalBinary()
	if err != nil {
		return solana.Signature{}, err
	}

	txBase64 := base64.StdEncoding.EncodeToString(msg)

	params := []interface{}{
		txBase64,
		map[string]interface{}{
			"encoding":            "base64",
			"skipPreflight":       true,
			"maxRetries":          1,
			"preflightCommitment": "confirmed",
		},
	}

	response, err := c.call(ctx, "sendTransaction", params)
	if err != nil {
		return solana.Signature{}, err
	}

	var signature string
	if err := json.Unmarshal(response.Result, &signature); err != nil {
		return solana.Signature{}, err
	}

	return solana.SignatureFromBase58(signature)
}

func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	params := []interface{}{
		map[string]interface{}{
			"commitment": "confirmed",
		},
	}

	response, err := c.call(ctx, "getLatestBlockhash", params)
	if err != nil {
		return solana.Hash{}, err
	}

	var result BlockhashResult
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return solana.Hash{}, err
	}

	return solana.HashFromBase58(result.Value.Blockhash)
}

func (c *Client) MinimumRentBalance(ctx context.Context, space uint64) (uint64, error) {
	response, err := c.call(ctx, "getMinimumBalanceForRentExemption", []interface{}{space})
	if err != nil {
		return 0, err
	}

	var lamports uint64
	if err := json.Unmarshal(response.Result, &lamports); err != nil {
		return 0, err
	}

	return lamports, nil
}

func (c *Client) GetAccountInfo(ctx context.Context, publicKey solana.PublicKey) (*AccountInfo, error) {
	reqParams := []interface{}{
		publicKey,
		map[string]interface{}{
			"encoding":   "base64",
			"commitment": "confirmed",
		},
	}

	response, err := c.call(ctx, "getAccountInfo", reqParams)
	if err != nil {
		return nil, err
	}

	var accountInfo AccountInfo
	if err := json.Unmarshal(response.Result, &accountInfo); err != nil {
		return nil, err
	}

	return &accountInfo, nil
}

// GetTokenAccount fetches and decodes one SPL token account record. A nil
// state with nil error means the account does not exist.
func (c *Client) GetTokenAccount(ctx context.Context, publicKey solana.PublicKey) (*coder.TokenAccountState, error) {
	resp, err := c.GetAccountInfo(ctx, publicKey)
	if err != nil {
		return nil, err
	}

	if resp == nil || resp.Value == nil {
		return nil, nil
	}

	data, err := coder.DecodeRPCData(resp.Value.Data)
	if err != nil {
		return nil, err
	}

	return coder.DecodeTokenAccount(data)
}
