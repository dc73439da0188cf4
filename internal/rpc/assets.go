package rpc

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/iqbalbaharum/pool-delegator/internal/config"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

type AssetsResult struct {
	Total int        `json:"total"`
	Items []DasAsset `json:"items"`
}

type DasAsset struct {
	Id      string `json:"id"`
	Content struct {
		Metadata struct {
			Symbol string `json:"symbol"`
		} `json:"metadata"`
		Links struct {
			Image string `json:"image"`
		} `json:"links"`
	} `json:"content"`
	TokenInfo struct {
		Mint         string      `json:"mint"`
		Balance      json.Number `json:"balance"`
		Decimals     uint8       `json:"decimals"`
		TokenProgram string      `json:"token_program"`
	} `json:"token_info"`
}

func (c *Client) GetAssetsByOwner(ctx context.Context, owner string, page int, limit int) (*AssetsResult, error) {
	params := map[string]interface{}{
		"ownerAddress": owner,
		"page":         page,
		"limit":        limit,
		"displayOptions": map[string]interface{}{
			"showFungible": true,
		},
	}

	response, err := c.call(ctx, "getAssetsByOwner", params)
	if err != nil {
		return nil, err
	}

	var result AssetsResult
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// FetchInventory pages through the owner's fungible assets and shapes them
// into holding snapshots. Paging continues while pages come back full, up to
// the page cap. Dust balances are discarded.
func (c *Client) FetchInventory(ctx context.Context, owner string) ([]types.Token, error) {
	var tokens []types.Token

	for page := 1; page <= config.MAX_ASSET_PAGES; page++ {
		result, err := c.GetAssetsByOwner(ctx, owner, page, config.ASSET_PAGE_LIMIT)
		if err != nil {
			return nil, err
		}

		for _, item := range result.Items {
			balance := item.TokenInfo.Balance.String()
			if balance == "" {
				balance = "0"
			}

			parsed, ok := new(big.Int).SetString(balance, 10)
			if !ok || !parsed.IsUint64() || parsed.Uint64() <= config.DUST_THRESHOLD {
				continue
			}

			symbol := item.Content.Metadata.Symbol
			if symbol == "" {
				symbol = "Unknown"
			}

			tokens = append(tokens, types.Token{
				ID:        item.Id,
				Mint:      item.TokenInfo.Mint,
				Symbol:    symbol,
				Balance:   balance,
				Icon:      item.Content.Links.Image,
				Decimals:  item.TokenInfo.Decimals,
				ProgramID: item.TokenInfo.TokenProgram,
			})
		}

		if len(result.Items) < config.ASSET_PAGE_LIMIT {
			break
		}
	}

	return tokens, nil
}
