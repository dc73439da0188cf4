package types

// Token is a point-in-time snapshot of one fungible holding, shaped from a
// getAssetsByOwner record. Balance is kept in smallest units as returned by
// the node, not a live read.
type Token struct {
	ID        string `json:"id"`
	Mint      string `json:"mint"`
	Symbol    string `json:"symbol"`
	Balance   string `json:"balance"`
	Icon      string `json:"icon"`
	Decimals  uint8  `json:"decimals"`
	ProgramID string `json:"programId"`
}
