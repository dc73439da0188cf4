package types

import "encoding/json"

type PoolMint struct {
	Mint string `json:"mint"`
}

// Pool is one registry record. Only the identity and the two mint references
// are interpreted; the full record is retained in Raw so registry metadata
// passes through untouched.
type Pool struct {
	ID    string   `json:"id"`
	MintA PoolMint `json:"mintA"`
	MintB PoolMint `json:"mintB"`

	Raw json.RawMessage `json:"-"`
}

func (p *Pool) UnmarshalJSON(data []byte) error {
	type alias Pool
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Pool(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Pool) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type alias Pool
	return json.Marshal(alias(p))
}

// References reports whether the pool sits on the given mint, on either side.
func (p *Pool) References(mint string) bool {
	if mint == "" {
		return false
	}
	return p.MintA.Mint == mint || p.MintB.Mint == mint
}
