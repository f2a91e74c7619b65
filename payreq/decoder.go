package payreq

import (
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/vitwit/boostpay/types"
)

// Request is a parsed payment-request string.
type Request struct {
	Scheme    string
	Recipient string

	// EVM only
	ChainID uint64
	Value   *big.Int
	Data    []byte

	// Solana only
	Amount  string
	Label   string
	Message string
	Memo    string
}

// Decode parses a string produced by Encode, the way a compliant wallet
// would.
func Decode(raw string) (*Request, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalid("malformed uri", err)
	}
	if u.Opaque == "" {
		return nil, invalid("missing target address", nil)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, invalid("malformed query", err)
	}

	switch u.Scheme {
	case SchemeSolana:
		return decodeSolana(u.Opaque, q)
	case SchemeEthereum:
		return decodeEVM(u.Opaque, q)
	default:
		return nil, invalid(fmt.Sprintf("unknown scheme %q", u.Scheme), nil)
	}
}

func decodeSolana(target string, q url.Values) (*Request, error) {
	if _, err := solana.PublicKeyFromBase58(target); err != nil {
		return nil, invalid("invalid solana recipient", err)
	}
	return &Request{
		Scheme:    SchemeSolana,
		Recipient: target,
		Amount:    q.Get("amount"),
		Label:     q.Get("label"),
		Message:   q.Get("message"),
		Memo:      q.Get("memo"),
	}, nil
}

func decodeEVM(target string, q url.Values) (*Request, error) {
	addr, chain, found := strings.Cut(target, "@")
	if !common.IsHexAddress(addr) {
		return nil, invalid("invalid evm recipient", nil)
	}
	req := &Request{Scheme: SchemeEthereum, Recipient: addr, ChainID: 1}
	if found {
		id, err := strconv.ParseUint(chain, 10, 64)
		if err != nil {
			return nil, invalid("invalid chain id", err)
		}
		req.ChainID = id
	}

	if v := q.Get("value"); v != "" {
		value, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, invalid(fmt.Sprintf("value %q is not a base-10 integer", v), nil)
		}
		req.Value = value
	}
	if d := q.Get("data"); d != "" {
		data, err := hexutil.Decode(d)
		if err != nil {
			return nil, invalid("invalid data field", err)
		}
		req.Data = data
	}
	return req, nil
}

func invalid(msg string, err error) error {
	return types.NewError(types.ErrInvalidPaymentRequest, msg, err)
}
