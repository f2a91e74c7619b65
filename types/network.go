package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ChainFamily classifies a network by address and transaction format.
type ChainFamily string

const (
	ChainEVM    ChainFamily = "account-based-evm"
	ChainSolana ChainFamily = "account-based-solana"
)

func (f ChainFamily) String() string {
	return string(f)
}

// NetworkID is the stable key of a supported network.
type NetworkID string

const (
	NetworkSolana   NetworkID = "solana"
	NetworkEthereum NetworkID = "ethereum"
	NetworkPolygon  NetworkID = "polygon"
	NetworkBase     NetworkID = "base"
	NetworkBNB      NetworkID = "bnb"
)

func (n NetworkID) String() string {
	return string(n)
}

// NetworkProfile is the static descriptor of one payable network.
type NetworkProfile struct {
	ID           NetworkID   `yaml:"id" json:"id" validate:"required"`
	DisplayName  string      `yaml:"displayName" json:"displayName" validate:"required"`
	NativeSymbol string      `yaml:"nativeSymbol" json:"nativeSymbol" validate:"required"`
	ChainFamily  ChainFamily `yaml:"chainFamily" json:"chainFamily" validate:"required,oneof=account-based-evm account-based-solana"`

	// ChainID is only meaningful for EVM networks.
	ChainID uint64 `yaml:"chainId,omitempty" json:"chainId,omitempty"`

	// DecimalPlaces is the exponent of the smallest unit (18 wei, 9 lamports).
	DecimalPlaces int32 `yaml:"decimalPlaces" json:"decimalPlaces" validate:"min=0,max=36"`

	RecipientAddress string `yaml:"recipientAddress" json:"recipientAddress" validate:"required"`

	// PriceFeedID is the upstream price-feed identifier (e.g. CoinGecko id).
	PriceFeedID string `yaml:"priceFeedId" json:"priceFeedId" validate:"required"`

	// FallbackPrice seeds the price cache before the first successful fetch.
	FallbackPrice string `yaml:"fallbackPrice" json:"fallbackPrice" validate:"required,numeric"`
}

func (p NetworkProfile) IsEVM() bool {
	return p.ChainFamily == ChainEVM
}

func (p NetworkProfile) IsSolana() bool {
	return p.ChainFamily == ChainSolana
}

// Fallback returns the documented fallback fiat price, or zero when the
// configured value does not parse.
func (p NetworkProfile) Fallback() decimal.Decimal {
	d, err := decimal.NewFromString(p.FallbackPrice)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NetworkTable is the ordered set of configured networks.
type NetworkTable []NetworkProfile

// Lookup returns the profile registered under id.
func (t NetworkTable) Lookup(id NetworkID) (NetworkProfile, bool) {
	for _, p := range t {
		if p.ID == id {
			return p, true
		}
	}
	return NetworkProfile{}, false
}

// IDs returns the network ids in table order.
func (t NetworkTable) IDs() []NetworkID {
	ids := make([]NetworkID, 0, len(t))
	for _, p := range t {
		ids = append(ids, p.ID)
	}
	return ids
}

// FeedIDs returns the distinct upstream price-feed identifiers.
func (t NetworkTable) FeedIDs() []string {
	seen := make(map[string]struct{}, len(t))
	ids := make([]string, 0, len(t))
	for _, p := range t {
		if _, ok := seen[p.PriceFeedID]; ok {
			continue
		}
		seen[p.PriceFeedID] = struct{}{}
		ids = append(ids, p.PriceFeedID)
	}
	return ids
}

// MatchNetwork picks the profile whose id appears in a free-form chain name
// such as "Solana Mainnet" or "base-mainnet". The first table entry is
// returned when nothing matches.
func (t NetworkTable) MatchNetwork(name string) (NetworkProfile, bool) {
	if len(t) == 0 {
		return NetworkProfile{}, false
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower != "" {
		for _, p := range t {
			if strings.Contains(lower, string(p.ID)) {
				return p, true
			}
		}
	}
	return t[0], false
}

const (
	evmRecipient    = "0x9AdEAC6aC3e4Ec2f5965F3E2BB65504B786bf095"
	solanaRecipient = "z6dRqgWm1oxwTzNNrSFBvT83VJaSjt4sDTyGEaLgiaD"
)

// DefaultNetworks is the production network table.
func DefaultNetworks() NetworkTable {
	return NetworkTable{
		{
			ID:               NetworkSolana,
			DisplayName:      "Solana",
			NativeSymbol:     "SOL",
			ChainFamily:      ChainSolana,
			DecimalPlaces:    9,
			RecipientAddress: solanaRecipient,
			PriceFeedID:      "solana",
			FallbackPrice:    "125",
		},
		{
			ID:               NetworkEthereum,
			DisplayName:      "Ethereum",
			NativeSymbol:     "ETH",
			ChainFamily:      ChainEVM,
			ChainID:          1,
			DecimalPlaces:    18,
			RecipientAddress: evmRecipient,
			PriceFeedID:      "ethereum",
			FallbackPrice:    "3000",
		},
		{
			ID:               NetworkPolygon,
			DisplayName:      "Polygon",
			NativeSymbol:     "POL",
			ChainFamily:      ChainEVM,
			ChainID:          137,
			DecimalPlaces:    18,
			RecipientAddress: evmRecipient,
			PriceFeedID:      "polygon-ecosystem-token",
			FallbackPrice:    "0.25",
		},
		{
			ID:               NetworkBase,
			DisplayName:      "Base",
			NativeSymbol:     "ETH",
			ChainFamily:      ChainEVM,
			ChainID:          8453,
			DecimalPlaces:    18,
			RecipientAddress: evmRecipient,
			PriceFeedID:      "ethereum",
			FallbackPrice:    "3000",
		},
		{
			ID:               NetworkBNB,
			DisplayName:      "BNB Chain",
			NativeSymbol:     "BNB",
			ChainFamily:      ChainEVM,
			ChainID:          56,
			DecimalPlaces:    18,
			RecipientAddress: evmRecipient,
			PriceFeedID:      "binancecoin",
			FallbackPrice:    "600",
		},
	}
}
