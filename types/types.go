package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot is the last known fiat price per network.
type PriceSnapshot struct {
	Prices    map[NetworkID]decimal.Decimal `json:"prices"`
	FetchedAt time.Time                     `json:"fetchedAt"`

	// Stale is set while the snapshot is seeded from fallback constants or
	// the most recent refresh failed.
	Stale bool `json:"stale"`
}

// Price returns the snapshot price for id.
func (s PriceSnapshot) Price(id NetworkID) (decimal.Decimal, bool) {
	p, ok := s.Prices[id]
	return p, ok
}

// Clone returns a deep copy of the snapshot.
func (s PriceSnapshot) Clone() PriceSnapshot {
	prices := make(map[NetworkID]decimal.Decimal, len(s.Prices))
	for k, v := range s.Prices {
		prices[k] = v
	}
	return PriceSnapshot{Prices: prices, FetchedAt: s.FetchedAt, Stale: s.Stale}
}

// PaymentIntent is immutable once created. The native amount is derived
// from it by the conversion package, never stored.
type PaymentIntent struct {
	FiatAmount      decimal.Decimal `json:"fiatAmount"`
	Network         NetworkProfile  `json:"network"`
	PriceAtCreation decimal.Decimal `json:"priceAtCreation"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaymentResult describes a submitted transfer.
type PaymentResult struct {
	Network      NetworkID   `json:"network"`
	ChainFamily  ChainFamily `json:"chainFamily"`
	TxID         string      `json:"txId"`
	From         string      `json:"from"`
	Recipient    string      `json:"recipient"`
	NativeAmount string      `json:"nativeAmount"`
	SmallestUnit string      `json:"smallestUnit"`

	// AdvisorySigned reports whether the acknowledgement step completed.
	// Solana transfers carry the note as a memo, so it is always true there.
	AdvisorySigned    bool   `json:"advisorySigned"`
	AdvisorySignature string `json:"advisorySignature,omitempty"`
	AdvisoryAttempts  int    `json:"advisoryAttempts,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
}

// AdvisoryPolicy decides what happens when the wallet declines the
// advisory message signature.
type AdvisoryPolicy string

const (
	// AdvisoryTerminal accepts the first decline and records the
	// acknowledgement as unsigned.
	AdvisoryTerminal AdvisoryPolicy = "terminal"
	// AdvisoryRetry re-issues the signature request after a decline, up to
	// AdvisoryMaxAttempts (0 means no limit).
	AdvisoryRetry AdvisoryPolicy = "retry"
)

// Config holds global configuration for the payment engine.
type Config struct {
	Networks NetworkTable `yaml:"networks" json:"networks" validate:"required,min=1,dive"`

	PriceFeedURL    string        `yaml:"priceFeedUrl" json:"priceFeedUrl" validate:"omitempty,url"`
	FiatCurrency    string        `yaml:"fiatCurrency" json:"fiatCurrency" validate:"required"`
	RefreshInterval time.Duration `yaml:"refreshInterval" json:"refreshInterval" validate:"gt=0"`

	SolanaRPCURL string `yaml:"solanaRpcUrl" json:"solanaRpcUrl" validate:"required,url"`

	AdvisoryNote        string         `yaml:"advisoryNote" json:"advisoryNote"`
	AdvisoryPolicy      AdvisoryPolicy `yaml:"advisoryPolicy" json:"advisoryPolicy" validate:"oneof=terminal retry"`
	AdvisoryMaxAttempts int            `yaml:"advisoryMaxAttempts" json:"advisoryMaxAttempts" validate:"min=0"`
	AdvisoryRetryDelay  time.Duration  `yaml:"advisoryRetryDelay" json:"advisoryRetryDelay" validate:"min=0"`

	RequestLabel   string `yaml:"requestLabel" json:"requestLabel" validate:"required"`
	RequestMessage string `yaml:"requestMessage" json:"requestMessage" validate:"required"`

	DefaultTimeout time.Duration `yaml:"defaultTimeout" json:"defaultTimeout" validate:"min=0"`
	LogLevel       string        `yaml:"logLevel" json:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics  bool          `yaml:"enableMetrics" json:"enableMetrics"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Networks:            DefaultNetworks(),
		FiatCurrency:        "usd",
		RefreshInterval:     30 * time.Second,
		SolanaRPCURL:        "https://api.mainnet-beta.solana.com",
		AdvisoryNote:        "I confirm this boost payment.",
		AdvisoryPolicy:      AdvisoryTerminal,
		AdvisoryMaxAttempts: 3,
		AdvisoryRetryDelay:  time.Second,
		RequestLabel:        "Boost Payment",
		RequestMessage:      "Boost payment",
		DefaultTimeout:      30 * time.Second,
		LogLevel:            "info",
	}
}

// Validate checks the NetworkProfile invariants that struct tags cannot
// express.
func (c *Config) Validate() error {
	seen := make(map[NetworkID]struct{}, len(c.Networks))
	var evmRecipient, solRecipient string
	for _, p := range c.Networks {
		if _, dup := seen[p.ID]; dup {
			return configError("duplicate network %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if !p.Fallback().IsPositive() {
			return configError("network %q: fallbackPrice must be positive", p.ID)
		}

		switch p.ChainFamily {
		case ChainEVM:
			if p.ChainID == 0 {
				return configError("network %q: chainId is required for EVM networks", p.ID)
			}
			if evmRecipient == "" {
				evmRecipient = p.RecipientAddress
			} else if evmRecipient != p.RecipientAddress {
				return configError("network %q: all EVM networks must share one recipient", p.ID)
			}
		case ChainSolana:
			if solRecipient == "" {
				solRecipient = p.RecipientAddress
			} else if solRecipient != p.RecipientAddress {
				return configError("network %q: Solana networks must share one recipient", p.ID)
			}
		}
	}
	if evmRecipient != "" && evmRecipient == solRecipient {
		return configError("EVM and Solana recipients must differ")
	}
	return nil
}

func configError(format string, args ...any) error {
	return &BoostError{Code: ErrConfigError, Message: fmt.Sprintf(format, args...)}
}

// BoostError is the error type surfaced by every package.
type BoostError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *BoostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BoostError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrPriceFetchFailed        = "PRICE_FETCH_FAILED"
	ErrConversionFailed        = "CONVERSION_FAILED"
	ErrWalletUnavailable       = "WALLET_UNAVAILABLE"
	ErrUserRejected            = "USER_REJECTED"
	ErrNetworkSubmissionFailed = "NETWORK_SUBMISSION_FAILED"
	ErrUnsupportedNetwork      = "UNSUPPORTED_NETWORK"
	ErrSendInProgress          = "SEND_IN_PROGRESS"
	ErrConfigError             = "CONFIG_ERROR"
	ErrInvalidPaymentRequest   = "INVALID_PAYMENT_REQUEST"
	ErrPaymentCompleted        = "PAYMENT_COMPLETED"
)

// NewError builds a BoostError wrapping err.
func NewError(code, message string, err error) *BoostError {
	return &BoostError{Code: code, Message: message, Err: err}
}

// ErrorCode returns the code of the first BoostError in err's chain.
func ErrorCode(err error) string {
	var be *BoostError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Notice maps an error to a short message suitable for display.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	switch ErrorCode(err) {
	case ErrPriceFetchFailed:
		return "Live prices are unavailable; showing the last known rate."
	case ErrConversionFailed:
		return "The amount could not be converted. Please check the price."
	case ErrWalletUnavailable:
		return "Connect a wallet for this network to continue."
	case ErrUserRejected:
		return "The request was declined in your wallet."
	case ErrNetworkSubmissionFailed:
		return "The transaction could not be submitted. Please try again."
	case ErrUnsupportedNetwork:
		return "This network is not supported."
	case ErrSendInProgress:
		return "A payment is already in progress."
	case ErrInvalidPaymentRequest:
		return "The payment request could not be generated."
	case ErrPaymentCompleted:
		return "This payment is complete. Start a new one to pay again."
	default:
		return "Something went wrong. Please try again."
	}
}
