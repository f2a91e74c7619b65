package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/vitwit/boostpay/types"
)

// ValidateAddress checks if a string is a valid EVM address.
func ValidateAddress(address string) bool {
	return common.IsHexAddress(address)
}

// NormalizeAddress returns the EIP-55 checksummed form, or "" when address
// is not a valid EVM address.
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return ""
	}
	return common.HexToAddress(address).Hex()
}

// ValidateAddressForFamily validates address in the format of family.
func ValidateAddressForFamily(address string, family types.ChainFamily) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	switch family {
	case types.ChainEVM:
		if !common.IsHexAddress(address) {
			return fmt.Errorf("invalid EVM address %q", address)
		}
	case types.ChainSolana:
		if _, err := solana.PublicKeyFromBase58(address); err != nil {
			return fmt.Errorf("invalid Solana address %q: %w", address, err)
		}
	default:
		return fmt.Errorf("unsupported chain family %q", family)
	}
	return nil
}

// ValidateNetworks checks every recipient address in the table.
func ValidateNetworks(networks types.NetworkTable) error {
	for _, p := range networks {
		if err := ValidateAddressForFamily(p.RecipientAddress, p.ChainFamily); err != nil {
			return &types.BoostError{
				Code:    types.ErrConfigError,
				Message: fmt.Sprintf("network %q: recipient", p.ID),
				Err:     err,
			}
		}
	}
	return nil
}
