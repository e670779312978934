package fundraiser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidBeneficiary is returned when the beneficiary is not a 20-byte
// hex address. The contract parameter is an address, so there is no way to
// send a free-form value.
var ErrInvalidBeneficiary = errors.New("beneficiary must be a 0x-prefixed 20-byte hex address")

// Draft is the five-field form content. Only the beneficiary is checked;
// the other fields are sent as entered, empty included.
type Draft struct {
	Name        string
	Website     string
	ImageURL    string
	Description string
	Beneficiary string
}

// BeneficiaryAddress parses the beneficiary field.
func (d Draft) BeneficiaryAddress() (common.Address, error) {
	b := strings.TrimSpace(d.Beneficiary)
	if !common.IsHexAddress(b) {
		if b == "" {
			return common.Address{}, fmt.Errorf("%w: empty", ErrInvalidBeneficiary)
		}
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidBeneficiary, b)
	}
	return common.HexToAddress(b), nil
}

// Args returns the createFundraiser arguments in contract order:
// name, website, image URL, description, beneficiary.
func (d Draft) Args() ([]interface{}, error) {
	beneficiary, err := d.BeneficiaryAddress()
	if err != nil {
		return nil, err
	}
	return []interface{}{d.Name, d.Website, d.ImageURL, d.Description, beneficiary}, nil
}
