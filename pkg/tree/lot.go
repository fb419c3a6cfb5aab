package tree

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Lot is the typed view of a lot/transfer payload.
type Lot struct {
	Name              string  `mapstructure:"name"`
	AmountTransferred float64 `mapstructure:"amount_transferred"`
	LotCode           string  `mapstructure:"lot_code"`
}

// Lot decodes the node payload into a [Lot]. Unknown payload keys are ignored
// and numeric strings are accepted for amounts.
func (n *Node) Lot() (Lot, error) {
	if n == nil {
		return Lot{}, nil
	}
	lot := Lot{Name: n.Name}
	if len(n.Payload) == 0 {
		return lot, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &lot,
	})
	if err != nil {
		return lot, err
	}
	if err := dec.Decode(map[string]any(n.Payload)); err != nil {
		return lot, fmt.Errorf("decode lot %q: %w", n.Name, err)
	}
	if lot.Name == "" {
		lot.Name = n.Name
	}
	return lot, nil
}
