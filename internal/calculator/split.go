// Package calculator implements the pure computation core: dividing shared
// expenses among participants and deriving pairwise balances from shared
// expense and settlement history. Nothing in this package touches storage;
// every function is a stateless computation over the records it is given.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitType selects how a shared expense is divided among its participants.
type SplitType int

const (
	// SplitEqual divides the total evenly among all participants.
	// This is the only strategy implemented today; percentage and
	// fixed-amount splits would be added as further values without
	// changing the balance accumulation loop.
	SplitEqual SplitType = iota
)

// String returns the wire/CLI name of the split type.
func (t SplitType) String() string {
	switch t {
	case SplitEqual:
		return "equal"
	default:
		return fmt.Sprintf("SplitType(%d)", int(t))
	}
}

// ParseSplitType converts a CLI/user-supplied name into a SplitType.
func ParseSplitType(s string) (SplitType, error) {
	switch s {
	case "", "equal":
		return SplitEqual, nil
	default:
		return 0, fmt.Errorf("unknown split type %q", s)
	}
}

// Shares computes each participant's share of a shared expense total.
// The returned map has one entry per participant ID.
func Shares(total decimal.Decimal, participantIDs []string, splitType SplitType) (map[string]decimal.Decimal, error) {
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	switch splitType {
	case SplitEqual:
		share := total.Div(decimal.NewFromInt(int64(len(participantIDs))))
		shares := make(map[string]decimal.Decimal, len(participantIDs))
		for _, id := range participantIDs {
			shares[id] = share
		}
		return shares, nil
	default:
		return nil, fmt.Errorf("unsupported split type %v", splitType)
	}
}
