package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/letterpay/pkg/types"
)

func TestTableResolver_PriceFor(t *testing.T) {
	r := NewTableResolver([]*types.PriceRule{
		{Match: "Love letter", Amount: 9000},
		{Match: "letter", Amount: 3000},
		{Match: "birthday", Amount: 1500},
		nil,
		{Match: "   ", Amount: 1},
	}, 5000)

	tests := []struct {
		purpose string
		want    int64
	}{
		{"love letter", 9000},
		{"  LOVE   Letter ", 9000},
		{"birthday letter", 3000}, // first substring rule wins
		{"Happy Birthday", 1500},
		{"condolences", 5000},
		{"", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.purpose, func(t *testing.T) {
			require.Equal(t, tt.want, r.PriceFor(tt.purpose))
			require.Equal(t, tt.want, r.PriceFor(tt.purpose), "resolver must be deterministic")
		})
	}
}
