package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWork(t *testing.T) {
	t.Parallel()

	above64, ok := new(big.Int).SetString("10000000000000000000000", 10)
	require.True(t, ok)

	tests := []struct {
		name    string
		input   string
		want    *big.Int
		wantErr string
	}{
		{name: "decimal", input: "12345", want: big.NewInt(12345)},
		{name: "hex", input: "0x1a2b", want: big.NewInt(0x1a2b)},
		{name: "uppercase hex", input: " 0XDEADBEEF ", want: big.NewInt(0xDEADBEEF)},
		{name: "larger than uint64", input: "10000000000000000000000", want: above64},
		{name: "zero", input: "0", want: big.NewInt(0)},
		{name: "invalid decimal", input: "12abc", wantErr: "invalid work value"},
		{name: "invalid hex", input: "0xGHIJK", wantErr: "invalid work value"},
		{name: "empty", input: "", wantErr: "invalid work value"},
		{name: "negative", input: "-5", wantErr: "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseWork(tt.input)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Zero(t, tt.want.Cmp(got), "got %s", got)
		})
	}
}

func TestBytesToMB(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(0), BytesToMB(1024))
	require.Equal(t, uint64(3), BytesToMB(3*bytesInMB+10))
}

func TestToLowerWithTrim(t *testing.T) {
	t.Parallel()

	require.Equal(t, "regtest", ToLowerWithTrim("  RegTest\n"))
}
