package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidTaxID(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid identifiers for every registrant category", func(t *testing.T) {
		for _, taxID := range []string{
			"20100047218",
			"20131312955",
			"10000000014",
			"15000000016",
			"17000000019",
		} {
			require.True(t, ValidTaxID(taxID), "expected %s to be valid", taxID)
		}
	})

	t.Run("maps checksum remainders 10 and 11 to digits 0 and 1", func(t *testing.T) {
		require.True(t, ValidTaxID("20000000010"))
		require.True(t, ValidTaxID("10000000031"))
	})

	t.Run("rejects a wrong check digit", func(t *testing.T) {
		require.False(t, ValidTaxID("20100047219"))
		require.False(t, ValidTaxID("20100047210"))
	})

	t.Run("rejects unknown registrant prefixes", func(t *testing.T) {
		require.False(t, ValidTaxID("30000000001"))
		require.False(t, ValidTaxID("11000000017"))
		require.False(t, ValidTaxID("00000000000"))
	})

	t.Run("rejects wrong lengths and non-digits", func(t *testing.T) {
		require.False(t, ValidTaxID(""))
		require.False(t, ValidTaxID("2010004721"))
		require.False(t, ValidTaxID("201000472188"))
		require.False(t, ValidTaxID("20100O47218"))
		require.False(t, ValidTaxID("20100-47218"))
	})
}
