package coin

import (
	"testing"

	"github.com/iov-one/timevault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinsAdd(t *testing.T) {
	var cs Coins

	cs, err := cs.Add(NewCoin(10, "IOV"))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin(3, "ETH"))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin(5, "IOV"))
	require.NoError(t, err)

	require.NoError(t, cs.Validate())
	require.Len(t, cs, 2)
	assert.Equal(t, "ETH", cs[0].Ticker)
	assert.Equal(t, NewCoin(15, "IOV"), cs.Balance("IOV"))
	assert.Equal(t, NewCoin(0, "BTC"), cs.Balance("BTC"))
	assert.True(t, cs.Contains(NewCoin(15, "IOV")))
	assert.False(t, cs.Contains(NewCoin(16, "IOV")))

	// subtracting everything removes the ticker
	cs, err = cs.Subtract(NewCoin(3, "ETH"))
	require.NoError(t, err)
	assert.Len(t, cs, 1)
	assert.True(t, cs.IsNonNegative())

	cs, err = cs.Subtract(NewCoin(20, "IOV"))
	require.NoError(t, err)
	assert.False(t, cs.IsNonNegative())
}

func TestCoinsAddDoesNotModifyReceiver(t *testing.T) {
	orig := Coins{NewCoinp(1, "IOV")}
	res, err := orig.Add(NewCoin(4, "IOV"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), orig[0].Amount)
	assert.Equal(t, int64(5), res[0].Amount)
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":      {coins: nil},
		"sorted":     {coins: Coins{NewCoinp(1, "ABC"), NewCoinp(2, "XYZ")}},
		"unsorted":   {coins: Coins{NewCoinp(1, "XYZ"), NewCoinp(2, "ABC")}, wantErr: errors.ErrCurrency},
		"duplicated": {coins: Coins{NewCoinp(1, "ABC"), NewCoinp(2, "ABC")}, wantErr: errors.ErrCurrency},
		"zero":       {coins: Coins{NewCoinp(0, "ABC")}, wantErr: errors.ErrAmount},
		"bad ticker": {coins: Coins{NewCoinp(1, "abc")}, wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestCoinsEquals(t *testing.T) {
	a := Coins{NewCoinp(1, "ABC")}
	assert.True(t, a.Equals(a.Clone()))
	assert.False(t, a.Equals(Coins{NewCoinp(2, "ABC")}))
	assert.False(t, a.Equals(nil))
}
