package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same ticker": {
			a:    NewCoin(5, "IOV"),
			b:    NewCoin(7, "IOV"),
			want: NewCoin(12, "IOV"),
		},
		"zero without ticker is neutral": {
			a:    Coin{},
			b:    NewCoin(7, "IOV"),
			want: NewCoin(7, "IOV"),
		},
		"different tickers": {
			a:       NewCoin(5, "IOV"),
			b:       NewCoin(7, "ETH"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxInt64, "IOV"),
			b:       NewCoin(1, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"negative overflow": {
			a:       NewCoin(math.MinInt64, "IOV"),
			b:       NewCoin(-1, "IOV"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	got, err := NewCoin(10, "IOV").Subtract(NewCoin(4, "IOV"))
	require.NoError(t, err)
	assert.Equal(t, NewCoin(6, "IOV"), got)

	_, err = NewCoin(10, "IOV").Subtract(NewCoin(math.MinInt64, "IOV"))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestCoinPredicates(t *testing.T) {
	pos, zero, neg := NewCoin(3, "IOV"), NewCoin(0, "IOV"), NewCoin(-3, "IOV")

	assert.True(t, pos.IsPositive())
	assert.False(t, zero.IsPositive())
	assert.True(t, zero.IsNonNegative())
	assert.False(t, neg.IsNonNegative())
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(&zero))
	assert.Equal(t, 1, pos.Compare(zero))
	assert.Equal(t, -1, neg.Compare(zero))
	assert.Equal(t, 0, zero.Compare(zero))
	assert.True(t, pos.IsGTE(zero))
	assert.False(t, pos.IsGTE(NewCoin(1, "ETH")))
}

func TestCoinValidate(t *testing.T) {
	assert.NoError(t, NewCoin(1, "IOV").Validate())
	assert.NoError(t, NewCoin(-1, "ABCD").Validate())
	assert.True(t, errors.ErrCurrency.Is(NewCoin(1, "iov").Validate()))
	assert.True(t, errors.ErrCurrency.Is(NewCoin(1, "").Validate()))
	assert.True(t, errors.ErrCurrency.Is(NewCoin(1, "TOOLONG").Validate()))
}

func TestCoinHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr bool
	}{
		"simple":        {raw: `"100 IOV"`, want: NewCoin(100, "IOV")},
		"no space":      {raw: `"7ETH"`, want: NewCoin(7, "ETH")},
		"negative":      {raw: `"-3 IOV"`, want: NewCoin(-3, "IOV")},
		"object":        {raw: `{"ticker": "IOV", "amount": 9}`, want: NewCoin(9, "IOV")},
		"fractional":    {raw: `"1.5 IOV"`, wantErr: true},
		"lower ticker":  {raw: `"1 iov"`, wantErr: true},
		"not a number":  {raw: `"many IOV"`, wantErr: true},
		"broken object": {raw: `{"amount": "x"}`, wantErr: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c Coin
			err := json.Unmarshal([]byte(tc.raw), &c)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c)
		})
	}

	assert.Equal(t, "100 IOV", NewCoin(100, "IOV").String())
	assert.Equal(t, "5", NewCoin(5, "").String())
}

func TestCoinProtobuf(t *testing.T) {
	c := NewCoinp(12345, "IOV")
	raw, err := proto.Marshal(c)
	require.NoError(t, err)

	var got Coin
	require.NoError(t, proto.Unmarshal(raw, &got))
	assert.Equal(t, *c, got)
}
