package timevault_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cond := timevault.NewCondition("vault", "seq", []byte{0, 0, 0, 1})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "vault", ext)
	assert.Equal(t, "seq", typ)
	assert.Equal(t, []byte{0, 0, 0, 1}, data)
	assert.NoError(t, cond.Validate())
	assert.Equal(t, "vault/seq/00000001", cond.String())

	bad := timevault.Condition("no-slashes")
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(bad.Validate()))
}

func TestConditionAddressIsStable(t *testing.T) {
	a := timevault.NewCondition("sigs", "ed25519", []byte("key-a"))
	b := timevault.NewCondition("sigs", "ed25519", []byte("key-b"))

	assert.Len(t, a.Address(), timevault.AddressLength)
	assert.True(t, a.Address().Equals(a.Address()))
	assert.False(t, a.Address().Equals(b.Address()))
	assert.NoError(t, a.Address().Validate())
}

func TestAddressPrinting(t *testing.T) {
	addr := timevault.Address([]byte("ABCD123456LHB"))
	assert.Equal(t, fmt.Sprintf("%X", []byte(addr)), addr.String())
	assert.Equal(t, "(nil)", timevault.Address(nil).String())
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(timevault.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(timevault.Address([]byte("short")).Validate()))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := timevault.NewCondition("test", "seq", []byte("data")).Address()
	bech, err := addr.Bech32("tv")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr timevault.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, addr),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:test/seq/64617461"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bech),
			wantAddr: addr,
		},
		"empty": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid hex length": {
			json:    `"abcd"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"bech32:tv1invalid"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a timevault.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, a)
		})
	}
}

func TestAddressMarshalJSONRoundtrip(t *testing.T) {
	addr := timevault.NewCondition("test", "seq", []byte("x")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got timevault.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionJSON(t *testing.T) {
	cond := timevault.NewCondition("vault", "seq", []byte{0xAB})
	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"vault/seq/AB"`, string(raw))

	var got timevault.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, cond, got)
}
