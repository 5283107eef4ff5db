package vault

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/store"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"vault": [
			{
				"owner": "b1ca7e78f74423ae01da3b51e676934d9105f282",
				"beneficiary": "e28ae9a6eb94fc88b73eb7cbd6b87bf93eb9bef0",
				"unlock_time": "2030-01-01T00:00:00Z",
				"token": "IOV"
			},
			{
				"owner": "e28ae9a6eb94fc88b73eb7cbd6b87bf93eb9bef0",
				"beneficiary": "b1ca7e78f74423ae01da3b51e676934d9105f282",
				"unlock_time": 1900000000,
				"token": "ETH"
			}
		]
	}`
	var opts timevault.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	ctx := vaulttest.Ctx(time.Unix(1500000000, 0), 0)
	require.NoError(t, Initializer{}.FromGenesis(ctx, opts, db))

	first, err := NewReader(db, ID(1)).Config()
	require.NoError(t, err)
	assert.Equal(t, "IOV", first.Token)
	assert.Equal(t, vaulttest.ParseAddress(t, "b1ca7e78f74423ae01da3b51e676934d9105f282"), first.Owner)
	assert.Equal(t, timevault.AsUnixTime(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)), first.UnlockTime)

	second, err := NewReader(db, ID(2)).Config()
	require.NoError(t, err)
	assert.Equal(t, "ETH", second.Token)
	assert.Equal(t, timevault.UnixTime(1900000000), second.UnlockTime)

	deposited, err := NewReader(db, ID(2)).DepositedAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), deposited)
}

func TestGenesisRejectsInvalidVault(t *testing.T) {
	const genesis = `{
		"vault": [
			{
				"owner": "b1ca7e78f74423ae01da3b51e676934d9105f282",
				"beneficiary": "b1ca7e78f74423ae01da3b51e676934d9105f282",
				"unlock_time": 1900000000,
				"token": "IOV"
			}
		]
	}`
	var opts timevault.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	ctx := vaulttest.Ctx(time.Unix(1500000000, 0), 0)
	err := Initializer{}.FromGenesis(ctx, opts, store.MemStore())
	assert.True(t, ErrInvalidConfiguration.Is(err), "got %+v", err)
}

func TestGenesisWithoutVaults(t *testing.T) {
	db := store.MemStore()
	ctx := vaulttest.Ctx(time.Unix(1500000000, 0), 0)
	require.NoError(t, Initializer{}.FromGenesis(ctx, timevault.Options{}, db))

	ok, err := NewReader(db, ID(1)).Initialized()
	require.NoError(t, err)
	assert.False(t, ok)
}
