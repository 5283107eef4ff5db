package server

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store"
)

// ValidateGenesis runs the initializer against every given genesis file
// and returns the first failure.
func ValidateGenesis(ini timevault.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini timevault.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var genesis struct {
		ChainID     string            `json:"chain_id"`
		GenesisTime time.Time         `json:"genesis_time"`
		State       timevault.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if !timevault.IsValidChainID(genesis.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", genesis.ChainID)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	ctx := timevault.WithChainID(context.Background(), genesis.ChainID)
	ctx = timevault.WithHeight(ctx, 0)
	ctx = timevault.WithBlockTime(ctx, genesis.GenesisTime)
	if err := ini.FromGenesis(ctx, genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
