package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// QueryModels runs an ABCI query against the application and decodes the
// returned result sets. A failed query returns an error of the kind
// registered with the response code.
func QueryModels(app abci.Application, path string, data []byte) ([]timevault.Model, error) {
	res := app.Query(abci.RequestQuery{
		Path: path,
		Data: data,
	})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var keys, values ResultSet
	if err := proto.Unmarshal(res.Key, &keys); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	if err := proto.Unmarshal(res.Value, &values); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return JoinResults(&keys, &values)
}
