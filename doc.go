/*
Package timevault defines interfaces used throughout the app, such as:
storage, transactions, handlers, authentication conditions and time.

The vault logic itself lives in x/vault. Everything around it (the stores it
persists to, the way a caller proves its identity, the clock it reads and the
service that moves value) is declared here as a small interface so that it can
be replaced in tests or by another host.

We pass request scoped information through context.Context between the app,
middleware and handlers. To do so, this package defines some common keys to
store info, such as block height, chain id, block time and logger. Each
extension, such as sigs, may add its own keys to enrich the context with
specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package timevault
