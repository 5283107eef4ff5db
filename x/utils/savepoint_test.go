package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store"
	"github.com/iov-one/timevault/vaulttest"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := errors.ErrState.New("something went wrong")

	failing := func() timevault.Handler {
		return &vaulttest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: derr, DeliverErr: derr}
	}
	passing := func() timevault.Handler {
		return &vaulttest.Handler{WriteKey: nk, WriteValue: nv}
	}

	cases := map[string]struct {
		save    timevault.Decorator
		handler timevault.Handler
		check   bool
		wantErr bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled keeps writes on error": {
			save:    NewSavepoint(),
			handler: failing(),
			check:   true,
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back on error": {
			save:    NewSavepoint().OnCheck(),
			handler: failing(),
			check:   true,
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back on error": {
			save:    NewSavepoint().OnDeliver(),
			handler: failing(),
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation keeps both": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: failing(),
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: failing(),
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: passing(),
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			if err := kv.Set(ok, ov); err != nil {
				t.Fatalf("cannot set: %s", err)
			}

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}
			if hasErr := err != nil; hasErr != tc.wantErr {
				t.Fatalf("want error %v, got %+v", tc.wantErr, err)
			}

			for _, k := range tc.written {
				if has, _ := kv.Has(k); !has {
					t.Errorf("missing key %x", k)
				}
			}
			for _, k := range tc.missing {
				if has, _ := kv.Has(k); has {
					t.Errorf("unexpected key %x", k)
				}
			}
		})
	}
}

func TestAtomic(t *testing.T) {
	kv := store.MemStore()
	key := []byte("counter")

	err := Atomic(kv, func(db timevault.KVStore) error {
		if err := db.Set(key, []byte{1}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	if err == nil {
		t.Fatal("want error")
	}
	if has, _ := kv.Has(key); has {
		t.Fatal("failed function must not leave writes")
	}

	err = Atomic(kv, func(db timevault.KVStore) error {
		return db.Set(key, []byte{2})
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v, _ := kv.Get(key); len(v) != 1 || v[0] != 2 {
		t.Fatalf("unexpected value %x", v)
	}
}
