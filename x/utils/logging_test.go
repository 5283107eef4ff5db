package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/timevault"
	"github.com/iov-one/timevault/errors"
	"github.com/iov-one/timevault/store"
	"github.com/iov-one/timevault/vaulttest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := timevault.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()

	h := &vaulttest.Handler{
		DeliverResult: timevault.DeliverResult{Log: "all good"},
		CheckErr:      errors.ErrEmpty.New("nothing here"),
	}

	l := NewLogging()
	if _, err := l.Deliver(ctx, db, nil, h); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := l.Check(ctx, db, nil, h); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "all good") {
		t.Errorf("deliver result not logged: %s", out)
	}
	if !strings.Contains(out, "nothing here") {
		t.Errorf("check error not logged: %s", out)
	}
	if !strings.Contains(out, "duration") {
		t.Errorf("duration not logged: %s", out)
	}
}
