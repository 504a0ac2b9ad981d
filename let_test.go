// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/sx"
)

func TestLetValueChains(t *testing.T) {
	s := sx.LetValue(sx.Just(10), func(v int) sx.Sender[int] {
		return sx.Then(sx.Just(v+5), func(w int) int { return w * 2 })
	})
	got, ok := sx.SyncWait(s)
	if !ok || got != 30 {
		t.Fatalf("SyncWait = %d, %t, want 30, true", got, ok)
	}
}

func TestLetValueSkipsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	s := sx.LetValue(sx.JustError[int](boom), func(int) sx.Sender[int] {
		called = true
		return sx.Just(0)
	})
	r := &probeReceiver[int]{}
	s.Connect(r).Start()
	if called {
		t.Fatal("continuation ran on the error path")
	}
	if len(r.errs) != 1 || !errors.Is(r.errs[0], boom) {
		t.Fatalf("errs = %v, want [boom]", r.errs)
	}
}

func TestLetErrorRecovers(t *testing.T) {
	boom := errors.New("boom")
	s := sx.LetError(sx.JustError[int](boom), func(err error) sx.Sender[int] {
		if !errors.Is(err, boom) {
			return sx.JustError[int](errors.New("wrong error"))
		}
		return sx.Just(99)
	})
	got, ok := sx.SyncWait(s)
	if !ok || got != 99 {
		t.Fatalf("SyncWait = %d, %t, want 99, true", got, ok)
	}
}

func TestLetErrorSkipsOnValue(t *testing.T) {
	called := false
	s := sx.LetError(sx.Just(5), func(error) sx.Sender[int] {
		called = true
		return sx.Just(0)
	})
	got, ok := sx.SyncWait(s)
	if called {
		t.Fatal("recovery ran on the value path")
	}
	if !ok || got != 5 {
		t.Fatalf("SyncWait = %d, %t, want 5, true", got, ok)
	}
}

func TestLetStoppedRecovers(t *testing.T) {
	s := sx.LetStopped(sx.StoppedSender[int](), func() sx.Sender[int] {
		return sx.Just(7)
	})
	got, ok := sx.SyncWait(s)
	if !ok || got != 7 {
		t.Fatalf("SyncWait = %d, %t, want 7, true", got, ok)
	}
}

func TestLetStoppedSkipsOnValue(t *testing.T) {
	called := false
	s := sx.LetStopped(sx.Just(3), func() sx.Sender[int] {
		called = true
		return sx.Just(0)
	})
	got, ok := sx.SyncWait(s)
	if called {
		t.Fatal("continuation ran on the value path")
	}
	if !ok || got != 3 {
		t.Fatalf("SyncWait = %d, %t, want 3, true", got, ok)
	}
}

func TestLetValueEffectRunsPerStart(t *testing.T) {
	n := 0
	s := countSender(&n)
	if got, _ := sx.SyncWait(s); got != 1 {
		t.Fatalf("first run = %d, want 1", got)
	}
	if got, _ := sx.SyncWait(s); got != 2 {
		t.Fatalf("second run = %d, want 2", got)
	}
}
