// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/sx"
)

func TestPipeAppliesStagesInOrder(t *testing.T) {
	s := sx.Pipe(sx.Just(2),
		sx.ThenStage(func(v int) int { return v + 1 }),
		sx.ThenStage(func(v int) int { return v * 10 }),
	)
	got, ok := sx.SyncWait(s)
	if !ok || got != 30 {
		t.Fatalf("SyncWait = %d, %t, want 30, true", got, ok)
	}
}

func TestPipeNoStages(t *testing.T) {
	got, ok := sx.SyncWait(sx.Pipe(sx.Just(5)))
	if !ok || got != 5 {
		t.Fatalf("SyncWait = %d, %t, want 5, true", got, ok)
	}
}

func TestPipeMixedStages(t *testing.T) {
	boom := errors.New("boom")
	sum := 0
	s := sx.Pipe(sx.JustError[int](boom),
		sx.UponErrorStage(func(error) int { return 3 }),
		sx.LetValueStage(func(v int) sx.Sender[int] { return sx.Just(v * 2) }),
		sx.BulkStage(2, func(_ int, v int) { sum += v }),
	)
	got, ok := sx.SyncWait(s)
	if !ok || got != 6 {
		t.Fatalf("SyncWait = %d, %t, want 6, true", got, ok)
	}
	if sum != 12 {
		t.Fatalf("bulk sum = %d, want 12", sum)
	}
}

func TestPipeSplitStage(t *testing.T) {
	n := 0
	s := sx.Pipe(countSender(&n), sx.SplitStage[int]())
	for range 2 {
		if got, _ := sx.SyncWait(s); got != 1 {
			t.Fatalf("consumer observed %d, want 1", got)
		}
	}
	if n != 1 {
		t.Fatalf("source ran %d times behind SplitStage, want 1", n)
	}
}

func TestPipeRepeatStage(t *testing.T) {
	n := 0
	effect := sx.Then(countSender(&n), func(int) struct{} { return struct{}{} })
	s := sx.Pipe(effect, sx.RepeatNStage(4))
	if _, ok := sx.SyncWait(s); !ok {
		t.Fatal("repetition did not complete with a value")
	}
	if n != 4 {
		t.Fatalf("effect ran %d times, want 4", n)
	}
}

func TestPipeRecoveryStages(t *testing.T) {
	boom := errors.New("boom")
	s := sx.Pipe(sx.JustError[int](boom),
		sx.LetErrorStage(func(err error) sx.Sender[int] {
			if !errors.Is(err, boom) {
				return sx.JustError[int](errors.New("wrong error"))
			}
			return sx.StoppedSender[int]()
		}),
		sx.LetStoppedStage(func() sx.Sender[int] { return sx.Just(5) }),
	)
	got, ok := sx.SyncWait(s)
	if !ok || got != 5 {
		t.Fatalf("SyncWait = %d, %t, want 5, true", got, ok)
	}
}

func TestPipeUponStoppedStage(t *testing.T) {
	s := sx.Pipe(sx.StoppedSender[int](),
		sx.UponStoppedStage(func() int { return 13 }),
	)
	got, ok := sx.SyncWait(s)
	if !ok || got != 13 {
		t.Fatalf("SyncWait = %d, %t, want 13, true", got, ok)
	}
}

func TestPipeTransferStage(t *testing.T) {
	skipRace(t)
	loop := sx.NewEventLoop()
	defer loop.Stop()

	s := sx.Pipe(sx.Just(7),
		sx.TransferStage[int](sx.EventLoopScheduler{Loop: loop}),
		sx.ThenStage(func(v int) int { return v + 1 }),
	)
	got, ok := sx.SyncWait(s)
	if !ok || got != 8 {
		t.Fatalf("SyncWait = %d, %t, want 8, true", got, ok)
	}
}

func TestPipeRepeatEffectUntilStage(t *testing.T) {
	n := 0
	effect := sx.Then(countSender(&n), func(int) struct{} { return struct{}{} })
	s := sx.Pipe(effect, sx.RepeatEffectUntilStage(func() bool { return n >= 3 }))
	if _, ok := sx.SyncWait(s); !ok {
		t.Fatal("repetition did not complete with a value")
	}
	if n != 3 {
		t.Fatalf("effect ran %d times, want 3", n)
	}
}

func TestPipeOnStage(t *testing.T) {
	skipRace(t)
	loop := sx.NewEventLoop()
	defer loop.Stop()

	s := sx.Pipe(sx.Just(21),
		sx.OnStage[int](sx.EventLoopScheduler{Loop: loop}),
		sx.ThenStage(func(v int) int { return v * 2 }),
	)
	got, ok := sx.SyncWait(s)
	if !ok || got != 42 {
		t.Fatalf("SyncWait = %d, %t, want 42, true", got, ok)
	}
}
