// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// Stage is a type-preserving sender adaptor, the right-hand operand of
// [Pipe]. Type-changing adaptors ([Then] across types, [LetValue] across
// types, [WhenAll2], ...) compose as plain nested calls instead.
type Stage[T any] func(Sender[T]) Sender[T]

// Pipe applies the stages to source left to right:
//
//	Pipe(src, a, b, c) == c(b(a(src)))
func Pipe[T any](source Sender[T], stages ...Stage[T]) Sender[T] {
	for _, stage := range stages {
		source = stage(source)
	}
	return source
}

// ThenStage is [Then] as a pipeable stage.
func ThenStage[T any](fn func(T) T) Stage[T] {
	return func(s Sender[T]) Sender[T] { return Then(s, fn) }
}

// LetValueStage is [LetValue] as a pipeable stage.
func LetValueStage[T any](fn func(T) Sender[T]) Stage[T] {
	return func(s Sender[T]) Sender[T] { return LetValue(s, fn) }
}

// LetErrorStage is [LetError] as a pipeable stage.
func LetErrorStage[T any](fn func(error) Sender[T]) Stage[T] {
	return func(s Sender[T]) Sender[T] { return LetError(s, fn) }
}

// LetStoppedStage is [LetStopped] as a pipeable stage.
func LetStoppedStage[T any](fn func() Sender[T]) Stage[T] {
	return func(s Sender[T]) Sender[T] { return LetStopped(s, fn) }
}

// UponErrorStage is [UponError] as a pipeable stage.
func UponErrorStage[T any](fn func(error) T) Stage[T] {
	return func(s Sender[T]) Sender[T] { return UponError(s, fn) }
}

// UponStoppedStage is [UponStopped] as a pipeable stage.
func UponStoppedStage[T any](fn func() T) Stage[T] {
	return func(s Sender[T]) Sender[T] { return UponStopped(s, fn) }
}

// BulkStage is [Bulk] as a pipeable stage.
func BulkStage[T any](shape int, fn func(int, T)) Stage[T] {
	return func(s Sender[T]) Sender[T] { return Bulk(s, shape, fn) }
}

// OnStage is [On] as a pipeable stage.
func OnStage[T any](sched Scheduler) Stage[T] {
	return func(s Sender[T]) Sender[T] { return On(sched, s) }
}

// TransferStage is [Transfer] as a pipeable stage.
func TransferStage[T any](sched Scheduler) Stage[T] {
	return func(s Sender[T]) Sender[T] { return Transfer(s, sched) }
}

// SplitStage is [Split] as a pipeable stage.
func SplitStage[T any]() Stage[T] {
	return func(s Sender[T]) Sender[T] { return Split(s) }
}

// RepeatNStage is [RepeatN] as a pipeable stage over effect senders.
func RepeatNStage(n int) Stage[struct{}] {
	return func(s Sender[struct{}]) Sender[struct{}] { return RepeatN(s, n) }
}

// RepeatEffectUntilStage is [RepeatEffectUntil] as a pipeable stage over
// effect senders.
func RepeatEffectUntilStage(pred func() bool) Stage[struct{}] {
	return func(s Sender[struct{}]) Sender[struct{}] { return RepeatEffectUntil(s, pred) }
}
