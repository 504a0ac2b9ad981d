// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import "errors"

// ErrStopped reports a completion on the stopped channel where an error
// value is required, e.g. the Left branch of [SyncWaitEither].
var ErrStopped = errors.New("sx: operation stopped")

// ErrRejected reports that an execution context refused a task because it
// has been told to stop. Schedule senders complete with ErrRejected on the
// error channel when the transition cannot be made.
var ErrRejected = errors.New("sx: task rejected by stopped context")

// IsStopped reports whether err is, or wraps, [ErrStopped].
func IsStopped(err error) bool {
	return errors.Is(err, ErrStopped)
}

// IsRejected reports whether err is, or wraps, [ErrRejected].
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
