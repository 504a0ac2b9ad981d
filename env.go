// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// Env is the ambient capability bag carried alongside a receiver. It is an
// immutable value; the With* builders return extended copies. Capabilities
// left unset fall back to documented defaults at query time.
type Env struct {
	sched Scheduler
	stop  StopToken
}

// WithScheduler returns env extended with sched as the current scheduler.
func WithScheduler(env Env, sched Scheduler) Env {
	env.sched = sched
	return env
}

// WithStopToken returns env extended with tok as the stop token.
func WithStopToken(env Env, tok StopToken) Env {
	env.stop = tok
	return env
}

// GetEnv queries a receiver for its environment. Receivers that do not
// implement [EnvProvider] yield the empty environment.
func GetEnv(r any) Env {
	if p, ok := r.(EnvProvider); ok {
		return p.Env()
	}
	return Env{}
}

// GetScheduler queries an environment for its scheduler.
// Defaults to [InlineScheduler].
func GetScheduler(env Env) Scheduler {
	if env.sched == nil {
		return InlineScheduler{}
	}
	return env.sched
}

// GetStopToken queries an environment for its stop token.
// Defaults to the zero (never stoppable) token.
func GetStopToken(env Env) StopToken {
	return env.stop
}
