// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import (
	"context"
	"fmt"
)

// Step is one cancellable step of an ordered load sequence.
type Step struct {

	// Name identifies the step, such as the URL it loads.
	Name string

	// Run does the work of the step.
	Run func(ctx context.Context) error
}

// StepError is the error of a failed [Step].
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RunSteps runs the given steps strictly in order, each starting only
// after the previous one succeeded. It stops at the first failure or
// when the context is done, returning a [*StepError].
func RunSteps(ctx context.Context, steps ...Step) error {
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: st.Name, Err: err}
		}
		if err := st.Run(ctx); err != nil {
			return &StepError{Step: st.Name, Err: err}
		}
	}
	return nil
}

// ScriptSteps returns one step per script URL, loading it with the given loader.
func ScriptSteps(ld ScriptLoader, urls ...string) []Step {
	steps := make([]Step, len(urls))
	for i, u := range urls {
		steps[i] = Step{Name: u, Run: func(ctx context.Context) error {
			return ld.LoadScript(ctx, u)
		}}
	}
	return steps
}
