// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

type evaluation struct {
	value bool
	text  string
}

func (e evaluation) Value() bool    { return e.value }
func (e evaluation) String() string { return e.text }

// Lift wraps an already computed value with its rendering.
func Lift(value bool, text string) Evaluation {
	return evaluation{value: value, text: text}
}

// Equal evaluates cmp.Equal(got, want, opts...). Like cmp.Equal, it panics
// on unexported fields unless opts handle them; inside a case body the
// panic aborts the case.
func Equal(got, want interface{}, opts ...cmp.Option) Evaluation {
	return evaluation{
		value: cmp.Equal(got, want, opts...),
		text:  fmt.Sprintf("(%v == %v)", got, want),
	}
}

// NotEqual is the negation of Equal.
func NotEqual(got, want interface{}, opts ...cmp.Option) Evaluation {
	return evaluation{
		value: !cmp.Equal(got, want, opts...),
		text:  fmt.Sprintf("(%v != %v)", got, want),
	}
}
