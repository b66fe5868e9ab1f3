// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// AddParamCases registers one case per sample inside a suite named name.
// Each case is named after its sample if the sample is a fmt.Stringer or a
// string, boolean or number, and after its index otherwise.
func AddParamCases[T any](rt *Runtime, name Name, samples []T, f func(ctx context.Context, o *Observer, sample T) error) {
	rt.Suite(name, func() {
		for i, s := range samples {
			s := s
			rt.AddCase(NewName(sampleLabel(i, s)), func(ctx context.Context, o *Observer) error {
				return f(ctx, o, s)
			})
		}
	})
}

func sampleLabel(index int, sample interface{}) string {
	label := ""
	switch v := sample.(type) {
	case fmt.Stringer:
		label = v.String()
	case string:
		label = v
	default:
		switch reflect.ValueOf(sample).Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			label = fmt.Sprint(v)
		}
	}
	if NewName(label).Empty() {
		return strconv.Itoa(index)
	}
	return label
}
