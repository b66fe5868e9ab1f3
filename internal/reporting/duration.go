// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"math"
	"strconv"
	"time"
)

var adaptiveUnits = []struct {
	unit   time.Duration
	suffix string
}{
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
	{time.Millisecond, "ms"},
	{time.Microsecond, "us"},
	{time.Nanosecond, "ns"},
}

// FormatDuration renders d in the largest unit in which it is at least 1,
// with about four significant digits: "1.234ms", "12.35s", "123.5us".
func FormatDuration(d time.Duration) string {
	for i, u := range adaptiveUnits {
		v := float64(d) / float64(u.unit)
		if v < 1 && i < len(adaptiveUnits)-1 {
			continue
		}
		digits := 1
		if v >= 1 {
			digits = int(math.Floor(math.Log10(v))) + 1
		}
		prec := 4 - digits
		if prec < 1 {
			prec = 1
		}
		return strconv.FormatFloat(v, 'f', prec, 64) + u.suffix
	}
	panic("unreachable")
}
