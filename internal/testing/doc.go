// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing implements the registry, observers and expectations that
// back the public go.chromium.org/cleantest/testing package.
package testing
