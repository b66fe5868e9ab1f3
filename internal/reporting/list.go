// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"encoding/json"
	"io"

	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/testing"
)

// listedCase is the JSON form of a registered case.
type listedCase struct {
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Enabled bool     `json:"enabled"`
}

// WriteCaseList writes all cases as a JSON array, marking whether f enables
// each one.
func WriteCaseList(w io.Writer, cases []*testing.Case, f *filter.NameFilter) error {
	list := make([]listedCase, 0, len(cases))
	for _, c := range cases {
		tags := c.Name.Tags()
		if tags == nil {
			tags = []string{}
		}
		list = append(list, listedCase{
			Name:    c.Name.Path(),
			Tags:    tags,
			Enabled: f.Enabled(c.Name),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
