// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/testing"
)

const (
	treeContinuation = "│"
	treeItem         = "├"
	treeEnd          = "└"
)

type treeNode struct {
	names    []testing.Name // cases whose path ends at this node
	children map[string]*treeNode
}

func (n *treeNode) child(key string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[key]
	if !ok {
		c = &treeNode{}
		n.children[key] = c
	}
	return c
}

func (n *treeNode) sortedKeys() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// buildTree arranges the enabled cases by path component. Cases deeper than
// maxDepth contribute only their first maxDepth components.
func buildTree(cases []*testing.Case, f *filter.NameFilter, maxDepth int) *treeNode {
	root := &treeNode{}
	for _, c := range cases {
		if !f.Enabled(c.Name) {
			continue
		}
		comps := c.Name.Components()
		if len(comps) == 0 {
			continue
		}
		node := root
		depth := 0
		for _, comp := range comps[:len(comps)-1] {
			if depth >= maxDepth {
				break
			}
			node = node.child(comp)
			depth++
		}
		if depth < maxDepth {
			leaf := node.child(comps[len(comps)-1])
			leaf.names = append(leaf.names, c.Name)
		}
	}
	return root
}

// WriteTree renders the cases enabled by f as a tree of path components.
// depth limits the number of levels shown; 0 shows all.
func WriteTree(w io.Writer, cases []*testing.Case, f *filter.NameFilter, colors *ColorTable, depth int) error {
	maxDepth := depth
	if maxDepth <= 0 {
		maxDepth = int(^uint(0) >> 1)
	}
	var sb strings.Builder
	writeTreeLevel(&sb, buildTree(cases, f, maxDepth), "  ", colors)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeLevel(sb *strings.Builder, n *treeNode, indent string, colors *ColorTable) {
	keys := n.sortedKeys()
	for i, key := range keys {
		child := n.children[key]
		last := i == len(keys)-1

		for j, name := range child.names {
			marker := treeItem
			if last && j == len(child.names)-1 {
				marker = treeEnd
			}
			sb.WriteString(indent + marker + " " + colors.Paint(Good, key))
			if tags := name.Tags(); len(tags) > 0 {
				sb.WriteString("  {" + strings.Join(tags, ", ") + "}")
			}
			sb.WriteString("\n")
		}
		if len(child.names) == 0 {
			marker := treeItem
			if last {
				marker = treeEnd
			}
			sb.WriteString(indent + marker + " " + key + "\n")
		}

		cont := treeContinuation
		if last {
			cont = " "
		}
		writeTreeLevel(sb, child, indent+cont+"   ", colors)
	}
}
