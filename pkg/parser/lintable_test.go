package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specvital/typocheck/pkg/domain"
)

func TestLintableNode_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		node    Range
		ignored []Range
		want    []Range
	}{
		{
			name: "no ignored children",
			node: Range{Start: 10, End: 30},
			want: []Range{{Start: 10, End: 30}},
		},
		{
			name: "empty node",
			node: Range{Start: 10, End: 10},
			want: nil,
		},
		{
			name:    "ignored child in the middle",
			node:    Range{Start: 0, End: 20},
			ignored: []Range{{Start: 5, End: 10}},
			want:    []Range{{Start: 0, End: 5}, {Start: 10, End: 20}},
		},
		{
			name:    "ignored children touching both boundaries",
			node:    Range{Start: 0, End: 20},
			ignored: []Range{{Start: 0, End: 4}, {Start: 15, End: 20}},
			want:    []Range{{Start: 4, End: 15}},
		},
		{
			name:    "adjacent ignored children",
			node:    Range{Start: 0, End: 20},
			ignored: []Range{{Start: 5, End: 8}, {Start: 8, End: 12}},
			want:    []Range{{Start: 0, End: 5}, {Start: 12, End: 20}},
		},
		{
			name:    "overlapping ignored children",
			node:    Range{Start: 0, End: 30},
			ignored: []Range{{Start: 5, End: 15}, {Start: 10, End: 20}},
			want:    []Range{{Start: 0, End: 5}, {Start: 20, End: 30}},
		},
		{
			name:    "nested ignored children",
			node:    Range{Start: 0, End: 30},
			ignored: []Range{{Start: 5, End: 25}, {Start: 10, End: 12}},
			want:    []Range{{Start: 0, End: 5}, {Start: 25, End: 30}},
		},
		{
			name:    "unsorted ignored children",
			node:    Range{Start: 0, End: 30},
			ignored: []Range{{Start: 20, End: 22}, {Start: 5, End: 7}},
			want:    []Range{{Start: 0, End: 5}, {Start: 7, End: 20}, {Start: 22, End: 30}},
		},
		{
			name:    "ignored range outside of the node",
			node:    Range{Start: 10, End: 20},
			ignored: []Range{{Start: 0, End: 12}, {Start: 18, End: 40}, {Start: 50, End: 60}},
			want:    []Range{{Start: 12, End: 18}},
		},
		{
			name:    "whole node ignored",
			node:    Range{Start: 10, End: 20},
			ignored: []Range{{Start: 10, End: 20}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := LintableNode{Kind: "inline", Range: tt.node, Ignored: tt.ignored}
			got := node.Ranges()
			assert.Equal(t, tt.want, got)
			assertPartition(t, node, got)
		})
	}
}

// assertPartition checks that ranges cover the node minus the ignored bytes, each byte once.
func assertPartition(t *testing.T, node LintableNode, ranges []Range) {
	t.Helper()

	covered := make(map[int]int)
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			covered[i]++
		}
	}

	for i := node.Range.Start; i < node.Range.End; i++ {
		ignored := false
		for _, ig := range node.Ignored {
			if i >= ig.Start && i < ig.End {
				ignored = true
				break
			}
		}

		if ignored {
			assert.Zero(t, covered[i], "byte %d is ignored but covered", i)
		} else {
			assert.Equal(t, 1, covered[i], "byte %d must be covered exactly once", i)
		}
	}
}

func TestLintableNode_Strings(t *testing.T) {
	source := []byte("This is `code` and ![img](x.png) text")

	node := LintableNode{
		Kind:    "inline",
		Range:   Range{Start: 0, End: len(source)},
		Ignored: []Range{{Start: 8, End: 14}, {Start: 19, End: 32}},
	}

	assert.Equal(t, []domain.LintableString{
		{Kind: "inline", Offset: 0, Value: "This is "},
		{Kind: "inline", Offset: 14, Value: " and "},
		{Kind: "inline", Offset: 32, Value: " text"},
	}, node.Strings(source))
}

func TestLintableNode_Strings_DropsShortAndOutOfBounds(t *testing.T) {
	source := []byte("abc defg")

	short := LintableNode{Range: Range{Start: 0, End: 3}}
	assert.Empty(t, short.Strings(source))

	exact := LintableNode{Range: Range{Start: 0, End: 4}}
	assert.Equal(t, []domain.LintableString{{Offset: 0, Value: "abc "}}, exact.Strings(source))

	outside := LintableNode{Range: Range{Start: 4, End: 100}}
	assert.Empty(t, outside.Strings(source))
}

func TestRange(t *testing.T) {
	assert.Equal(t, 5, Range{Start: 5, End: 10}.Len())
	assert.Equal(t, 0, Range{Start: 10, End: 5}.Len())
	assert.True(t, Range{Start: 3, End: 3}.Empty())
	assert.True(t, Range{Start: 0, End: 5}.Intersects(Range{Start: 4, End: 8}))
	assert.False(t, Range{Start: 0, End: 5}.Intersects(Range{Start: 5, End: 8}))
}
