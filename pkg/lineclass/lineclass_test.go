package lineclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/lineclass"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want lineclass.Kind
	}{
		{"# Title", lineclass.Heading},
		{"### Deep heading", lineclass.Heading},
		{"#NoSpace", lineclass.Text},
		{"#!/bin/bash", lineclass.Text},
		{"- item", lineclass.ListItem},
		{"  * nested", lineclass.ListItem},
		{"+ plus", lineclass.ListItem},
		{"-no space", lineclass.Text},
		{"* * *", lineclass.Text},
		{"- - -", lineclass.Text},
		{"***", lineclass.Text},
		{"```", lineclass.Fence},
		{"```go", lineclass.Fence},
		{"``` js title", lineclass.Text},
		{"```go run main.go``` is how", lineclass.Text},
		{"```c++", lineclass.Text},
		{"plain paragraph", lineclass.Text},
		{"", lineclass.Text},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lineclass.Classify(tt.line))
		})
	}
}

func TestParseHeading(t *testing.T) {
	t.Parallel()

	level, text, ok := lineclass.ParseHeading("##   Section Two ")
	require.True(t, ok)
	assert.Equal(t, 2, level)
	assert.Equal(t, "Section Two ", text)

	_, _, ok = lineclass.ParseHeading("#")
	assert.False(t, ok)
}

func TestParseListItem(t *testing.T) {
	t.Parallel()

	item, ok := lineclass.ParseListItem("     * deep item")
	require.True(t, ok)
	assert.Equal(t, byte('*'), item.Marker)
	assert.Equal(t, "deep item", item.Text)
	assert.Equal(t, 2, item.IndentLevel())

	item, ok = lineclass.ParseListItem("- top")
	require.True(t, ok)
	assert.Equal(t, 0, item.IndentLevel())
}

func TestFenceLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", lineclass.FenceLanguage("```"))
	assert.Equal(t, "go", lineclass.FenceLanguage("```go"))
	assert.Equal(t, "go_1", lineclass.FenceLanguage("```go_1"))
	assert.Equal(t, "", lineclass.FenceLanguage("``` js {linenos}"))
	assert.Equal(t, "", lineclass.FenceLanguage("```go run main.go``` is how"))
	assert.Equal(t, "", lineclass.FenceLanguage("text"))
}

func TestLinks(t *testing.T) {
	t.Parallel()

	links := lineclass.Links("see [one](http://a) and [two](b.md) here")
	require.Len(t, links, 2)
	assert.Equal(t, lineclass.Link{Text: "one", URL: "http://a", Column: 5}, links[0])
	assert.Equal(t, lineclass.Link{Text: "two", URL: "b.md", Column: 25}, links[1])

	assert.Nil(t, lineclass.Links("no links [here] (either)"))
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", ""}, lineclass.SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{""}, lineclass.SplitLines(""))
}

func TestTableFirstMatchWins(t *testing.T) {
	t.Parallel()

	table := lineclass.Table[string]{
		lineclass.Pattern("first", `a`),
		lineclass.Pattern("second", `ab`),
	}

	tag, ok := table.First("ab")
	require.True(t, ok)
	assert.Equal(t, "first", tag)

	_, ok = table.First("zzz")
	assert.False(t, ok)

	assert.Equal(t, []string{"first", "second"}, table.Tags())
}
