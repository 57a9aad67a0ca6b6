package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTablePlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf, []string{"Group", "Count"}, [][]string{{"skin", "4"}, {"deep_radial"}}, []columnAlignment{alignLeft, alignRight})

	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "deep_radial")
	assert.Contains(t, out, "+")
	assert.False(t, strings.Contains(out, "╭"))
}

func TestRenderTableWithoutHeaders(t *testing.T) {
	assert.Empty(t, renderTable(&bytes.Buffer{}, nil, nil, nil))
}
