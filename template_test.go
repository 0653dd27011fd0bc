package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTemplate_Value(t *testing.T) {
	ctx := ExpandContext{Value: 7.532}

	assert.Equal(t, "8", ExpandTemplate("_v", ctx))
	assert.Equal(t, "8", ExpandTemplate("_0v", ctx))
	assert.Equal(t, "7.5", ExpandTemplate("_1v", ctx))
	assert.Equal(t, "7.532", ExpandTemplate("_3v", ctx))
	assert.Equal(t, "7.53200", ExpandTemplate("_5v", ctx))
}

func TestExpandTemplate_TextAndName(t *testing.T) {
	ctx := ExpandContext{Value: 60, Text: "60%", Name: "Battery"}

	assert.Equal(t, "Battery: 60", ExpandTemplate("_n: _v", ctx))
	assert.Equal(t, "Battery reads 60%", ExpandTemplate("_n reads _t", ctx))
}

func TestExpandTemplate_Escape(t *testing.T) {
	ctx := ExpandContext{Value: 3}

	assert.Equal(t, "_", ExpandTemplate("__", ctx))
	// The escape consumes its pair before any token can attach to it,
	// so only the trailing underscore substitutes.
	assert.Equal(t, "_3", ExpandTemplate("___v", ctx))
	assert.Equal(t, "_3.000", ExpandTemplate("___3v", ctx))
	assert.Equal(t, "a_b", ExpandTemplate("a__b", ctx))
}

func TestExpandTemplate_Unmatched(t *testing.T) {
	ctx := ExpandContext{Value: 1}

	assert.Equal(t, "", ExpandTemplate("", ctx))
	assert.Equal(t, "_", ExpandTemplate("_", ctx))
	assert.Equal(t, "_x", ExpandTemplate("_x", ctx))
	assert.Equal(t, "_5", ExpandTemplate("_5", ctx))
	assert.Equal(t, "_2t", ExpandTemplate("_2t", ctx))
	assert.Equal(t, "plain text", ExpandTemplate("plain text", ctx))
}

func TestExpandTemplate_Idempotent(t *testing.T) {
	ctx := ExpandContext{Value: 7.532, Text: "7.5V", Name: "Cell"}

	templates := []string{"_n: _v", "_t (_2v)", "__raw", "", "no tokens", "_x _5"}
	for _, tpl := range templates {
		once := ExpandTemplate(tpl, ctx)
		assert.Equal(t, once, ExpandTemplate(once, ctx), "template %q", tpl)
	}
}

func TestExpandTemplate_NegativeValue(t *testing.T) {
	ctx := ExpandContext{Value: -12.345}

	assert.Equal(t, "-12", ExpandTemplate("_v", ctx))
	assert.Equal(t, "-12.35", ExpandTemplate("_2v", ctx))
}
