package utils

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want FlexString
	}{
		{`"42"`, "42"},
		{`42`, "42"},
		{`0`, ""},
		{`0.0`, ""},
		{`"0"`, "0"},
		{`null`, ""},
		{`false`, ""},
		{`true`, "true"},
		{`"  r-7 "`, "  r-7 "},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := qt.New(t)
			var got FlexString
			c.Assert(json.Unmarshal([]byte(tt.in), &got), qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var got FlexString
	qt.New(t).Assert(json.Unmarshal([]byte(`{"id":1}`), &got), qt.Not(qt.IsNil))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   string
		want Truthy
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"yes"`, true},
		{`""`, false},
		{`null`, false},
		{`{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := qt.New(t)
			var got Truthy
			c.Assert(json.Unmarshal([]byte(tt.in), &got), qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want FlexInt
	}{
		{`75001`, 75001},
		{`"75001"`, 75001},
		{`"  13008 Marseille"`, 13008},
		{`"abc"`, 0},
		{`""`, 0},
		{`null`, 0},
		{`12.9`, 12},
		{`"-42x"`, -42},
		{`true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := qt.New(t)
			var got FlexInt
			c.Assert(json.Unmarshal([]byte(tt.in), &got), qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestParseID(t *testing.T) {
	c := qt.New(t)

	c.Assert(ParseID("12"), qt.Equals, int64(12))
	c.Assert(ParseID(" 7 "), qt.Equals, int64(0))
	c.Assert(ParseID("+5"), qt.Equals, int64(0))
	c.Assert(ParseID(""), qt.Equals, int64(0))
	c.Assert(ParseID("abc"), qt.Equals, int64(0))
	c.Assert(ParseID("-3"), qt.Equals, int64(0))
}
