package isa_test

import (
	"testing"

	"github.com/DumpA1n/TinyAArch64/isa"
)

func TestParseCondition(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"eq", true}, {"EQ", true}, {"Ne", true}, {"nv", true}, {"xx", false}, {"", false},
	}
	for _, c := range cases {
		_, ok := isa.ParseCondition(c.in)
		if ok != c.ok {
			t.Errorf("ParseCondition(%q) ok=%v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestEvaluateTruthTable(t *testing.T) {
	all := isa.Flags{N: true, Z: true, C: true, V: true}
	none := isa.Flags{}

	cases := []struct {
		cond isa.BranchCondition
		f    isa.Flags
		want bool
	}{
		{isa.CondEQ, isa.Flags{Z: true}, true},
		{isa.CondEQ, isa.Flags{Z: false}, false},
		{isa.CondNE, isa.Flags{Z: false}, true},
		{isa.CondCS, isa.Flags{C: true}, true},
		{isa.CondCC, isa.Flags{C: false}, true},
		{isa.CondMI, isa.Flags{N: true}, true},
		{isa.CondPL, isa.Flags{N: false}, true},
		{isa.CondVS, isa.Flags{V: true}, true},
		{isa.CondVC, isa.Flags{V: false}, true},
		{isa.CondHI, isa.Flags{C: true, Z: false}, true},
		{isa.CondHI, isa.Flags{C: true, Z: true}, false},
		{isa.CondLS, isa.Flags{C: false}, true},
		{isa.CondLS, isa.Flags{C: true, Z: true}, true},
		{isa.CondGE, isa.Flags{N: true, V: true}, true},
		{isa.CondGE, isa.Flags{N: true, V: false}, false},
		{isa.CondLT, isa.Flags{N: true, V: false}, true},
		{isa.CondGT, isa.Flags{N: false, V: false, Z: false}, true},
		{isa.CondGT, isa.Flags{N: false, V: false, Z: true}, false},
		{isa.CondLE, isa.Flags{Z: true}, true},
		{isa.CondAL, none, true},
		{isa.CondAL, all, true},
		{isa.CondNV, all, false},
	}
	for _, c := range cases {
		got := c.cond.Evaluate(c.f)
		if got != c.want {
			t.Errorf("%s.Evaluate(%+v) = %v, want %v", c.cond, c.f, got, c.want)
		}
	}
}
