package deskcalc_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/zephyrtronium/deskcalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("x = 1; fn f(a) = a x; f(2)")
	f.Add("1/0; (5; 5)")
	f.Add("xs = [k=1,5 k!]; xs; del xs")
	f.Fuzz(func(t *testing.T, s string) {
		p := deskcalc.NewParser(deskcalc.NewSymbolTable(), deskcalc.ListOutput(io.Discard))
		p.Reset(strings.NewReader(s))
		// Every statement ends eventually, whether or not it fails.
		for i := 0; i <= len(s)+1; i++ {
			if err := p.Next(); errors.Is(err, io.EOF) {
				return
			}
		}
		t.Errorf("%q did not reach the end of input", s)
	})
}
