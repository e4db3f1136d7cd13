package backpressure

import (
	"strconv"
	"testing"
	"time"
)

func Test_Backpressure(t *testing.T) {
	testCases := []struct {
		name        string
		modifyFunc  func(g *Backpressure)
		expectation func(g *Backpressure) bool
	}{
		{
			name:        "case 0: zero value can proceed",
			modifyFunc:  func(g *Backpressure) {},
			expectation: func(g *Backpressure) bool { return g.CanProceed() },
		},
		{
			name:        "case 1: future NotBefore() blocks requests",
			modifyFunc:  func(g *Backpressure) { g.NotBefore(time.Now().Add(5 * time.Minute)) },
			expectation: func(g *Backpressure) bool { return !g.CanProceed() },
		},
		{
			name:        "case 2: expired NotBefore() unblocks requests",
			modifyFunc:  func(g *Backpressure) { g.NotBefore(time.Now().Add(-time.Second)) },
			expectation: func(g *Backpressure) bool { return g.CanProceed() },
		},
		{
			name:        "case 3: RetryAfter() reports the NotBefore() value",
			modifyFunc:  func(g *Backpressure) { g.NotBefore(time.Unix(1000, 0)) },
			expectation: func(g *Backpressure) bool { return g.RetryAfter().Equal(time.Unix(1000, 0)) },
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			g := &Backpressure{}
			tc.modifyFunc(g)

			if !tc.expectation(g) {
				t.Fatalf("expectation failed; g: %#v", g)
			}
		})
	}
}
