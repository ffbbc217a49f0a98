package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsToken(t *testing.T) {
	cases := []struct {
		token  string
		expect bool
	}{
		{token: "div", expect: true},
		{token: "DIV", expect: true},
		{token: "aria-hidden", expect: true},
		{token: "aria-something-custom", expect: true},
		{token: "role", expect: true},
		{token: "href", expect: true},
		{token: "http-equiv", expect: true},
		{token: "tabindex", expect: true},
		{token: "h6", expect: true},
		{token: "h7", expect: false},
		{token: "onclick", expect: true},
		{token: "onload", expect: true},
		{token: "once", expect: false},
		{token: "marquee", expect: false},
		{token: "image", expect: false},
		{token: "color", expect: false},
		{token: "manifest", expect: false},
		{token: "development", expect: false},
		{token: "myplanning", expect: false},
		{token: "", expect: false},
		{token: "aria", expect: false},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, IsToken(test.token), "token %q", test.token)
	}
}
