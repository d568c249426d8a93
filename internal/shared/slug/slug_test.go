package slug_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/shared/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"Доска SUP Волна 10.6", "doska-sup-volna-10-6"},
		{"  Paddle  Board  ", "paddle-board"},
		{"Жёсткая доска", "zhyostkaya-doska"},
		{"Весло (карбон)", "veslo-karbon"},
		{"---", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, slug.Make(tc.in), "input %q", tc.in)
	}
}
