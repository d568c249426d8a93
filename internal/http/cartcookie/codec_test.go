package cartcookie_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/http/cartcookie"
)

func TestCart_AddUpdateRemove(t *testing.T) {
	t.Parallel()

	c := cartcookie.NewCart()
	c.AddItem("v1", 2)
	c.AddItem("v1", 1)
	c.AddItem("v2", 1)
	c.AddItem("", 5)
	c.AddItem("v3", 0)

	require.Len(t, c.Items, 2)
	require.Equal(t, 3, c.Items[0].Qty, "same variant merges")

	c.UpdateQuantity("v2", 7)
	require.Equal(t, 7, c.Items[1].Qty)

	c.UpdateQuantity("v1", 0)
	require.Len(t, c.Items, 1, "qty 0 removes the line")

	c.RemoveItem("v2")
	require.Empty(t, c.Items)
	c.RemoveItem("missing") // no-op
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := cartcookie.New([]byte("secret"), "vs_cart", false)

	c := cartcookie.NewCart()
	c.AddItem("v1", 2)
	c.AddItem("v2", 1)

	enc, err := codec.Encode(c)
	require.NoError(t, err)

	got, err := codec.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, c.Items, got.Items)
}

func TestCodec_RejectsTampering(t *testing.T) {
	t.Parallel()

	codec := cartcookie.New([]byte("secret"), "vs_cart", false)
	c := cartcookie.NewCart()
	c.AddItem("v1", 1)

	enc, err := codec.Encode(c)
	require.NoError(t, err)

	parts := strings.SplitN(enc, ".", 2)
	forged := parts[0] + "x." + parts[1]
	_, err = codec.Decode(forged)
	require.ErrorIs(t, err, cartcookie.ErrInvalid)

	other := cartcookie.New([]byte("other-secret"), "vs_cart", false)
	_, err = other.Decode(enc)
	require.ErrorIs(t, err, cartcookie.ErrInvalid)

	_, err = codec.Decode("garbage")
	require.ErrorIs(t, err, cartcookie.ErrInvalid)
}
