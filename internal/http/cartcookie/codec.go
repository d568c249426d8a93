package cartcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid cart cookie")

const maxItems = 50

// Cart is the guest cart carried in a signed cookie until login/checkout.
type Cart struct {
	Items []Item `json:"items"`
}

type Item struct {
	VariantID string `json:"v"`
	Qty       int    `json:"q"`
}

func NewCart() *Cart { return &Cart{} }

func (c *Cart) AddItem(variantID string, qty int) {
	if variantID == "" || qty < 1 {
		return
	}
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items[i].Qty += qty
			return
		}
	}
	if len(c.Items) >= maxItems {
		return
	}
	c.Items = append(c.Items, Item{VariantID: variantID, Qty: qty})
}

// UpdateQuantity sets the quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(variantID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(variantID)
		return
	}
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items[i].Qty = qty
			return
		}
	}
}

func (c *Cart) RemoveItem(variantID string) {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64(json).base64(hmac)
func (c *Codec) Encode(cart *Cart) (string, error) {
	b, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*Cart, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return nil, ErrInvalid
	}
	payload, sig := parts[0], parts[1]
	if !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, ErrInvalid
	}
	return &cart, nil
}

// Get reads the guest cart from the request. A tampered or malformed
// cookie is cleared and treated as no cart.
func (c *Codec) Get(ctx *gin.Context) (*Cart, error) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return nil, nil
	}
	cart, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return nil, err
	}
	return cart, nil
}

func (c *Codec) Set(ctx *gin.Context, cart *Cart) {
	val, err := c.Encode(cart)
	if err != nil {
		return
	}
	maxAge := int((30 * 24 * time.Hour).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
