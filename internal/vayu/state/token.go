package state

import (
	"errors"
	"fmt"

	"github.com/gorilla/securecookie"
)

const tokenName = "vayu_mount"

// ErrInvalidToken indicates a mount token failed signature or format checks.
var ErrInvalidToken = errors.New("state: invalid mount token")

// TokenCodec signs mount IDs before they are handed to the browser so a client
// cannot address another client's mount by guessing.
type TokenCodec struct {
	codec *securecookie.SecureCookie
}

// NewTokenCodec builds a codec from the HMAC key. An empty key generates a
// random one, which invalidates tokens on restart.
func NewTokenCodec(hashKey []byte) *TokenCodec {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(64)
	}
	codec := securecookie.New(hashKey, nil)
	// Mount expiry is enforced by the store, not the token.
	codec.MaxAge(0)
	return &TokenCodec{codec: codec}
}

// Encode signs the mount ID.
func (c *TokenCodec) Encode(id string) (string, error) {
	token, err := c.codec.Encode(tokenName, id)
	if err != nil {
		return "", fmt.Errorf("encode mount token: %w", err)
	}
	return token, nil
}

// Decode verifies the token and returns the mount ID it carries.
func (c *TokenCodec) Decode(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	var id string
	if err := c.codec.Decode(tokenName, token, &id); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
