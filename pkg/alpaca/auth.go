package alpaca

import (
	"errors"
	"net/http"
)

const (
	headerKeyID     = "APCA-API-KEY-ID"
	headerSecretKey = "APCA-API-SECRET-KEY"
)

// ErrMissingCredentials is returned when a key or secret is empty.
var ErrMissingCredentials = errors.New("alpaca: missing api key or secret")

// Authenticator adds credentials to an outgoing request.
type Authenticator interface {
	AddAuthHeaders(req *http.Request) error
}

// KeyAuthenticator authenticates with the account's key ID and secret key.
type KeyAuthenticator struct {
	apiKey    string
	apiSecret string
}

func NewKeyAuthenticator(apiKey, apiSecret string) (*KeyAuthenticator, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	return &KeyAuthenticator{
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}, nil
}

func (k *KeyAuthenticator) AddAuthHeaders(req *http.Request) error {
	req.Header.Set(headerKeyID, k.apiKey)
	req.Header.Set(headerSecretKey, k.apiSecret)
	return nil
}

// KeyID returns the public half of the credential pair for logging.
func (k *KeyAuthenticator) KeyID() string {
	return k.apiKey
}
