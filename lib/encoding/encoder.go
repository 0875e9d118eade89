// Package encoding signs and verifies msgpack-serialised directive
// manifests.
//
// A manifest is encoded as base64url(payload) + "." + base64url(signature),
// where the signature is the first 16 bytes of HMAC-SHA256 over the payload.
// Manifests are tamper-evident but not secret.
package encoding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
)

// signatureSize is the truncated HMAC length in bytes.
const signatureSize = 16

// Encoder signs and verifies manifests with a shared key.
type Encoder struct {
	key []byte
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Encoder{key: key}, nil
}

// Encodable is implemented by types that flatten themselves into plain
// maps before packing.
type Encodable interface {
	EncodeMap() map[string]any
}

// Decodable is implemented by types that rebuild themselves from a packed
// map.
type Decodable interface {
	DecodeMap(map[string]any) error
}

// Encode packs v with msgpack and signs the result.
func (e *Encoder) Encode(v Encodable) (string, error) {
	packed, err := msgpack.Marshal(v.EncodeMap())
	if err != nil {
		return "", fmt.Errorf("encoding: pack: %w", err)
	}
	return e.sign(packed), nil
}

// Decode verifies encoded and unpacks it into v.
func (e *Encoder) Decode(encoded string, v Decodable) error {
	packed, err := e.verify(encoded)
	if err != nil {
		return err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return v.DecodeMap(data)
}

// sign creates "base64.signature".
func (e *Encoder) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	sig := base64.RawURLEncoding.EncodeToString(e.mac(data))
	return b64 + "." + sig
}

// verify checks and strips the signature.
func (e *Encoder) verify(encoded string) ([]byte, error) {
	payload, signature, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrInvalidFormat, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrInvalidFormat, err)
	}

	if !hmac.Equal(sig, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.key)
	m.Write(data)
	return m.Sum(nil)[:signatureSize]
}
