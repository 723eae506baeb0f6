package accumtesting

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"
)

func GenerateECKey(t *testing.T, curve elliptic.Curve) *ecdsa.PrivateKey {
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	return privateKey
}

// NewES256Signer returns a P-256 signer and its key
func NewES256Signer(t *testing.T) (cose.Signer, *ecdsa.PrivateKey) {
	key := GenerateECKey(t, elliptic.P256())
	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	require.NoError(t, err)
	return signer, key
}
