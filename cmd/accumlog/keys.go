package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
)

const pemTypeECKey = "EC PRIVATE KEY"

func readKey(path string) (*ecdsa.PrivateKey, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: --key is required", errUsage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypeECKey {
		return nil, errors.New("no EC PRIVATE KEY block found")
	}
	return x509.ParseECPrivateKey(block.Bytes)
}

// keygen writes a new P-256 key. An existing key is never replaced.
func keygen(cfg config, out io.Writer) error {
	if cfg.keyPath == "" {
		return fmt.Errorf("%w: --key is required", errUsage)
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(cfg.keyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if err = pem.Encode(f, &pem.Block{Type: pemTypeECKey, Bytes: der}); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(out, cfg.keyPath)
	return nil
}
