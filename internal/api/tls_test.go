package api

import (
	"crypto/x509"
	"testing"
	"time"

	"comment-collector-go/internal/config"
)

func TestTLSConfigDisabled(t *testing.T) {
	tc, err := TLSConfigFromSettings(config.Config{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tc != nil {
		t.Fatalf("expected nil tls config")
	}
}

func TestTLSConfigSelfSigned(t *testing.T) {
	tc, err := TLSConfigFromSettings(config.Config{TLSSelfSigned: true})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tc == nil || len(tc.Certificates) != 1 {
		t.Fatalf("expected one certificate")
	}

	leaf, err := x509.ParseCertificate(tc.Certificates[0].Certificate[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := leaf.VerifyHostname("localhost"); err != nil {
		t.Fatalf("hostname: %v", err)
	}
	if !leaf.NotAfter.After(time.Now().Add(24 * time.Hour)) {
		t.Fatalf("certificate expires too soon: %v", leaf.NotAfter)
	}
}

func TestTLSConfigMissingKeyPair(t *testing.T) {
	_, err := TLSConfigFromSettings(config.Config{
		TLSCertFile: "does-not-exist.pem",
		TLSKeyFile:  "does-not-exist.key",
	})
	if err == nil {
		t.Fatalf("expected error for missing key pair")
	}
}
