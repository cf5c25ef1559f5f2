// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// GenerateCertificate writes a new self-signed ECDSA P-256 certificate
// for the given hosts (DNS names or IP addresses), valid for the given
// duration, and its private key, as PEM files. Browsers only grant
// camera access to secure origins, so even local testing needs HTTPS.
func GenerateCertificate(certFile, keyFile string, hosts []string, validFor time.Duration) error {
	if len(hosts) == 0 {
		return fmt.Errorf("server.GenerateCertificate: no hosts")
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return err
	}
	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"arview local development"}, CommonName: hosts[0]},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(validFor),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
		} else {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return err
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return err
	}
	if err := writePEM(keyFile, "PRIVATE KEY", keyDER, 0600); err != nil {
		return err
	}
	return writePEM(certFile, "CERTIFICATE", der, 0644)
}

func writePEM(filename, typ string, der []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	b := pem.EncodeToMemory(&pem.Block{Type: typ, Bytes: der})
	return os.WriteFile(filename, b, perm)
}

// CertReloader holds a TLS certificate loaded from files, and reloads
// it when the files change so that renewed certificates are picked up
// without restarting the server.
type CertReloader struct {
	CertFile string
	KeyFile  string

	mu   sync.RWMutex
	cert *tls.Certificate
}

// NewCertReloader returns a new [CertReloader] with the certificate
// loaded from the given files.
func NewCertReloader(certFile, keyFile string) (*CertReloader, error) {
	cr := &CertReloader{CertFile: certFile, KeyFile: keyFile}
	if err := cr.Reload(); err != nil {
		return nil, err
	}
	return cr, nil
}

// Reload loads the certificate from the files again. The current
// certificate is kept if that fails.
func (cr *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(cr.CertFile, cr.KeyFile)
	if err != nil {
		return fmt.Errorf("loading TLS certificate %s: %w", cr.CertFile, err)
	}
	cr.mu.Lock()
	cr.cert = &cert
	cr.mu.Unlock()
	return nil
}

// GetCertificate is used as [tls.Config.GetCertificate].
func (cr *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.cert, nil
}

// Watch reloads the certificate whenever its files change,
// until the context is done. The directories are watched so that
// files replaced by renaming are seen as well.
func (cr *CertReloader) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	files := []string{filepath.Clean(cr.CertFile), filepath.Clean(cr.KeyFile)}
	var dirs []string
	for _, f := range files {
		d := filepath.Dir(f)
		if slices.Contains(dirs, d) {
			continue
		}
		dirs = append(dirs, d)
		if err := w.Add(d); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !slices.Contains(files, filepath.Clean(ev.Name)) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// the pair does not match while only one file is written
			if err := cr.Reload(); err != nil {
				slog.Debug("certificate not reloaded", "err", err)
				continue
			}
			slog.Info("reloaded TLS certificate", "cert", cr.CertFile)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watching TLS certificate", "err", err)
		}
	}
}
