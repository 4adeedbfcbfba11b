package tlsa

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/bondit-dk/dnscheck/util"
)

// CertFetcher retrieves the certificate chain a server presents during the
// TLS handshake, leaf first, in DER form.
type CertFetcher interface {
	Fetch(ctx context.Context, host string, port uint16) ([][]byte, error)
}

// TLSFetcher fetches certificates over a plain TLS handshake. Verification
// is disabled: DANE establishes trust via DNS, a certificate outside the CA
// ecosystem must still be retrievable.
type TLSFetcher struct {
	timeout time.Duration
}

func NewTLSFetcher(timeout time.Duration) *TLSFetcher {
	return &TLSFetcher{timeout: timeout}
}

func (f *TLSFetcher) Fetch(ctx context.Context, host string, port uint16) ([][]byte, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: f.timeout},
		Config: &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
			//nolint:gosec
			InsecureSkipVerify: true,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, fmt.Errorf("can't connect to '%s:%d': %w", host, port, err)
	}

	defer func() {
		util.LogOnError("can't close connection: ", conn.Close())
	}()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("server '%s:%d' presented no certificate", host, port)
	}

	chain := make([][]byte, 0, len(state.PeerCertificates))
	for _, cert := range state.PeerCertificates {
		chain = append(chain, cert.Raw)
	}

	return chain, nil
}
