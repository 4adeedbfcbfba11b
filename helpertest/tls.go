package helpertest

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/tls"
	"encoding/hex"
	"net"

	"github.com/miekg/dns"

	"github.com/bondit-dk/dnscheck/util"
)

// TLSAFromCert builds a TLSA record whose association data is computed
// from cert per the given selector and matching type. The record matches
// the certificate by construction.
func TLSAFromCert(name string, usage, selector, matchingType uint8, cert tls.Certificate) *dns.TLSA {
	var data []byte

	switch selector {
	case 0:
		data = cert.Leaf.Raw
	case 1:
		data = cert.Leaf.RawSubjectPublicKeyInfo
	}

	var assocData string

	switch matchingType {
	case 0:
		assocData = hex.EncodeToString(data)
	case 1:
		digest := sha256.Sum256(data)
		assocData = hex.EncodeToString(digest[:])
	case 2:
		digest := sha512.Sum512(data)
		assocData = hex.EncodeToString(digest[:])
	}

	return &dns.TLSA{
		Hdr: dns.RR_Header{
			Name:   dns.Fqdn(name),
			Rrtype: dns.TypeTLSA,
			Class:  dns.ClassINET,
			Ttl:    fixtureTTL,
		},
		Usage:        usage,
		Selector:     selector,
		MatchingType: matchingType,
		Certificate:  assocData,
	}
}

// TLSServer runs a TLS listener presenting cert on a random local port.
// The returned function stops the server.
func TLSServer(cert tls.Certificate) (addr string, stop func()) {
	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
	util.FatalOnError("can't start TLS listener: ", err)

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				// closed
				return
			}

			go func(c net.Conn) {
				// complete the handshake so the client sees the certificate
				if tlsConn, ok := c.(*tls.Conn); ok {
					_ = tlsConn.Handshake()
				}

				_ = c.Close()
			}(conn)
		}
	}()

	return ln.Addr().String(), func() { _ = ln.Close() }
}
