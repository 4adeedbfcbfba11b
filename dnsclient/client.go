// Package dnsclient implements a DNSSEC aware stub resolver client. All
// queries are sent with EDNS0 and the DO bit set so that the upstream
// returns DNSSEC records (RRSIG) alongside the requested type.
package dnsclient

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/bondit-dk/dnscheck/config"
	"github.com/bondit-dk/dnscheck/log"
	"github.com/bondit-dk/dnscheck/util"
)

const (
	udpBufferSize = 4096

	defaultPort       = "53"
	defaultNameserver = "8.8.8.8:53"

	resolvConfPath = "/etc/resolv.conf"

	retryBaseDelay = 100 * time.Millisecond
)

// Client sends DNS queries to a single upstream nameserver.
type Client struct {
	nameserver string
	attempts   uint

	udpClient *dns.Client
	tcpClient *dns.Client

	logger *logrus.Entry
}

// New creates a client for the configured nameserver. With an empty
// nameserver the system resolver configuration is used, falling back to a
// public resolver if that can't be read.
func New(cfg config.ResolverConfig) *Client {
	timeout := cfg.Timeout.ToDuration()

	return &Client{
		nameserver: resolveNameserver(cfg.Nameserver),
		attempts:   cfg.Attempts,
		udpClient: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
		tcpClient: &dns.Client{
			Net:     "tcp",
			Timeout: timeout,
		},
		logger: log.PrefixedLog("dnsclient"),
	}
}

func resolveNameserver(configured string) string {
	if configured != "" {
		return withDefaultPort(configured)
	}

	clientConfig, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil || len(clientConfig.Servers) == 0 {
		return defaultNameserver
	}

	return net.JoinHostPort(clientConfig.Servers[0], clientConfig.Port)
}

func withDefaultPort(nameserver string) string {
	if _, _, err := net.SplitHostPort(nameserver); err == nil {
		return nameserver
	}

	return net.JoinHostPort(nameserver, defaultPort)
}

// Nameserver returns the resolved upstream address.
func (c *Client) Nameserver() string {
	return c.nameserver
}

// Query resolves name with the given query type. An empty answer section or
// NXDOMAIN is an expected outcome and reported via the second return value;
// the error is reserved for transport failures and server side errors
// (SERVFAIL, REFUSED). The answer section is returned complete, including
// RRSIG records accompanying the requested type.
func (c *Client) Query(ctx context.Context, name string, qType uint16) ([]dns.RR, bool, error) {
	msg := util.NewMsgWithQuestion(name, qType)
	msg.RecursionDesired = true
	msg.SetEdns0(udpBufferSize, true)

	var resp *dns.Msg

	err := retry.Do(
		func() error {
			var err error

			resp, err = c.exchange(ctx, msg)

			return err
		},
		retry.Attempts(c.attempts),
		retry.Context(ctx),
		retry.Delay(retryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, false, fmt.Errorf("query for '%s' (%s) failed: %w",
			name, dns.TypeToString[qType], err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return resp.Answer, containsType(resp.Answer, qType), nil
	case dns.RcodeNameError:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("query for '%s' (%s) returned %s",
			name, dns.TypeToString[qType], dns.RcodeToString[resp.Rcode])
	}
}

func (c *Client) exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
	resp, rtt, err := c.udpClient.ExchangeContext(ctx, msg, c.nameserver)
	if err != nil {
		return nil, err
	}

	if resp.Truncated {
		c.logger.WithField("question", util.QuestionToString(msg.Question)).
			Debug("truncated response, retrying over tcp")

		resp, rtt, err = c.tcpClient.ExchangeContext(ctx, msg, c.nameserver)
		if err != nil {
			return nil, err
		}
	}

	c.logger.WithFields(logrus.Fields{
		"question":         util.QuestionToString(msg.Question),
		"answer":           util.AnswerToString(resp.Answer),
		"return_code":      dns.RcodeToString[resp.Rcode],
		"nameserver":       c.nameserver,
		"response_time_ms": rtt.Milliseconds(),
	}).Debugf("received response from nameserver")

	return resp, nil
}

func containsType(answer []dns.RR, qType uint16) bool {
	for _, rr := range answer {
		if rr.Header().Rrtype == qType {
			return true
		}
	}

	return false
}
