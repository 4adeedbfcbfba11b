package validator

import (
	"context"
	"errors"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/bondit-dk/dnscheck/helpertest"
	"github.com/bondit-dk/dnscheck/log"
	"github.com/bondit-dk/dnscheck/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Chain of trust validation", func() {
	const testDomain = "bondit.dk"

	var (
		client *mockClient
		sut    *Validator
		ctx    context.Context
	)

	BeforeEach(func() {
		client = &mockClient{}
		ctx = context.Background()
		sut = New(client, nil, time.Second)
	})

	Describe("Unsigned domains", func() {
		It("should report insecure without DNSKEY records", func() {
			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).Return(nil, false, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeInsecure))
			Expect(result.ChainOfTrust).Should(HaveLen(1))
			Expect(result.ChainOfTrust[0].Status).Should(Equal(model.StatusTypeInsecure))
			Expect(result.ChainOfTrust[0].Error).Should(Equal("No DNSKEY records found - domain is not signed"))
			client.AssertNotCalled(GinkgoT(), "Query", mock.Anything, testDomain, dns.TypeDS)
		})
	})

	Describe("Broken chains", func() {
		It("should report invalid when the parent holds no DS record", func() {
			key := helpertest.GenerateDNSKEY(testDomain)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).Return(nil, false, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeInvalid))
			Expect(result.ChainOfTrust[0].Error).Should(ContainSubstring("no DS record"))
			Expect(result.Records.DNSKEY).Should(HaveLen(1))
			Expect(result.Records.DS).Should(BeEmpty())
		})

		It("should report invalid when no DS key tag matches a DNSKEY", func() {
			key := helpertest.GenerateDNSKEY(testDomain)
			ds := helpertest.MismatchedDS(key)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return([]dns.RR{ds}, true, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeInvalid))
			Expect(result.ChainOfTrust[0].Error).Should(ContainSubstring("do not match"))
		})
	})

	Describe("Valid chains", func() {
		It("should report valid when a DS key tag matches a DNSKEY", func() {
			key := helpertest.GenerateDNSKEY(testDomain)
			ds := helpertest.MatchingDS(key)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return([]dns.RR{ds}, true, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeValid))
			Expect(result.ChainOfTrust).Should(HaveLen(1))
			Expect(result.ChainOfTrust[0].Status).Should(Equal(model.StatusTypeValid))
			Expect(result.ChainOfTrust[0].Algorithm).Should(Equal(uint8(dns.ECDSAP256SHA256)))
			Expect(result.ChainOfTrust[0].KeyTag).Should(Equal(key.KeyTag()))
			Expect(result.Records.DNSKEY).Should(HaveLen(1))
			Expect(result.Records.DS).Should(HaveLen(1))
		})

		It("should report valid if one of several keys matches", func() {
			matching := helpertest.GenerateDNSKEY(testDomain)
			other := helpertest.GenerateDNSKEY(testDomain)
			ds := helpertest.MatchingDS(matching)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{other, matching}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return([]dns.RR{ds}, true, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeValid))
			Expect(result.Records.DNSKEY).Should(HaveLen(2))
		})

		It("should collect RRSIG records accompanying the answers", func() {
			key := helpertest.GenerateDNSKEY(testDomain)
			ds := helpertest.MatchingDS(key)
			sig := helpertest.CoveringRRSIG(testDomain, dns.TypeDNSKEY, key,
				time.Now().Add(-24*time.Hour), time.Now().Add(14*24*time.Hour))

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key, sig}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return([]dns.RR{ds}, true, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Records.RRSIG).Should(HaveLen(1))
			Expect(result.Records.RRSIG[0].TypeCovered).Should(Equal("DNSKEY"))
			Expect(result.Records.RRSIG[0].KeyTag).Should(Equal(key.KeyTag()))
		})
	})

	Describe("Failures", func() {
		It("should report error when the DNSKEY query fails", func() {
			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return(nil, false, errors.New("i/o timeout"))

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeError))
			Expect(result.Errors[0]).Should(ContainSubstring("DNSKEY query failed"))
		})

		It("should report error when the DS query fails", func() {
			key := helpertest.GenerateDNSKEY(testDomain)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return(nil, false, errors.New("SERVFAIL"))

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeError))
			Expect(result.Errors[0]).Should(ContainSubstring("DS query failed"))
		})

		It("should reject malformed domains without querying", func() {
			result := sut.Validate(ctx, "invalid..domain")

			Expect(result.Status).Should(Equal(model.StatusTypeError))
			Expect(result.Errors[0]).Should(ContainSubstring("invalid domain format"))
			client.AssertNotCalled(GinkgoT(), "Query", mock.Anything, mock.Anything, mock.Anything)
		})
	})

	Describe("Determinism", func() {
		It("should produce identical verdicts for identical responses", func() {
			key := helpertest.GenerateDNSKEY(testDomain)
			ds := helpertest.MatchingDS(key)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return([]dns.RR{ds}, true, nil)

			first := sut.Validate(ctx, testDomain)
			second := sut.Validate(ctx, testDomain)

			Expect(first.Status).Should(Equal(second.Status))
			Expect(first.ChainOfTrust).Should(Equal(second.ChainOfTrust))
			Expect(first.Records).Should(Equal(second.Records))
		})
	})

	Describe("TLSA side check", func() {
		It("should attach the summary without affecting the DNSSEC status", func() {
			tlsaChecker := &mockTLSAChecker{}
			tlsaChecker.On("QuickSummary", mock.Anything, testDomain).Return(model.TLSASummary{
				Status:  model.TLSAStatusTypeError,
				Message: "handshake failed",
			})

			sut = New(client, tlsaChecker, time.Second)

			key := helpertest.GenerateDNSKEY(testDomain)
			ds := helpertest.MatchingDS(key)

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).
				Return([]dns.RR{key}, true, nil)
			client.On("Query", mock.Anything, testDomain, dns.TypeDS).
				Return([]dns.RR{ds}, true, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.StatusTypeValid))
			Expect(result.TLSASummary).ShouldNot(BeNil())
			Expect(result.TLSASummary.Status).Should(Equal(model.TLSAStatusTypeError))
			Expect(result.TLSASummary.Message).Should(Equal("handshake failed"))
		})

		It("should not attach a summary without a checker", func() {
			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).Return(nil, false, nil)

			result := sut.Validate(ctx, testDomain)

			Expect(result.TLSASummary).Should(BeNil())
		})
	})

	Describe("Logging", func() {
		It("should log each finished validation at info level", func() {
			logger, hook := log.NewMockEntry()
			sut.logger = logger

			client.On("Query", mock.Anything, testDomain, dns.TypeDNSKEY).Return(nil, false, nil)

			sut.Validate(ctx, testDomain)

			Expect(hook.MessagesAtLevel(logrus.InfoLevel)).Should(ContainElement("validation finished"))
			Expect(hook.HasMessageContaining("validation finished")).Should(BeTrue())
		})
	})
})
