package tlsa

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/mock"

	"github.com/bondit-dk/dnscheck/config"
	"github.com/bondit-dk/dnscheck/helpertest"
	"github.com/bondit-dk/dnscheck/model"
	"github.com/bondit-dk/dnscheck/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TLSA detailed analysis", func() {
	const (
		testDomain = "example.com"
		queryName  = "_443._tcp.example.com"
	)

	var (
		client  *mockClient
		fetcher *mockFetcher
		sut     *Validator
		ctx     context.Context
		cert    tls.Certificate
	)

	BeforeEach(func() {
		var err error

		cert, err = util.TLSGenerateSelfSignedCert([]string{testDomain})
		Expect(err).Should(Succeed())

		client = &mockClient{}
		fetcher = &mockFetcher{}
		ctx = context.Background()

		sut = New(client, fetcher, config.TLSAConfig{
			Port:     443,
			Protocol: "tcp",
		})
	})

	serveRecord := func(record *dns.TLSA, chain [][]byte) {
		client.On("Query", mock.Anything, queryName, dns.TypeTLSA).
			Return([]dns.RR{record}, true, nil)
		fetcher.On("Fetch", mock.Anything, testDomain, uint16(443)).
			Return(chain, nil)
	}

	Describe("Security score", func() {
		It("should score a strong DANE-EE deployment with a long-lived certificate", func() {
			record := helpertest.TLSAFromCert(queryName, 3, 1, 1, cert)
			serveRecord(record, [][]byte{cert.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			// 40 valid + 10 strong hash + 15 DANE-EE + 20 valid cert + 5 long validity
			Expect(result.Analysis.SecurityAssessment.OverallScore).Should(Equal(90))
			Expect(result.Analysis.SecurityAssessment.Strengths).
				Should(ContainElement("Uses DANE-EE - bypasses CA system completely"))
		})

		It("should score full data matching lower than hashed matching", func() {
			record := helpertest.TLSAFromCert(queryName, 3, 1, 0, cert)
			serveRecord(record, [][]byte{cert.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			// 40 valid + 5 full matching + 15 DANE-EE + 20 valid cert + 5 long validity
			Expect(result.Analysis.SecurityAssessment.OverallScore).Should(Equal(85))
		})

		It("should score zero without TLSA records", func() {
			client.On("Query", mock.Anything, queryName, dns.TypeTLSA).Return(nil, false, nil)

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.SecurityAssessment.OverallScore).Should(Equal(0))
			Expect(result.Analysis.SecurityAssessment.Weaknesses).
				Should(ContainElement("No TLSA records found - DANE not implemented"))
		})

		It("should flag a certificate outside its validity window", func() {
			expired, err := util.TLSGenerateCertWithValidity([]string{testDomain},
				time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
			Expect(err).Should(Succeed())

			record := helpertest.TLSAFromCert(queryName, 3, 1, 1, expired)
			serveRecord(record, [][]byte{expired.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.SecurityAssessment.Weaknesses).
				Should(ContainElement("Certificate is not currently valid"))
			Expect(result.Analysis.CertificateAnalysis.CurrentlyValid).Should(BeFalse())
		})

		It("should record a risk factor for imminent expiry", func() {
			shortLived, err := util.TLSGenerateCertWithValidity([]string{testDomain},
				time.Now().Add(-time.Hour), time.Now().Add(10*24*time.Hour))
			Expect(err).Should(Succeed())

			record := helpertest.TLSAFromCert(queryName, 3, 1, 1, shortLived)
			serveRecord(record, [][]byte{shortLived.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.SecurityAssessment.RiskFactors).ShouldNot(BeEmpty())
			Expect(result.Analysis.SecurityAssessment.RiskFactors[0]).
				Should(ContainSubstring("Certificate expires in"))
		})
	})

	Describe("Record classification", func() {
		It("should classify usage, selector and matching type", func() {
			record := helpertest.TLSAFromCert(queryName, 3, 1, 2, cert)
			serveRecord(record, [][]byte{cert.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.RecordAnalysis).Should(HaveLen(1))

			analysis := result.Analysis.RecordAnalysis[0]
			Expect(analysis.Usage.Name).Should(Equal("DANE-EE"))
			Expect(analysis.Usage.Recommended).Should(BeTrue())
			Expect(analysis.Selector.Name).Should(Equal("SPKI"))
			Expect(analysis.Matching.Name).Should(Equal("SHA-512"))
			Expect(analysis.Matching.HashAlgorithm).Should(Equal("SHA-512"))
			Expect(analysis.Matching.SecurityStrength).Should(Equal("very_high"))
			Expect(analysis.SecurityNotes).Should(ContainElement(
				"Uses DANE validation - bypasses traditional CA validation"))
		})

		It("should not recommend DANE-TA", func() {
			Expect(analyzeUsage(2).Recommended).Should(BeFalse())
		})

		It("should mark unknown usage values", func() {
			analysis := analyzeUsage(7)

			Expect(analysis.Name).Should(Equal("Unknown (7)"))
			Expect(analysis.Recommended).Should(BeFalse())
		})
	})

	Describe("Troubleshooting guidance", func() {
		It("should explain missing records", func() {
			client.On("Query", mock.Anything, queryName, dns.TypeTLSA).Return(nil, false, nil)

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.Troubleshooting[0]).Should(ContainSubstring("no TLSA records found"))
			Expect(result.Analysis.Troubleshooting).Should(ContainElement(
				ContainSubstring("_443._tcp.example.com")))
		})

		It("should list every failed association", func() {
			otherCert, err := util.TLSGenerateSelfSignedCert([]string{testDomain})
			Expect(err).Should(Succeed())

			record := helpertest.TLSAFromCert(queryName, 3, 1, 1, cert)
			serveRecord(record, [][]byte{otherCert.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Status).Should(Equal(model.TLSAStatusTypeInvalid))
			Expect(result.Analysis.Troubleshooting).Should(ContainElement(
				ContainSubstring("usage:3, selector:1, type:1")))
		})
	})

	Describe("Recommendations", func() {
		It("should suggest DANE-EE when absent", func() {
			record := helpertest.TLSAFromCert(queryName, 1, 1, 1, cert)
			serveRecord(record, [][]byte{cert.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.Recommendations).Should(ContainElement(
				"Consider DANE-EE (usage 3) for maximum security"))
		})

		It("should acknowledge modern hashes", func() {
			record := helpertest.TLSAFromCert(queryName, 3, 1, 1, cert)
			serveRecord(record, [][]byte{cert.Leaf.Raw})

			result := sut.ValidateDetailed(ctx, testDomain)

			Expect(result.Analysis.Recommendations).Should(ContainElement(
				"Modern hash algorithms (SHA-256/SHA-512) detected"))
		})
	})
})
