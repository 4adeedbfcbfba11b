package util

import (
	"crypto/x509"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TLS helper tests", func() {
	Describe("Self-signed certificate generation", func() {
		It("should create a parseable certificate for the given domains", func() {
			cert, err := TLSGenerateSelfSignedCert([]string{"dnscheck.invalid"})
			Expect(err).Should(Succeed())
			Expect(cert.Leaf).ShouldNot(BeNil())
			Expect(cert.Leaf.DNSNames).Should(ConsistOf("dnscheck.invalid"))

			parsed, err := x509.ParseCertificate(cert.Certificate[0])
			Expect(err).Should(Succeed())
			Expect(parsed.SerialNumber).Should(Equal(cert.Leaf.SerialNumber))
		})

		It("should honor an explicit validity window", func() {
			notBefore := time.Now().Add(-48 * time.Hour)
			notAfter := time.Now().Add(-24 * time.Hour)

			cert, err := TLSGenerateCertWithValidity([]string{"expired.invalid"}, notBefore, notAfter)
			Expect(err).Should(Succeed())
			Expect(cert.Leaf.NotAfter.Before(time.Now())).Should(BeTrue())
		})
	})
})
