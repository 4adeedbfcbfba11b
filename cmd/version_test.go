package cmd

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Version command", func() {
	It("should execute without error", func() {
		c := NewVersionCommand()
		c.SetArgs([]string{})

		Expect(c.Execute()).Should(Succeed())
	})
})
