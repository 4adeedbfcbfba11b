package log

import (
	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	Describe("ConfigureLogger", func() {
		It("should apply the configured log level", func() {
			ConfigureLogger(Config{Level: LevelDebug, Format: FormatTypeText})
			Expect(Log().GetLevel()).Should(Equal(logrus.DebugLevel))

			ConfigureLogger(Config{Level: LevelInfo, Format: FormatTypeText})
			Expect(Log().GetLevel()).Should(Equal(logrus.InfoLevel))
		})

		It("should use the JSON formatter when configured", func() {
			ConfigureLogger(Config{Level: LevelInfo, Format: FormatTypeJson})
			Expect(Log().Formatter).Should(BeAssignableToTypeOf(&logrus.JSONFormatter{}))

			ConfigureLogger(Config{Level: LevelInfo, Format: FormatTypeText})
		})
	})

	Describe("EscapeInput", func() {
		It("should remove line breaks", func() {
			Expect(EscapeInput("one\ntwo\r")).Should(Equal("onetwo"))
		})
	})

	Describe("PrefixedLog", func() {
		It("should attach the prefix field", func() {
			entry := PrefixedLog("tlsa")
			Expect(entry.Data["prefix"]).Should(Equal("tlsa"))
		})
	})
})
