package util

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/bondit-dk/dnscheck/log"
)

// FatalOnError logs the message only if error is not nil and exits the program execution
func FatalOnError(message string, err error) {
	if err != nil {
		log.Log().Fatal(message, err)
	}
}

// LogOnError logs the message only if error is not nil
func LogOnError(message string, err error) {
	if err != nil {
		log.Log().Error(message, err)
	}
}

// AnswerToString creates a short, log friendly representation of an answer section
func AnswerToString(answer []dns.RR) string {
	answers := make([]string, len(answer))

	for i, record := range answer {
		switch v := record.(type) {
		case *dns.DNSKEY:
			answers[i] = fmt.Sprintf("DNSKEY (flags %d, alg %d, tag %d)", v.Flags, v.Algorithm, v.KeyTag())
		case *dns.DS:
			answers[i] = fmt.Sprintf("DS (tag %d, alg %d, digest %d)", v.KeyTag, v.Algorithm, v.DigestType)
		case *dns.RRSIG:
			answers[i] = fmt.Sprintf("RRSIG (%s, tag %d, signer %s)",
				dns.TypeToString[v.TypeCovered], v.KeyTag, v.SignerName)
		case *dns.TLSA:
			answers[i] = fmt.Sprintf("TLSA (%d %d %d)", v.Usage, v.Selector, v.MatchingType)
		default:
			answers[i] = fmt.Sprint(record)
		}
	}

	return strings.Join(answers, ", ")
}

// QuestionToString creates a short representation of a question section
func QuestionToString(questions []dns.Question) string {
	result := make([]string, len(questions))
	for i, question := range questions {
		result[i] = fmt.Sprintf("%s (%s)", dns.TypeToString[question.Qtype], question.Name)
	}

	return strings.Join(result, ", ")
}

// NewMsgWithQuestion creates a new DNS message with given question
func NewMsgWithQuestion(question string, qType uint16) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(question), qType)

	return msg
}
