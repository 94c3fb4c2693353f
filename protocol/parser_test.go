package protocol_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/comms/protocol"
)

var _ = Describe("Parsing", func() {
	Describe("ParseMessage()", func() {
		It("parses a POST with its load", func() {
			msg, err := protocol.ParseMessage("POST Hello from the other side!\n")
			Expect(err).To(Succeed())
			Expect(msg).To(Equal(protocol.NewPost("Hello from the other side!")))
		})

		It("parses a GET without a load", func() {
			msg, err := protocol.ParseMessage("GET\r\n")
			Expect(err).To(Succeed())
			Expect(msg).To(Equal(protocol.NewGet()))
		})

		It("parses the header form", func() {
			msg, err := protocol.ParseMessage("[HANDSHAKE] localhost")
			Expect(err).To(Succeed())
			Expect(msg).To(Equal(protocol.NewHandshake("localhost")))
		})

		It("keeps extra spaces in the load", func() {
			msg, err := protocol.ParseMessage("POST  two spaces")
			Expect(err).To(Succeed())
			Expect(msg.Load).To(Equal(" two spaces"))
		})

		It("returns an error if the line is empty", func() {
			_, err := protocol.ParseMessage("\r\n")
			Expect(err).To(MatchError(protocol.ErrMessageEmpty))
		})

		It("returns an error if the type is unknown", func() {
			_, err := protocol.ParseMessage("EVIL payload")
			Expect(err).To(MatchError(protocol.ErrUnknownMessageType))
		})

		It("returns an error if there is not a space between the type and the load", func() {
			_, err := protocol.ParseMessage("POSTpayload")
			Expect(err).To(MatchError(protocol.ErrMessageMissingLoadSpace))
		})
	})

	Describe("RemoveTrailingCR()", func() {
		It("does nothing if the data does not end in CR", func() {
			Expect(protocol.RemoveTrailingCR("I am awesome data")).To(Equal("I am awesome data"))
		})

		It("removes the trailling CR", func() {
			Expect(protocol.RemoveTrailingCR("I am awesome data\r")).To(Equal("I am awesome data"))
		})
	})
})
