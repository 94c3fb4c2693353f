package protocol_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/luma/comms/protocol"
)

var _ = Describe("Message", func() {
	Describe("Header()", func() {
		It("returns the fixed token for every type", func() {
			Expect(protocol.Handshake.Header()).To(Equal("[HANDSHAKE]"))
			Expect(protocol.Post.Header()).To(Equal("[POST]"))
			Expect(protocol.Get.Header()).To(Equal("[GET]"))
		})

		It("does not panic on an out of range type", func() {
			Expect(protocol.MessageType(42).Header()).To(Equal("[UNKNOWN(42)]"))
		})
	})

	Describe("Content()", func() {
		DescribeTable("is the header, a newline, then the load",
			func(msg protocol.Message, expected string) {
				Expect(msg.Content()).To(Equal(expected))
			},
			Entry("handshake", protocol.NewHandshake("10.0.0.1"), "[HANDSHAKE]\n10.0.0.1"),
			Entry("post", protocol.NewPost("Hello from the other side!"), "[POST]\nHello from the other side!"),
			Entry("get", protocol.NewGet(), "[GET]\n"),
			Entry("multiline load", protocol.NewPost("a\nb"), "[POST]\na\nb"),
		)
	})

	Describe("ParseMessageType()", func() {
		It("accepts the bare token and the header", func() {
			Expect(protocol.ParseMessageType("POST")).To(Equal(protocol.Post))
			Expect(protocol.ParseMessageType("[GET]")).To(Equal(protocol.Get))
			Expect(protocol.ParseMessageType("HANDSHAKE")).To(Equal(protocol.Handshake))
		})

		It("is case sensitive", func() {
			_, err := protocol.ParseMessageType("post")
			Expect(errors.Is(err, protocol.ErrUnknownMessageType)).To(BeTrue())
		})
	})
})
