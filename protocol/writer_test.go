package protocol_test

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/comms/protocol"
)

var _ = Describe("Transcript / Writer", func() {
	addr := "197.0.0.1"

	Describe("WriteOk", func() {
		It("includes the address as a prefix", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteOk(w, addr)).To(Succeed())
			Expect(w.String()).To(HavePrefix("197.0.0.1 "))
		})

		It("ends in \r\n", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteOk(w, addr)).To(Succeed())
			Expect(w.String()).To(HaveSuffix("\r\n"))
		})

		It("include OK", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteOk(w, addr)).To(Succeed())
			Expect(w.String()).To(Equal("197.0.0.1 OK\r\n"))
		})
	})

	Describe("WriteString", func() {
		It("include the response string", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteString(w, addr, "resp")).To(Succeed())
			Expect(w.String()).To(Equal("197.0.0.1 resp\r\n"))
		})
	})

	Describe("WriteResponse", func() {
		It("writes OK when there is no response", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteResponse(w, addr, nil)).To(Succeed())
			Expect(w.String()).To(Equal("197.0.0.1 OK\r\n"))
		})

		It("writes the response when there is one", func() {
			w := bytes.NewBuffer([]byte{})
			resp := "0"

			Expect(protocol.WriteResponse(w, addr, &resp)).To(Succeed())
			Expect(w.String()).To(Equal("197.0.0.1 0\r\n"))
		})
	})

	Describe("WriteError", func() {
		It("include the ERR response code and the error string", func() {
			w := bytes.NewBuffer([]byte{})

			Expect(protocol.WriteError(w, addr, "errMessage")).To(Succeed())
			Expect(w.String()).To(Equal("197.0.0.1 ERR errMessage\r\n"))
		})
	})

	It("does not share the terminal between writes", func() {
		w := bytes.NewBuffer([]byte{})

		Expect(protocol.WriteOk(w, "a")).To(Succeed())
		Expect(protocol.WriteOk(w, "b")).To(Succeed())
		Expect(w.String()).To(Equal("a OK\r\nb OK\r\n"))
		Expect(protocol.OkTerminal).To(Equal([]byte("OK\r\n")))
	})
})
