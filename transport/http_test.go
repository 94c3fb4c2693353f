package transport_test

import (
	"context"
	"io/ioutil"
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/luma/comms/server"
	"github.com/luma/comms/storage"
	"github.com/luma/comms/transport"
)

var _ = Describe("transport / HTTP", func() {
	var store *storage.InmemoryStore

	BeforeEach(func() {
		store = storage.NewInmemoryStore()
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	makeHTTPServer := func(reuse bool) *transport.HTTP {

		log, err := zap.NewDevelopment()
		Expect(err).To(Succeed())

		h := transport.NewHTTP(transport.Options{
			Host:      "127.0.0.1",
			Port:      0,
			Reuseport: reuse,
			Server:    server.New(server.Options{IP: "localhost", Store: store}),
			Store:     store,
			Log:       log,
		})

		Expect(h.Start(context.Background())).To(Succeed())
		return h
	}

	It("is not bound before Start", func() {
		h := transport.NewHTTP(transport.Options{Log: zap.NewNop()})
		Expect(h.Addr()).To(BeEmpty())
		Expect(h.Close()).To(Succeed())
	})

	for _, reuse := range []bool{false, true} {
		reuse := reuse

		It("serves until closed", func() {
			h := makeHTTPServer(reuse)
			Expect(h.Addr()).NotTo(BeEmpty())

			resp, err := http.Get("http://" + h.Addr() + "/ping")
			Expect(err).To(Succeed())
			body, err := ioutil.ReadAll(resp.Body)
			resp.Body.Close()
			Expect(err).To(Succeed())
			Expect(string(body)).To(Equal("pong"))

			Expect(h.Close()).To(Succeed())
			Expect(h.Close()).To(Succeed())

			_, err = http.Get("http://" + h.Addr() + "/ping")
			Expect(err).To(HaveOccurred())
		})
	}
})
