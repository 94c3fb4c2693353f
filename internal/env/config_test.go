package env_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/luma/comms/internal/env"
)

var _ = Describe("env", func() {
	Describe("LoadConfig()", func() {
		It("uses defaults when nothing is set", func() {
			config, err := env.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
			Expect(err).To(Succeed())

			Expect(config.ServerIP).To(Equal("10.0.0.1"))
			Expect(config.LogLevel).To(Equal(zapcore.InfoLevel))
			Expect(config.LogEncoding).To(Equal("json"))
			Expect(config.DebugHTTP).To(BeFalse())
		})

		It("reads the environment", func() {
			config, err := env.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{
				"COMMS_SERVER_IP":    "localhost",
				"COMMS_LOG_LEVEL":    "debug",
				"COMMS_LOG_ENCODING": "console",
				"COMMS_DEBUG_HTTP":   "true",
			}))
			Expect(err).To(Succeed())

			Expect(config.ServerIP).To(Equal("localhost"))
			Expect(config.LogLevel).To(Equal(zapcore.DebugLevel))
			Expect(config.LogEncoding).To(Equal("console"))
			Expect(config.DebugHTTP).To(BeTrue())
		})

		It("rejects an invalid log level", func() {
			_, err := env.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{
				"COMMS_LOG_LEVEL": "loud",
			}))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MakeLogger()", func() {
		It("builds a logger at the configured level", func() {
			log, err := env.MakeLogger(&env.Config{LogLevel: zapcore.WarnLevel, LogEncoding: "console"})
			Expect(err).To(Succeed())
			Expect(log.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
			Expect(log.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
		})

		It("rejects unknown encodings", func() {
			_, err := env.MakeLogger(&env.Config{LogEncoding: "xml"})
			Expect(err).To(HaveOccurred())
		})
	})
})
