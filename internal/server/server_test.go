package server_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/internal/config"
	"github.com/dtex/neuron/internal/server"
)

var _ = Describe("Server", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithDefaults()
	})

	It("should mount handlers under /api/v1", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		})
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("pong"))
	})

	It("should answer unknown routes with a JSON 404", func() {
		srv, err := server.NewServer(cfg, func(*gin.RouterGroup) {})
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(MatchJSON(`{"error":"not found"}`))
	})

	It("should recover from a panicking handler", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/boom", func(*gin.Context) { panic("boom") })
		})
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	})

	It("should reject an invalid port", func() {
		cfg.Server.HTTPPort = 0

		_, err := server.NewServer(cfg, func(*gin.RouterGroup) {})

		Expect(err).To(HaveOccurred())
	})
})
