package apiserver_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/kubev2v/patchcord-planner/internal/config"
	apiserver "github.com/kubev2v/patchcord-planner/internal/api_server"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("api server", func() {
	var cfg *config.Config

	BeforeEach(func() {
		var err error
		cfg, err = config.Load("")
		Expect(err).To(BeNil())
		cfg.Service.CORSOrigins = []string{"*"}
	})

	It("answers the health check through the middleware chain", func() {
		srv := apiserver.New(cfg, rackplan.DefaultPlan(rackplan.DefaultRange()), nil)
		ts := httptest.NewServer(srv.Handler(nil))
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/health")
		Expect(err).To(BeNil())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("X-Request-Id")).NotTo(BeEmpty())
	})

	It("answers CORS preflight requests", func() {
		srv := apiserver.New(cfg, rackplan.DefaultPlan(rackplan.DefaultRange()), nil)
		ts := httptest.NewServer(srv.Handler(nil))
		defer ts.Close()

		req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/calculate", nil)
		Expect(err).To(BeNil())
		req.Header.Set("Origin", "http://localhost:8080")
		req.Header.Set("Access-Control-Request-Method", "POST")

		resp, err := http.DefaultClient.Do(req)
		Expect(err).To(BeNil())
		defer resp.Body.Close()
		Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("stops serving when the context is cancelled", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).To(BeNil())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- apiserver.New(cfg, rackplan.DefaultPlan(rackplan.DefaultRange()), listener).Run(ctx)
		}()

		Eventually(func() error {
			resp, err := http.Get("http://" + listener.Addr().String() + "/health")
			if err == nil {
				resp.Body.Close()
			}
			return err
		}).Should(Succeed())

		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})
})

var _ = Describe("web server", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "web-*")
		Expect(err).To(BeNil())
		Expect(os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>patch cords</html>"), 0o600)).To(Succeed())
	})

	AfterEach(func() {
		_ = os.RemoveAll(root)
	})

	It("serves the static files with permissive CORS", func() {
		web, err := apiserver.NewWebServer(root, "info", nil)
		Expect(err).To(BeNil())

		ts := httptest.NewServer(web.Handler())
		defer ts.Close()

		req, err := http.NewRequest(http.MethodGet, ts.URL+"/index.html", nil)
		Expect(err).To(BeNil())
		req.Header.Set("Origin", "http://example.com")

		resp, err := http.DefaultClient.Do(req)
		Expect(err).To(BeNil())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("rejects a missing root", func() {
		_, err := apiserver.NewWebServer(filepath.Join(root, "missing"), "info", nil)
		Expect(err).To(HaveOccurred())
		Expect(strings.Contains(err.Error(), "web root")).To(BeTrue())
	})
})
