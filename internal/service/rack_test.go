package service_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kubev2v/patchcord-planner/internal/config"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/service"
	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RackService", Ordered, func() {
	var (
		s      store.Store
		srv    *service.RackService
		tmpDir string
	)

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "rack-service-*")
		Expect(err).To(BeNil())

		cfg, err := config.Load("")
		Expect(err).To(BeNil())
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = filepath.Join(tmpDir, "racks.db")

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, "sqlite")).To(Succeed())

		s = store.NewStore(db)
		srv = service.NewRackService(s)
	})

	AfterAll(func() {
		s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	It("imports a plan", func() {
		n, err := srv.Import(context.TODO(), rackplan.NewPlan([]string{"02b07", "02b03", "02b05"}))
		Expect(err).To(BeNil())
		Expect(n).To(Equal(3))

		count, err := srv.Count(context.TODO())
		Expect(err).To(BeNil())
		Expect(count).To(Equal(int64(3)))
	})

	It("serves the imported plan through the store directory", func() {
		cables := service.NewCableService(store.NewRackDirectory(s))
		result, err := cables.Calculate(context.TODO(), link("02b03", 10, "02b07", 20))
		Expect(err).To(BeNil())
		Expect(result.ServerB.RackIndex).To(Equal(3))
	})

	It("rejects an empty plan and keeps the stored one", func() {
		_, err := srv.Import(context.TODO(), rackplan.NewPlan(nil))
		Expect(err).To(HaveOccurred())

		count, err := srv.Count(context.TODO())
		Expect(err).To(BeNil())
		Expect(count).To(Equal(int64(3)))
	})
})
