package store_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kubev2v/patchcord-planner/internal/config"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/internal/store/model"
	"github.com/kubev2v/patchcord-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func newTestDB(dir string) *gorm.DB {
	cfg, err := config.Load("")
	Expect(err).To(BeNil())
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = filepath.Join(dir, "store.db")

	db, err := store.InitDB(cfg)
	Expect(err).To(BeNil())
	Expect(migrations.MigrateStore(db, "sqlite")).To(Succeed())
	return db
}

var _ = Describe("rack store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		tmpDir string
	)

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "store-*")
		Expect(err).To(BeNil())

		gormdb = newTestDB(tmpDir)
		s = store.NewStore(gormdb)
	})

	AfterAll(func() {
		s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM racks;")
	})

	Context("Replace", func() {
		It("stores a plan", func() {
			plan := model.NewRackList([]rackplan.RackInfo{
				{Code: "02b05", Index: 2},
				{Code: "02b03", Index: 1},
			})
			Expect(s.Rack().Replace(context.TODO(), plan)).To(Succeed())

			var count int
			tx := gormdb.Raw("SELECT COUNT(*) FROM racks;").Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(2))
		})

		It("overwrites the previous plan", func() {
			Expect(s.Rack().Replace(context.TODO(), model.RackList{{Code: "02b03", Index: 1}, {Code: "02b04", Index: 2}})).To(Succeed())
			Expect(s.Rack().Replace(context.TODO(), model.RackList{{Code: "02b10", Index: 1}})).To(Succeed())

			racks, err := s.Rack().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(racks).To(HaveLen(1))
			Expect(racks[0].Code).To(Equal("02b10"))
		})

		It("keeps the previous plan when the new one is rejected", func() {
			Expect(s.Rack().Replace(context.TODO(), model.RackList{{Code: "02b03", Index: 1}})).To(Succeed())

			err := s.Rack().Replace(context.TODO(), model.RackList{{Code: "02b04", Index: 1}, {Code: "02b05", Index: 1}})
			Expect(err).To(HaveOccurred())

			racks, err := s.Rack().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(racks).To(HaveLen(1))
			Expect(racks[0].Code).To(Equal("02b03"))
		})

		It("clears the table with an empty plan", func() {
			Expect(s.Rack().Replace(context.TODO(), model.RackList{{Code: "02b03", Index: 1}})).To(Succeed())
			Expect(s.Rack().Replace(context.TODO(), nil)).To(Succeed())

			count, err := s.Rack().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(BeZero())
		})
	})

	Context("List and Get", func() {
		BeforeEach(func() {
			Expect(s.Rack().Replace(context.TODO(), model.RackList{
				{Code: "02b07", Index: 3},
				{Code: "02b03", Index: 1},
				{Code: "02b05", Index: 2},
			})).To(Succeed())
		})

		It("lists racks ordered by index", func() {
			racks, err := s.Rack().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(racks.ToRackInfos()).To(Equal([]rackplan.RackInfo{
				{Code: "02b03", Index: 1},
				{Code: "02b05", Index: 2},
				{Code: "02b07", Index: 3},
			}))
		})

		It("gets a rack by code", func() {
			rack, err := s.Rack().Get(context.TODO(), "02b05")
			Expect(err).To(BeNil())
			Expect(rack.Index).To(Equal(2))
		})

		It("returns ErrRecordNotFound for an unknown code", func() {
			_, err := s.Rack().Get(context.TODO(), "02b99")
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("counts racks", func() {
			count, err := s.Rack().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(3)))
		})
	})

	Context("transaction", func() {
		It("commits a replace made inside a transaction", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			Expect(s.Rack().Replace(ctx, model.RackList{{Code: "02b03", Index: 1}})).To(Succeed())

			_, err = store.Commit(ctx)
			Expect(err).To(BeNil())

			count, err := s.Rack().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})

		It("rolls back a replace made inside a transaction", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			Expect(s.Rack().Replace(ctx, model.RackList{{Code: "02b03", Index: 1}})).To(Succeed())

			_, err = store.Rollback(ctx)
			Expect(err).To(BeNil())

			count, err := s.Rack().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(BeZero())
		})
	})
})
