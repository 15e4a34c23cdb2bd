package store_test

import (
	"context"
	"errors"
	"os"

	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/store"
	"github.com/kubev2v/patchcord-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("rack directory", Ordered, func() {
	var (
		s         store.Store
		directory rackplan.Directory
		tmpDir    string
	)

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "directory-*")
		Expect(err).To(BeNil())

		s = store.NewStore(newTestDB(tmpDir))
		directory = store.NewRackDirectory(s)

		Expect(s.Rack().Replace(context.TODO(), model.RackList{
			{Code: "02b03", Index: 1},
			{Code: "02b04", Index: 2},
		})).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	It("resolves a code to its index", func() {
		idx, err := directory.RackIndex(context.TODO(), " 02b04 ")
		Expect(err).To(BeNil())
		Expect(idx).To(Equal(2))
	})

	It("maps a missing row to ErrUnknownRackCode", func() {
		_, err := directory.RackIndex(context.TODO(), "02b42")
		Expect(err).To(HaveOccurred())

		var unknown *rackplan.ErrUnknownRackCode
		Expect(errors.As(err, &unknown)).To(BeTrue())
		Expect(unknown.Code).To(Equal("02b42"))
	})

	It("lists the stored plan", func() {
		racks, err := directory.List(context.TODO())
		Expect(err).To(BeNil())
		Expect(racks).To(Equal([]rackplan.RackInfo{{Code: "02b03", Index: 1}, {Code: "02b04", Index: 2}}))
	})
})
