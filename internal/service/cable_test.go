package service_test

import (
	"context"
	"errors"

	"github.com/kubev2v/patchcord-planner/internal/cable"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type brokenDirectory struct{}

func (brokenDirectory) RackIndex(context.Context, string) (int, error) {
	return 0, errors.New("connection refused")
}

func (brokenDirectory) List(context.Context) ([]rackplan.RackInfo, error) {
	return nil, errors.New("connection refused")
}

func ptr(v float64) *float64 {
	return &v
}

func link(rackA string, unitA int, rackB string, unitB int) service.CalculationForm {
	return service.CalculationForm{
		ServerA: service.Endpoint{RackCode: rackA, Unit: unitA},
		ServerB: service.Endpoint{RackCode: rackB, Unit: unitB},
	}
}

var _ = Describe("CableService", func() {
	var srv *service.CableService

	BeforeEach(func() {
		srv = service.NewCableService(rackplan.DefaultPlan(rackplan.DefaultRange()))
	})

	Context("Calculate", func() {
		It("computes a cross-rack link", func() {
			result, err := srv.Calculate(context.TODO(), link("02b03", 10, "02b05", 20))
			Expect(err).To(BeNil())

			Expect(result.ServerA.RackIndex).To(Equal(1))
			Expect(result.ServerB.RackIndex).To(Equal(3))
			Expect(result.Breakdown.SameRack).To(BeFalse())
			Expect(result.Breakdown.VerticalA).To(BeNumerically("~", 1.6, 1e-9))
			Expect(result.Breakdown.Horizontal).To(BeNumerically("~", 2.0, 1e-9))
			Expect(result.Breakdown.VerticalB).To(BeNumerically("~", 2.2, 1e-9))
			Expect(result.Breakdown.SlackAdded).To(BeNumerically("~", 0.4, 1e-9))
			Expect(result.Breakdown.RawTotal).To(BeNumerically("~", 6.2, 1e-9))
			Expect(result.Breakdown.RecommendedPatchCord).To(Equal(7.5))
		})

		It("computes a same-rack link", func() {
			result, err := srv.Calculate(context.TODO(), link("02b04", 1, "02b04", 2))
			Expect(err).To(BeNil())
			Expect(result.Breakdown.SameRack).To(BeTrue())
			Expect(result.Breakdown.RawTotal).To(BeNumerically("~", 0.5, 1e-9))
			Expect(result.Breakdown.RecommendedPatchCord).To(Equal(1.0))
		})

		It("keeps the hostnames", func() {
			form := link("02b03", 10, "02b05", 20)
			form.ServerA.Hostname = "db-01"
			form.ServerB.Hostname = "sw-core"

			result, err := srv.Calculate(context.TODO(), form)
			Expect(err).To(BeNil())
			Expect(result.ServerA.Hostname).To(Equal("db-01"))
			Expect(result.ServerB.Hostname).To(Equal("sw-core"))
		})

		It("uses the slack in centimetres", func() {
			form := link("02b03", 10, "02b05", 20)
			form.SafetySlackCm = ptr(100)

			result, err := srv.Calculate(context.TODO(), form)
			Expect(err).To(BeNil())
			Expect(result.Breakdown.SlackAdded).To(BeNumerically("~", 1.0, 1e-9))
			Expect(result.Breakdown.RawTotal).To(BeNumerically("~", 6.8, 1e-9))
		})

		It("uses the legacy slack in metres", func() {
			form := link("02b03", 10, "02b05", 20)
			form.CrossRackSlackM = ptr(0.1)

			result, err := srv.Calculate(context.TODO(), form)
			Expect(err).To(BeNil())
			Expect(result.Breakdown.RawTotal).To(BeNumerically("~", 5.9, 1e-9))
		})

		It("prefers the slack in centimetres over the legacy key", func() {
			form := link("02b03", 10, "02b05", 20)
			form.SafetySlackCm = ptr(0)
			form.CrossRackSlackM = ptr(2)

			result, err := srv.Calculate(context.TODO(), form)
			Expect(err).To(BeNil())
			Expect(result.Breakdown.SlackAdded).To(BeZero())
		})

		It("rejects a negative slack", func() {
			form := link("02b03", 10, "02b05", 20)
			form.SafetySlackCm = ptr(-5)

			_, err := srv.Calculate(context.TODO(), form)
			Expect(err).To(HaveOccurred())
			var invalid *service.ErrInvalidRequest
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("fails with ErrUnknownRack for a code outside the plan", func() {
			_, err := srv.Calculate(context.TODO(), link("02b03", 10, "09z01", 20))
			Expect(err).To(HaveOccurred())

			var unknown *service.ErrUnknownRack
			Expect(errors.As(err, &unknown)).To(BeTrue())
			Expect(unknown.Code).To(Equal("09z01"))
		})

		It("passes invalid units through as ErrInvalidLocation", func() {
			_, err := srv.Calculate(context.TODO(), link("02b03", 10, "02b05", 51))
			Expect(err).To(HaveOccurred())

			var location *cable.ErrInvalidLocation
			Expect(errors.As(err, &location)).To(BeTrue())
			Expect(location.Location).To(Equal("B"))
			Expect(location.Field).To(Equal("unit"))
		})

		It("wraps directory failures", func() {
			srv = service.NewCableService(brokenDirectory{})
			_, err := srv.Calculate(context.TODO(), link("02b03", 10, "02b05", 20))
			Expect(err).To(HaveOccurred())

			var unknown *service.ErrUnknownRack
			Expect(errors.As(err, &unknown)).To(BeFalse())
		})
	})

	Context("CalculateBatch", func() {
		It("computes every link and the bill of materials", func() {
			result, err := srv.CalculateBatch(context.TODO(), []service.CalculationForm{
				link("02b03", 10, "02b05", 20),
				link("02b04", 1, "02b04", 2),
				link("02b03", 10, "02b05", 20),
			})
			Expect(err).To(BeNil())
			Expect(result.Results).To(HaveLen(3))
			Expect(result.BillOfMaterials.TotalCords).To(Equal(3))
			Expect(result.BillOfMaterials.SameRackLinks).To(Equal(1))
			Expect(result.BillOfMaterials.CrossRackLinks).To(Equal(2))
			Expect(result.BillOfMaterials.TotalMeters).To(BeNumerically("~", 16.0, 1e-9))
		})

		It("reports the failing link", func() {
			_, err := srv.CalculateBatch(context.TODO(), []service.CalculationForm{
				link("02b03", 10, "02b05", 20),
				link("02b03", 0, "02b05", 20),
			})
			Expect(err).To(HaveOccurred())

			var batch *service.ErrBatchLink
			Expect(errors.As(err, &batch)).To(BeTrue())
			Expect(batch.Index).To(Equal(1))

			var location *cable.ErrInvalidLocation
			Expect(errors.As(err, &location)).To(BeTrue())
		})

		It("rejects an empty batch", func() {
			_, err := srv.CalculateBatch(context.TODO(), nil)
			var invalid *service.ErrInvalidRequest
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})
	})

	Context("ListRacks", func() {
		It("lists the directory", func() {
			racks, err := srv.ListRacks(context.TODO())
			Expect(err).To(BeNil())
			Expect(racks).To(HaveLen(16))
			Expect(racks[0]).To(Equal(rackplan.RackInfo{Code: "02b03", Index: 1}))
			Expect(racks[15]).To(Equal(rackplan.RackInfo{Code: "02b18", Index: 16}))
		})

		It("wraps directory errors", func() {
			srv = service.NewCableService(brokenDirectory{})
			_, err := srv.ListRacks(context.TODO())
			Expect(err).To(MatchError(ContainSubstring("failed to list racks")))
		})
	})
})
