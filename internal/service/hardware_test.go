package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service"
)

var _ = Describe("hardware service", func() {
	var srv *service.HardwareService

	BeforeEach(func() {
		srv = service.NewHardwareService(hardware.Default())
	})

	It("lists local first", func() {
		tiers := srv.List(context.TODO())
		Expect(tiers).To(HaveLen(hardware.Default().Len()))
		Expect(tiers[0].Key).To(Equal(hardware.LocalKey))
	})

	It("gets a tier", func() {
		tier, err := srv.Get(context.TODO(), "p3.2xlarge")
		Expect(err).To(BeNil())
		Expect(tier.CostPerHourUSD).To(BeNumerically("~", 3.06, 1e-9))
	})

	It("returns not found for unknown keys", func() {
		_, err := srv.Get(context.TODO(), "tpu-v5")
		Expect(err).ToNot(BeNil())
		_, ok := err.(*service.ErrResourceNotFound)
		Expect(ok).To(BeTrue())
	})
})
