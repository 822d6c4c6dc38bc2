package dynamo_test

import (
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/dynamo"
)

var _ = Describe("ParallelFor", func() {
	DescribeTable("visits every index exactly once",
		func(n, workers, minChunk int) {
			hits := make([]int32, n)
			dynamo.ParallelFor(n, workers, minChunk, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i := range hits {
				Expect(hits[i]).To(Equal(int32(1)), "index %d", i)
			}
		},
		Entry("empty", 0, 4, 1),
		Entry("serial", 10, 1, 1),
		Entry("below min chunk", 5, 4, 8),
		Entry("even split", 64, 4, 8),
		Entry("ragged split", 101, 7, 3),
		Entry("more workers than indices", 3, 16, 1),
	)
})
