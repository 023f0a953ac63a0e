package stdout_test

import (
	"sync"

	"github.com/lawrencejones/bytesink/pkg/sinks/stdout"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Default", func() {
	It("returns the same sink on every call", func() {
		Expect(stdout.Default()).NotTo(BeNil())
		Expect(stdout.Default()).To(BeIdenticalTo(stdout.Default()))
	})

	It("builds exactly one sink under concurrent first use", func() {
		var wg sync.WaitGroup
		results := make(chan interface{}, 8)

		for idx := 0; idx < 8; idx++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- stdout.Default()
			}()
		}

		wg.Wait()
		close(results)

		first := stdout.Default()
		for result := range results {
			Expect(result).To(BeIdenticalTo(first))
		}
	})
})
