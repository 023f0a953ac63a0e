package cmd

import (
	"context"
	"fmt"

	"github.com/lawrencejones/bytesink/internal/telem"
	"github.com/lawrencejones/bytesink/pkg/sinks"
	"github.com/lawrencejones/bytesink/pkg/sinks/format"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("printAll", func() {
	var (
		ctx    context.Context
		cancel func()
		inner  *sinks.MemorySink
		out    *format.Sink
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(telem.WithLogger(context.Background(), testLogger))
		inner = sinks.NewMemorySink()
		out = format.New(inner)
	})

	AfterEach(func() {
		cancel()
	})

	It("prints values back to back", func() {
		Expect(printAll(ctx, out, []int64{1, -42, 0}, false)).To(Succeed())
		Expect(inner.String()).To(Equal("1-420"))
	})

	It("prints one value per line with newline", func() {
		Expect(printAll(ctx, out, []int64{1, -42, 0}, true)).To(Succeed())
		Expect(inner.String()).To(Equal("1\n-42\n0\n"))
	})

	Context("when the sink fails", func() {
		BeforeEach(func() {
			calls := 0
			out = format.New(sinks.SinkFunc(func(b byte) error {
				calls++
				if calls > 3 {
					return sinks.TransportError{Err: fmt.Errorf("EPIPE")}
				}

				return inner.WriteByte(b)
			}))
		})

		It("stops at the failing value, keeping the output already written", func() {
			err := printAll(ctx, out, []int64{7, 88, 9}, true)

			Expect(err).To(MatchError(ContainSubstring("failed to print value 88 at index 1")))
			Expect(sinks.Fault(err)).To(Equal("transport"))
			Expect(inner.String()).To(Equal("7\n8"))
		})
	})

	Context("when the context is cancelled", func() {
		It("prints nothing", func() {
			cancel()

			Expect(printAll(ctx, out, []int64{1, 2}, false)).To(MatchError(context.Canceled))
			Expect(inner.Bytes()).To(BeEmpty())
		})
	})
})

var _ = Describe("versionStanza", func() {
	It("renders the build information", func() {
		Expect(versionStanza()).To(ContainSubstring("bytesink Version: dev"))
		Expect(versionStanza()).To(ContainSubstring("Git SHA: none"))
	})
})
