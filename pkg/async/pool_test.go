package async_test

import (
	"context"
	"runtime"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dtex/neuron/pkg/async"
)

var _ = Describe("Pool", func() {
	var p *async.Pool

	AfterEach(func() {
		if p != nil {
			p.Close()
		}
	})

	Describe("Submit", func() {
		It("should return a future carrying the result", func() {
			p = async.NewPool(1)

			future := p.Submit(func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result async.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
			Expect(result.Err).NotTo(HaveOccurred())
		})

		It("should report a panic as an error", func() {
			p = async.NewPool(1)

			future := p.Submit(func(ctx context.Context) (any, error) {
				panic("boom")
			})

			var result async.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("boom")))
		})

		It("should hand the result to Then", func() {
			p = async.NewPool(1)

			got := make(chan any, 1)
			p.Submit(func(ctx context.Context) (any, error) {
				return 42, nil
			}).Then(func(r async.Result[any]) {
				got <- r.Data
			})

			Eventually(got, 2*time.Second).Should(Receive(Equal(42)))
		})
	})

	Describe("Ordering", func() {
		It("should apply work in submission order with a single slot", func() {
			// Arrange
			p = async.NewPool(1)
			var mu sync.Mutex
			order := []int{}

			// Act
			for i := range 50 {
				p.Submit(func(ctx context.Context) (any, error) {
					mu.Lock()
					defer mu.Unlock()
					order = append(order, i)
					return nil, nil
				})
			}
			Expect(p.Drain(context.Background())).To(Succeed())

			// Assert
			mu.Lock()
			defer mu.Unlock()
			Expect(order).To(HaveLen(50))
			for i, v := range order {
				Expect(v).To(Equal(i))
			}
		})

		It("should run work concurrently up to the pool size", func() {
			p = async.NewPool(3)

			var mu sync.Mutex
			running, peak := 0, 0
			release := make(chan struct{})
			for range 6 {
				p.Submit(func(ctx context.Context) (any, error) {
					mu.Lock()
					running++
					if running > peak {
						peak = running
					}
					mu.Unlock()
					<-release
					mu.Lock()
					running--
					mu.Unlock()
					return nil, nil
				})
			}

			Eventually(func() int {
				mu.Lock()
				defer mu.Unlock()
				return running
			}, 2*time.Second, 10*time.Millisecond).Should(Equal(3))
			close(release)

			Eventually(func() int {
				mu.Lock()
				defer mu.Unlock()
				return running
			}, 2*time.Second, 10*time.Millisecond).Should(BeZero())
			Expect(peak).To(Equal(3))
		})
	})

	Describe("Drain", func() {
		It("should give up when the context is done", func() {
			p = async.NewPool(1)

			unblock := make(chan struct{})
			defer close(unblock)
			p.Submit(func(ctx context.Context) (any, error) {
				<-unblock
				return nil, nil
			})

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			Expect(p.Drain(ctx)).To(MatchError(context.DeadlineExceeded))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			p = async.NewPool(1)

			cancelled := make(chan bool, 1)
			future := p.Submit(func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when Submit is called after Close", func() {
			p = async.NewPool(1)
			p.Close()

			future := p.Submit(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result async.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should answer pending work with canceled", func() {
			p = async.NewPool(1)

			started := make(chan struct{})
			p.Submit(func(ctx context.Context) (any, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			})
			Eventually(started, 1*time.Second).Should(BeClosed())

			pending := p.Submit(func(ctx context.Context) (any, error) {
				return "never", nil
			})
			p.Close()
			p = nil // prevent AfterEach from closing again

			var result async.Result[any]
			Eventually(pending.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			p = async.NewPool(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			p.Submit(func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			})
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				p.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			p = nil // prevent AfterEach from closing again
		})

		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			p = async.NewPool(4)

			for i := 0; i < 200; i++ {
				p.Submit(func(ctx context.Context) (any, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				})
			}

			time.Sleep(100 * time.Millisecond)
			p.Close()
			p = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})
})
