package engine_test

import (
	"context"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/registry"
)

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		e = engine.New(factory(), engine.WithLogger(slog.New(slog.DiscardHandler)))
	})

	Describe("lifecycle", func() {
		It("starts idle and refuses actions that need a run", func() {
			Expect(e.State()).To(Equal(engine.Idle))
			for _, act := range []func() (engine.Outcome, error){e.Play, e.Step, e.Reverse, e.FastForward} {
				_, err := act()
				Expect(err).To(MatchError(engine.ErrNotLoaded))
			}
			out, err := e.Pause()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(engine.Unchanged))
		})

		It("stays idle on invalid input", func() {
			err := e.Load("merge_sort", algo.Input{})
			Expect(err).To(MatchError(algo.ErrInvalidInput))
			var ie *algo.InputError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Algorithm).To(Equal("merge_sort"))
			Expect(e.State()).To(Equal(engine.Idle))
			Expect(e.Status().HasProcess).To(BeFalse())
		})

		It("rejects unknown algorithms", func() {
			Expect(e.Load("bogo_sort", algo.Input{Array: []int{1}})).To(MatchError(registry.ErrUnknownAlgorithm))
			Expect(e.State()).To(Equal(engine.Idle))
		})

		It("moves through ready, running, paused and finished", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{2, 1}})).To(Succeed())
			Expect(e.State()).To(Equal(engine.Ready))
			Expect(e.Current().Step).To(Equal(0))

			changed, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeFalse(), "ticks do nothing until play")

			Expect(e.Play()).To(Equal(engine.Changed))
			Expect(e.State()).To(Equal(engine.Running))
			Expect(e.Playback().Mode).To(Equal(engine.ModeRunning))

			changed, err = e.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())
			Expect(e.Current().Step).To(Equal(1))

			Expect(e.Pause()).To(Equal(engine.Changed))
			Expect(e.State()).To(Equal(engine.Paused))
			changed, _ = e.Tick()
			Expect(changed).To(BeFalse())

			Expect(e.Play()).To(Equal(engine.Changed))
			for e.State() == engine.Running {
				_, err := e.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(e.State()).To(Equal(engine.Finished))
			Expect(e.Playback().Mode).To(Equal(engine.ModePaused))
			Expect(e.Current().Array).To(Equal([]int{1, 2}))
		})

		It("applies speed steps per tick", func() {
			Expect(e.Load("heap_sort", algo.Input{Array: []int{9, 8, 7, 6, 5, 4, 3}})).To(Succeed())
			e.SetSpeed(4)
			e.Play()
			_, err := e.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Current().Step).To(Equal(4))
		})

		It("clamps speed", func() {
			Expect(e.SetSpeed(1000)).To(Equal(engine.Changed))
			Expect(e.Playback().Speed).To(Equal(engine.MaxSpeed))
			Expect(e.Dispatch(engine.Action{Kind: engine.SpeedUp})).To(Equal(engine.Boundary))
			e.SetSpeed(1)
			Expect(e.Dispatch(engine.Action{Kind: engine.SpeedDown})).To(Equal(engine.Boundary))
			Expect(e.Dispatch(engine.Action{Kind: engine.SpeedUp})).To(Equal(engine.Changed))
			Expect(e.Playback().Speed).To(Equal(2))
		})
	})

	Describe("merge sort of [5,3,8,1]", func() {
		It("ends sorted with no highlights", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{5, 3, 8, 1}})).To(Succeed())
			Expect(e.FastForward()).To(Equal(engine.Changed))
			f := e.Current()
			Expect(e.State()).To(Equal(engine.Finished))
			Expect(f.Array).To(Equal([]int{1, 3, 5, 8}))
			Expect(f.Regions).To(BeEmpty())
		})
	})

	Describe("step after finished", func() {
		It("is a no-op", func() {
			Expect(e.Load("quick_sort", algo.Input{Array: []int{3, 1, 2}})).To(Succeed())
			_, err := e.FastForward()
			Expect(err).NotTo(HaveOccurred())
			before := e.Current()
			status := e.Status()

			out, err := e.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(engine.Boundary))
			Expect(frame.Equal(before, e.Current())).To(BeTrue())
			Expect(e.Status().Produced).To(Equal(status.Produced))
			Expect(e.State()).To(Equal(engine.Finished))

			Expect(e.Play()).To(Equal(engine.Boundary))
			Expect(e.FastForward()).To(Equal(engine.Boundary))
		})

		It("reaches finished on the final frame", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{1}})).To(Succeed())
			for e.State() != engine.Finished {
				out, err := e.Step()
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(Equal(engine.Changed))
			}
			Expect(e.Current().Op).To(Equal("done"))
			Expect(e.Status().Last).To(Equal(e.Current().Step))
		})
	})

	Describe("reset", func() {
		It("returns to idle after three steps with no residual process", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{5, 3, 8, 1}})).To(Succeed())
			for range 3 {
				Expect(e.Step()).To(Equal(engine.Changed))
			}
			Expect(e.Current().Step).To(Equal(3))

			Expect(e.Reset()).To(Equal(engine.Changed))
			s := e.Status()
			Expect(s.State).To(Equal(engine.Idle))
			Expect(s.HasProcess).To(BeFalse())
			Expect(s.Step).To(Equal(0))
			Expect(s.Produced).To(Equal(0))
			Expect(e.Frames()).To(BeEmpty())
			Expect(e.Current().Array).To(BeNil())

			_, err := e.Step()
			Expect(err).To(MatchError(engine.ErrNotLoaded))

			Expect(e.Reload()).To(Succeed())
			Expect(e.State()).To(Equal(engine.Ready))
			Expect(e.Current().Array).To(Equal([]int{5, 3, 8, 1}))
		})

		It("is unchanged when already idle", func() {
			Expect(e.Reset()).To(Equal(engine.Unchanged))
			Expect(e.Reload()).To(MatchError(engine.ErrNotLoaded))
		})
	})

	for _, strategy := range []engine.Rewind{engine.RewindHistory, engine.RewindReplay} {
		Describe("rewinding with "+string(strategy), func() {
			BeforeEach(func() {
				e = engine.New(factory(), engine.WithRewind(strategy))
			})

			It("reports a boundary at step 0 without error", func() {
				Expect(e.Load("heap_sort", algo.Input{Array: []int{2, 1}})).To(Succeed())
				out, err := e.Reverse()
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(Equal(engine.Boundary))
				Expect(e.Current().Step).To(Equal(0))
			})

			It("leaves finished for paused", func() {
				Expect(e.Load("heap_sort", algo.Input{Array: []int{2, 1, 3}})).To(Succeed())
				e.FastForward()
				last := e.Current().Step
				Expect(e.Reverse()).To(Equal(engine.Changed))
				Expect(e.State()).To(Equal(engine.Paused))
				Expect(e.Current().Step).To(Equal(last - 1))
				Expect(e.Step()).To(Equal(engine.Changed))
				Expect(e.State()).To(Equal(engine.Finished))
			})

			It("replays identical frames after reversing, for every algorithm", func() {
				reg := registry.NewRegistry()
				for _, name := range reg.List() {
					in, err := reg.Sample(name)
					Expect(err).NotTo(HaveOccurred())
					Expect(e.Load(name, in)).To(Succeed())

					forward := forwardFrames(e)
					n := len(forward) - 1
					for _, back := range []int{n, n / 2, 1, 0} {
						_, err := e.Seek(back)
						Expect(err).NotTo(HaveOccurred())
						Expect(frame.Equal(e.Current(), forward[back])).To(BeTrue(), "%s seek %d", name, back)

						again := forwardFrames(e)
						Expect(again).To(HaveLen(len(forward)-back), name)
						for i, f := range again {
							Expect(frame.Equal(f, forward[back+i])).To(BeTrue(), "%s step %d", name, back+i)
						}
					}

					// one frame back, one forward, at every position
					Expect(e.Seek(0)).To(Equal(engine.Changed))
					for k := 1; k <= n; k++ {
						e.Step()
						e.Reverse()
						Expect(frame.Equal(e.Current(), forward[k-1])).To(BeTrue(), "%s reverse at %d", name, k)
						e.Step()
						Expect(frame.Equal(e.Current(), forward[k])).To(BeTrue(), "%s forward at %d", name, k)
					}
				}
			})

			It("reports new frames to observers exactly once", func() {
				rec := &recorder{}
				e.AddObserver(rec)
				Expect(e.Load("quick_sort", algo.Input{Array: []int{4, 2, 3, 1}})).To(Succeed())
				e.FastForward()
				total := e.Current().Step
				e.Seek(0)
				e.FastForward()

				Expect(rec.frames).To(HaveLen(total + 1))
				for i, f := range rec.frames {
					Expect(f.Step).To(Equal(i))
				}
			})

			It("keeps only the current frame when replaying", func() {
				Expect(e.Load("merge_sort", algo.Input{Array: []int{3, 2, 1}})).To(Succeed())
				e.FastForward()
				if strategy == engine.RewindReplay {
					Expect(e.Frames()).To(BeEmpty())
				} else {
					Expect(e.Frames()).To(HaveLen(e.Current().Step + 1))
				}
			})
		})
	}

	Describe("faults", func() {
		It("halts in finished when a board rejects an event", func() {
			Expect(e.Load("scripted", algo.Input{Array: []int{1, 2, -1, 4}})).To(Succeed())
			Expect(e.Step()).To(Equal(engine.Changed))
			Expect(e.Step()).To(Equal(engine.Changed))

			_, err := e.Step()
			var ee *engine.EngineError
			Expect(errors.As(err, &ee)).To(BeTrue())
			Expect(ee.Algorithm).To(Equal("scripted"))
			Expect(ee.Step).To(Equal(3))
			Expect(err).To(MatchError(algo.ErrInconsistent))
			Expect(e.State()).To(Equal(engine.Finished))
			Expect(e.Err()).To(Equal(err))

			Expect(e.Step()).To(Equal(engine.Boundary))
			Expect(e.Current().Array).To(Equal([]int{3}))
		})

		It("converts a panic into an engine error", func() {
			Expect(e.Load("scripted", algo.Input{Array: []int{5, 999}})).To(Succeed())
			e.Play()
			var err error
			Expect(func() {
				for e.State() == engine.Running && err == nil {
					_, err = e.Tick()
				}
			}).NotTo(Panic())
			Expect(err).To(MatchError(engine.ErrPanic))
			Expect(e.State()).To(Equal(engine.Finished))
		})

		It("keeps earlier frames reachable after a fault", func() {
			Expect(e.Load("scripted", algo.Input{Array: []int{1, 1, -1}})).To(Succeed())
			e.FastForward()
			Expect(e.State()).To(Equal(engine.Finished))
			Expect(e.Reverse()).To(Equal(engine.Changed))
			Expect(e.Current().Array).To(Equal([]int{1}))
		})
	})

	Describe("switching algorithms", func() {
		It("keeps the input", func() {
			in := algo.Input{Array: []int{4, 1, 3}}
			Expect(e.Load("merge_sort", in)).To(Succeed())
			e.Step()
			Expect(e.Dispatch(engine.Action{Kind: engine.SelectAlgorithm, Algorithm: "heap_sort"})).To(Equal(engine.Changed))
			Expect(e.Algorithm()).To(Equal("heap_sort"))
			Expect(e.State()).To(Equal(engine.Ready))
			Expect(e.Current().Array).To(Equal([]int{4, 1, 3}))
		})

		It("keeps the previous run when the new algorithm rejects the input", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{2, 1}})).To(Succeed())
			e.Step()
			err := e.Select("dijkstra")
			Expect(err).To(MatchError(algo.ErrInvalidInput))
			Expect(e.Algorithm()).To(Equal("merge_sort"))
			Expect(e.Current().Step).To(Equal(1))
			Expect(e.State()).To(Equal(engine.Paused))
		})
	})

	Describe("headless runs", func() {
		It("runs to the end", func() {
			Expect(e.Load("dijkstra", mustSample("dijkstra"))).To(Succeed())
			f, err := e.RunToEnd(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Graph.Dist).To(Equal([]int64{0, 7, 9, 20, 20, 11}))
			Expect(e.State()).To(Equal(engine.Finished))
		})

		It("resets on cancellation", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{3, 2, 1}})).To(Succeed())
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := e.RunToEnd(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(e.State()).To(Equal(engine.Idle))
		})

		It("stops at the step limit", func() {
			e = engine.New(factory(), engine.WithMaxSteps(3))
			Expect(e.Load("merge_sort", algo.Input{Array: []int{3, 2, 1}})).To(Succeed())
			_, err := e.RunToEnd(context.Background())
			Expect(err).To(MatchError(engine.ErrStepLimit))
			Expect(e.Current().Step).To(Equal(3))
		})

		It("seeks forward and clamps at the end", func() {
			Expect(e.Load("merge_sort", algo.Input{Array: []int{3, 2, 1}})).To(Succeed())
			Expect(e.Seek(2)).To(Equal(engine.Changed))
			Expect(e.Current().Step).To(Equal(2))
			Expect(e.Seek(10000)).To(Equal(engine.Changed))
			Expect(e.State()).To(Equal(engine.Finished))
			Expect(e.Seek(10000)).To(Equal(engine.Boundary))
		})
	})
})

func mustSample(name string) algo.Input {
	in, err := registry.NewRegistry().Sample(name)
	if err != nil {
		panic(err)
	}
	return in
}
