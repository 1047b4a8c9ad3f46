package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vireo-rt/vireo/pkg/binding"
	"github.com/vireo-rt/vireo/pkg/reactive"
	"github.com/vireo-rt/vireo/pkg/reconciler"
)

// profile mirrors the shape of the teacher's cmd/vango-bench profiles
// map (named presets for size/duration), adapted from a client/RPS load
// model to an in-process scheduler/reconciler throughput model since
// there is no network hop here to load-generate against.
type profile struct {
	Name     string
	Duration time.Duration
	ListSize int
}

var benchProfiles = map[string]profile{
	"fast":     {Name: "fast", Duration: 2 * time.Second, ListSize: 50},
	"standard": {Name: "standard", Duration: 5 * time.Second, ListSize: 200},
	"stress":   {Name: "stress", Duration: 10 * time.Second, ListSize: 1000},
}

func benchCmd() *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the scheduler and reconciler throughput benchmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := benchProfiles[profileName]
			if !ok {
				return fmt.Errorf("unknown profile %q (want one of fast, standard, stress)", profileName)
			}
			runBench(p)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "fast", "benchmark profile: fast, standard, stress")
	return cmd
}

func runBench(p profile) {
	printBanner()
	info("bench: %s profile (%s, list size %d)", p.Name, p.Duration, p.ListSize)
	fmt.Println()

	flushes := benchFlushThroughput(p.Duration)
	success("scheduler: %d flushes/sec", flushes)

	moves := benchReconcilerThroughput(p.Duration, p.ListSize)
	success("reconciler: %d shuffle-diffs/sec (list size %d)", moves, p.ListSize)
}

// benchFlushThroughput repeatedly writes a signal subscribed by one
// effect and counts how many flushes complete in duration.
func benchFlushThroughput(duration time.Duration) int {
	count := 0
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := reactive.NewSignal(0)
		reactive.CreateEffect(func() reactive.Cleanup {
			s.Get()
			return nil
		})

		deadline := time.Now().Add(duration)
		for i := 0; time.Now().Before(deadline); i++ {
			s.Set(i)
			count++
		}
	})
	return int(float64(count) / duration.Seconds())
}

// benchReconcilerThroughput repeatedly shuffles a keyed list's backing
// slice and counts how many full diff passes complete in duration.
func benchReconcilerThroughput(duration time.Duration, listSize int) int {
	count := 0
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		host := &benchHost{}
		parent := host.CreateFragment()
		anchor := host.CreateMarker()

		items := make([]any, listSize)
		for i := range items {
			items[i] = i
		}
		itemsSig := reactive.NewSignal(items)

		kl := reconciler.New(host, parent, anchor,
			func() []any { return itemsSig.Get() },
			func(item any, index int) any { return item },
			func(item *reactive.VersionedSignal[any], index *reactive.Signal[int], key any) []binding.Node {
				return []binding.Node{host.CreateText(fmt.Sprint(item.PeekValue()))}
			},
		)
		defer kl.Dispose()

		deadline := time.Now().Add(duration)
		cur := items
		for time.Now().Before(deadline) {
			shuffled := append([]any{}, cur...)
			shuffled[0], shuffled[len(shuffled)-1] = shuffled[len(shuffled)-1], shuffled[0]
			itemsSig.Set(shuffled)
			cur = shuffled
			count++
		}
	})
	return int(float64(count) / duration.Seconds())
}

// benchHost is a minimal no-op binding.TreeHost sufficient to drive the
// reconciler without a real DOM.
type benchHost struct{}

func (b *benchHost) CreateElement(tag string) binding.Node { return new(int) }
func (b *benchHost) CreateText(data string) binding.Node   { return new(int) }
func (b *benchHost) CreateMarker() binding.Node            { return new(int) }
func (b *benchHost) CreateFragment() binding.Node          { return new(int) }
func (b *benchHost) SetText(node binding.Node, data string)                   {}
func (b *benchHost) SetAttribute(el binding.Node, name, value string)         {}
func (b *benchHost) SetAttributeNS(el binding.Node, ns, name, value string)   {}
func (b *benchHost) RemoveAttribute(el binding.Node, name string)             {}
func (b *benchHost) GetAttribute(el binding.Node, name string) (string, bool) {
	return "", false
}
func (b *benchHost) SetProperty(el binding.Node, name string, value any) {}
func (b *benchHost) InsertBefore(parent, node, anchor binding.Node)      {}
func (b *benchHost) RemoveChild(parent, node binding.Node)               {}
func (b *benchHost) ObserveConnected(node binding.Node, fn func()) func() {
	fn()
	return func() {}
}
