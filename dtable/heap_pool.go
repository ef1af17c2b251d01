package dtable

import (
	"time"

	"github.com/agilira/go-timecache"
	"github.com/cockroachdb/errors"
	"github.com/d3dwrapper/quiver/d3d12"
	"github.com/d3dwrapper/quiver/descutils"
	"github.com/d3dwrapper/quiver/dtable/internal/utils"
	"golang.org/x/exp/slog"
	"sync/atomic"
)

// NoAllocation is the sentinel returned by allocation methods when no
// descriptor slots could be provided.
const NoAllocation = -1

// HeapPoolEntry is a descriptor heap checked out of (or parked in) a
// HeapPool's free list.
type HeapPoolEntry struct {
	Type           d3d12.DescriptorHeapType
	NumDescriptors int
	Heap           d3d12.DescriptorHeap

	// Stamped on release, used for stale eviction.
	LastUsedFrame uint64
	LastUsedTime  time.Time
}

// HeapPool amortizes the cost of creating shader-visible descriptor heaps
// across frames by keeping released heaps in a free list keyed by type and
// capacity.
type HeapPool struct {
	logger  *slog.Logger
	device  d3d12.Device
	fence   d3d12.FrameFence
	deleter d3d12.DeferredDeleter
	options CreateOptions

	mutex               utils.OptionalMutex
	freeList            []HeapPoolEntry
	numAllocatedEntries int

	viewStats    descutils.Statistics
	samplerStats descutils.Statistics

	// Set once per pool when a full-size view heap overflows, so the
	// diagnostic is not repeated under sustained overflow.
	viewHeapOverflowReported atomic.Bool
}

// NewHeapPool creates a heap pool on top of the provided device services.
//
// fence - the device's frame-completion fence, used to age free-list entries
//
// deleter - the deferred-deletion queue that guarantees heap destruction
// happens only after the GPU has retired all referencing work
//
// options - Optional parameters: it is valid to leave all the fields blank
func NewHeapPool(logger *slog.Logger, device d3d12.Device, fence d3d12.FrameFence, deleter d3d12.DeferredDeleter, options CreateOptions) *HeapPool {
	if options.ViewHeapMaxDescriptors == 0 {
		options.ViewHeapMaxDescriptors = defaultViewHeapMaxDescriptors
	}

	return &HeapPool{
		logger:  logger,
		device:  device,
		fence:   fence,
		deleter: deleter,
		options: options,
		mutex: utils.OptionalMutex{
			UseMutex: options.Flags&CreateExternallySynchronized == 0,
		},
	}
}

// Options returns the options the pool was created with, with defaults
// applied.
func (p *HeapPool) Options() CreateOptions {
	return p.options
}

// AllocateHeap checks a heap of the requested type out of the free list, or
// creates one if no parked heap is large enough. The request is rounded up to
// the next power of two and clamped to the hardware ceiling for the type, to
// enable greater reuse in the pool.
func (p *HeapPool) AllocateHeap(heapType d3d12.DescriptorHeapType, numDescriptors int) (HeapPoolEntry, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	numDescriptors = descutils.Clamp(descutils.NextPow2(numDescriptors), 1, d3d12.MaxDescriptorsForHeapType(heapType))

	p.numAllocatedEntries++

	for entryIndex := 0; entryIndex < len(p.freeList); entryIndex++ {
		entry := p.freeList[entryIndex]
		if entry.Type == heapType && entry.NumDescriptors >= numDescriptors {
			p.freeList[entryIndex] = p.freeList[len(p.freeList)-1]
			p.freeList = p.freeList[:len(p.freeList)-1]

			return entry, nil
		}
	}

	// A compatible heap was not found in the pool, so a new one must be
	// created. Release heaps that were not used for a while first.
	p.releaseStaleEntries(defaultMaxHeapAgeInFrames, defaultMaxHeapAgeInSeconds)

	heapName := "explicit view heap"
	if heapType == d3d12.DescriptorHeapTypeSampler {
		heapName = "explicit sampler heap"
	}
	p.logger.Info("creating descriptor heap", slog.String("Name", heapName), slog.Int("NumDescriptors", numDescriptors))

	heap, err := p.device.CreateDescriptorHeap(d3d12.DescriptorHeapDesc{
		Type:           heapType,
		NumDescriptors: numDescriptors,
		NodeMask:       p.options.NodeMask,
	})
	if err != nil {
		p.numAllocatedEntries--
		return HeapPoolEntry{}, errors.Wrapf(err, "failed to create a %s with %d descriptors", heapName, numDescriptors)
	}
	heap.SetName(heapName)

	p.statsForType(heapType).AddHeap(numDescriptors)

	return HeapPoolEntry{
		Type:           heapType,
		NumDescriptors: numDescriptors,
		Heap:           heap,
	}, nil
}

// ReleaseHeap returns a checked-out entry to the free list, stamping it with
// the current frame fence value and wall-clock time. The caller must
// guarantee the GPU no longer references the heap - use DeferredReleaseHeap
// when that is not already known.
func (p *HeapPool) ReleaseHeap(entry HeapPoolEntry) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.numAllocatedEntries == 0 {
		panic("dtable: ReleaseHeap called on a pool with no checked-out entries")
	}

	entry.LastUsedFrame = p.fence.NextFenceToSignal()
	entry.LastUsedTime = timecache.CachedTime()

	p.freeList = append(p.freeList, entry)

	p.numAllocatedEntries--
}

// DeferredReleaseHeap returns an entry to the free list once the GPU has
// retired all work referencing it.
func (p *HeapPool) DeferredReleaseHeap(entry HeapPoolEntry) {
	p.deleter.DeferredDelete(func() {
		p.ReleaseHeap(entry)
	})
}

// ReleaseStaleEntries destroys every free-list entry whose age exceeds either
// maxAgeInFrames frames or maxAgeInSeconds seconds. The thresholds are
// disjunctive so a stalled frame timeline cannot keep long-unused heaps alive.
func (p *HeapPool) ReleaseStaleEntries(maxAgeInFrames uint64, maxAgeInSeconds float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.releaseStaleEntries(maxAgeInFrames, maxAgeInSeconds)
}

func (p *HeapPool) releaseStaleEntries(maxAgeInFrames uint64, maxAgeInSeconds float64) {
	currentFrame := p.fence.NextFenceToSignal()
	currentTime := timecache.CachedTime()

	entryIndex := 0
	for entryIndex < len(p.freeList) {
		entry := p.freeList[entryIndex]

		if entry.LastUsedFrame+maxAgeInFrames <= currentFrame ||
			currentTime.Sub(entry.LastUsedTime).Seconds() >= maxAgeInSeconds {

			p.statsForType(entry.Type).RemoveHeap(entry.NumDescriptors)

			heap := entry.Heap
			p.deleter.DeferredDelete(heap.Release)

			p.freeList[entryIndex] = p.freeList[len(p.freeList)-1]
			p.freeList = p.freeList[:len(p.freeList)-1]
		} else {
			entryIndex++
		}
	}
}

// FlushFreeList destroys every parked heap via the deferred deleter. Entries
// that are currently checked out are unaffected.
func (p *HeapPool) FlushFreeList() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, entry := range p.freeList {
		p.statsForType(entry.Type).RemoveHeap(entry.NumDescriptors)

		heap := entry.Heap
		p.deleter.DeferredDelete(heap.Release)
	}
	p.freeList = p.freeList[:0]
}

// Destroy releases every parked heap immediately and tears down the pool. It
// is an error to destroy a pool while entries remain checked out.
func (p *HeapPool) Destroy() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	descutils.DebugValidate(p)

	if p.numAllocatedEntries != 0 {
		return errors.Newf("the pool still has %d descriptor heaps that remain checked out", p.numAllocatedEntries)
	}

	for _, entry := range p.freeList {
		p.statsForType(entry.Type).RemoveHeap(entry.NumDescriptors)
		entry.Heap.Release()
	}
	p.freeList = nil

	return nil
}

// Validate checks pool invariants. It is primarily run via
// descutils.DebugValidate in debug builds.
func (p *HeapPool) Validate() error {
	if p.numAllocatedEntries < 0 {
		return errors.Newf("the pool believes %d entries are checked out", p.numAllocatedEntries)
	}

	heapCount := 0
	descriptorCount := 0
	for _, entry := range p.freeList {
		if entry.Heap == nil {
			return errors.New("a free-list entry has no backing heap object")
		}
		heapCount++
		descriptorCount += entry.NumDescriptors
	}

	totalStats := p.viewStats
	totalStats.AddStatistics(&p.samplerStats)
	if heapCount > totalStats.HeapCount {
		return errors.Newf("the free list holds %d heaps but the pool only accounts for %d", heapCount, totalStats.HeapCount)
	}

	return nil
}

// Statistics returns a snapshot of the pool's heap counters for one heap
// type. The counters cover both checked-out and parked heaps.
func (p *HeapPool) Statistics(heapType d3d12.DescriptorHeapType) descutils.Statistics {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return *p.statsForType(heapType)
}

func (p *HeapPool) statsForType(heapType d3d12.DescriptorHeapType) *descutils.Statistics {
	if heapType == d3d12.DescriptorHeapTypeSampler {
		return &p.samplerStats
	}
	return &p.viewStats
}
