package dtable

import (
	"github.com/d3dwrapper/quiver/d3d12"
)

// CreateFlags indicate specific pool and cache behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateExternallySynchronized ensures that the heap pool will not be synchronized
	// internally. The consumer must guarantee the pool is used from only one thread at
	// a time or is synchronized by some other mechanism, but performance may improve
	// because the internal mutex is not used.
	CreateExternallySynchronized CreateFlags = 1 << iota

	// CreateDisableSamplerDeduplication turns off the exhaustive cross-worker search
	// for matching sampler tables on dedup-map miss. The search reduces sampler heap
	// usage at the cost of some CPU time, so it is on unless this flag is set.
	CreateDisableSamplerDeduplication
)

func (f CreateFlags) String() string {
	switch f {
	case CreateExternallySynchronized:
		return "CreateExternallySynchronized"
	case CreateDisableSamplerDeduplication:
		return "CreateDisableSamplerDeduplication"
	}
	return "Unknown"
}

const (
	// defaultViewHeapMaxDescriptors is the value used as the view-heap descriptor
	// ceiling when none is provided via CreateOptions. 250k descriptors is roughly
	// 8MB per heap; typical measured usage in large scenes is ~50k.
	defaultViewHeapMaxDescriptors = 250_000

	// Free-list entries unused for this many frames or this many seconds are
	// destroyed before the pool creates a new heap. Either threshold alone
	// triggers eviction.
	defaultMaxHeapAgeInFrames  uint64  = 100
	defaultMaxHeapAgeInSeconds float64 = 5.0
)

// CreateOptions contains optional settings when creating a HeapPool
type CreateOptions struct {
	// Flags indicates specific pool and cache behaviors to activate or deactivate
	Flags CreateFlags

	// ViewHeapMaxDescriptors is the maximum number of descriptors per explicit view
	// descriptor heap. Read-only after pool creation. When a view heap of this size
	// overflows, the error is reported once per pool and subsequent bindings are
	// skipped. Defaults to 250k when 0.
	ViewHeapMaxDescriptors int

	// ReservedViewDescriptorsPerWorker is the number of view descriptors carved out
	// of the view heap for each worker at cache init. Reserved ranges let the common
	// allocation path avoid the shared atomic counter. 0 leaves all allocations on
	// the shared path.
	ReservedViewDescriptorsPerWorker int

	// NodeMask is the device node affinity applied to created descriptor heaps.
	NodeMask uint32

	// BindlessManager reports which resource categories bypass explicit descriptor
	// tables. May be nil, in which case nothing is bindless.
	BindlessManager d3d12.BindlessManager
}
