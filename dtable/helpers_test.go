package dtable_test

import (
	"context"
	"sync"
	"testing"

	"github.com/d3dwrapper/quiver/d3d12"
	"github.com/d3dwrapper/quiver/dtable"
	"golang.org/x/exp/slog"
)

const testDescriptorStride = 32

// fakeHeap is an in-memory stand-in for a driver descriptor heap. Copied
// descriptors land in slots so round trips can be verified.
type fakeHeap struct {
	device   *fakeDevice
	desc     d3d12.DescriptorHeapDesc
	name     string
	cpuBase  uint64
	gpuBase  uint64
	slots    []d3d12.CPUDescriptorHandle
	released bool
}

func (h *fakeHeap) Desc() d3d12.DescriptorHeapDesc { return h.desc }

func (h *fakeHeap) CPUDescriptorHandleForHeapStart() d3d12.CPUDescriptorHandle {
	return d3d12.CPUDescriptorHandle{Ptr: h.cpuBase}
}

func (h *fakeHeap) GPUDescriptorHandleForHeapStart() d3d12.GPUDescriptorHandle {
	return d3d12.GPUDescriptorHandle{Ptr: h.gpuBase}
}

func (h *fakeHeap) SetName(name string) { h.name = name }

func (h *fakeHeap) Release() {
	h.device.mu.Lock()
	defer h.device.mu.Unlock()
	h.released = true
}

// fakeDevice implements d3d12.Device over plain slices.
type fakeDevice struct {
	mu        sync.Mutex
	heaps     []*fakeHeap
	nextBase  uint64
	copyCount int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{nextBase: 0x10000}
}

func (d *fakeDevice) CreateDescriptorHeap(desc d3d12.DescriptorHeapDesc) (d3d12.DescriptorHeap, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	heap := &fakeHeap{
		device:  d,
		desc:    desc,
		cpuBase: d.nextBase,
		gpuBase: d.nextBase | 0x8000_0000_0000_0000,
		slots:   make([]d3d12.CPUDescriptorHandle, desc.NumDescriptors),
	}
	d.nextBase += uint64(desc.NumDescriptors*testDescriptorStride) + 0x10000
	d.heaps = append(d.heaps, heap)
	return heap, nil
}

func (d *fakeDevice) DescriptorHandleIncrementSize(heapType d3d12.DescriptorHeapType) int {
	return testDescriptorStride
}

func (d *fakeDevice) CopyDescriptors(dest d3d12.CPUDescriptorHandle, src []d3d12.CPUDescriptorHandle, heapType d3d12.DescriptorHeapType) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, heap := range d.heaps {
		limit := heap.cpuBase + uint64(len(heap.slots)*testDescriptorStride)
		if dest.Ptr >= heap.cpuBase && dest.Ptr < limit {
			index := int(dest.Ptr-heap.cpuBase) / testDescriptorStride
			copy(heap.slots[index:index+len(src)], src)
			d.copyCount++
			return
		}
	}

	panic("fakeDevice: CopyDescriptors destination does not belong to any created heap")
}

func (d *fakeDevice) createCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.heaps)
}

func (d *fakeDevice) copies() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copyCount
}

// fakeFence is a frame fence whose value tests advance by hand.
type fakeFence struct {
	mu    sync.Mutex
	value uint64
}

func (f *fakeFence) NextFenceToSignal() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *fakeFence) advance(frames uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value += frames
}

// immediateDeleter runs deferred deletions synchronously, as if the GPU had
// already retired all work.
type immediateDeleter struct{}

func (immediateDeleter) DeferredDelete(fn func()) { fn() }

// recordingHandler is a slog handler that retains records for assertions.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) countAtLevel(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, record := range h.records {
		if record.Level == level {
			count++
		}
	}
	return count
}

type poolSetup struct {
	pool    *dtable.HeapPool
	device  *fakeDevice
	fence   *fakeFence
	handler *recordingHandler
}

func newTestPool(t *testing.T, options dtable.CreateOptions) poolSetup {
	t.Helper()

	device := newFakeDevice()
	fence := &fakeFence{value: 1}
	handler := &recordingHandler{}

	pool := dtable.NewHeapPool(slog.New(handler), device, fence, immediateDeleter{}, options)

	return poolSetup{
		pool:    pool,
		device:  device,
		fence:   fence,
		handler: handler,
	}
}

func handles(ptrs ...uint64) []d3d12.CPUDescriptorHandle {
	result := make([]d3d12.CPUDescriptorHandle, len(ptrs))
	for i, ptr := range ptrs {
		result[i] = d3d12.CPUDescriptorHandle{Ptr: ptr}
	}
	return result
}
