package dtable

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/d3dwrapper/quiver/d3d12"
)

// hashDescriptorTable derives the dedup-map key for a descriptor table. The
// version tags and the raw handles are hashed independently and combined with
// XOR: two independent 64-bit digests collide less often than one digest of
// the concatenation, and the separate version hash distinguishes "same
// addresses, different generation" tables cheaply.
func hashDescriptorTable(descriptorVersions []uint32, descriptors []d3d12.CPUDescriptorHandle) uint64 {
	return xxhash.Sum64(uint32Bytes(descriptorVersions)) ^ xxhash.Sum64(handleBytes(descriptors))
}

func uint32Bytes(values []uint32) []byte {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(values[0])))
}

func handleBytes(handles []d3d12.CPUDescriptorHandle) []byte {
	if len(handles) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&handles[0])), len(handles)*int(unsafe.Sizeof(handles[0])))
}
