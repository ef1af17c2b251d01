//go:build desc_full_compare

package dtable

// fullCompareEnabled controls whether dedup-map hits are re-validated against
// the shadow descriptor array instead of trusting the 64-bit digest alone.
// Enabled by the desc_full_compare build tag.
const fullCompareEnabled = true
