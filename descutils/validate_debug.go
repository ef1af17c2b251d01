//go:build debug_desc_utils

package descutils

import "fmt"

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_desc_utils build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugCheckPow2 will verify that the numerical value passed in is a power of two, and panics if it is not.
// This method no-ops unless the debug_desc_utils build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
	err := CheckPow2[T](value, name)
	if err != nil {
		panic(err)
	}
}

// DebugCheckIndex verifies that index lies within [0, limit) and panics if it does not.
// This method no-ops unless the debug_desc_utils build tag is present.
func DebugCheckIndex(index, limit int, name string) {
	if index < 0 || index >= limit {
		panic(fmt.Sprintf("%s index %d is outside the valid range [0, %d)", name, index, limit))
	}
}
