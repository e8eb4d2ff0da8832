package container

import "reflect"

// SafeTypeAssert asserts an untyped resolved value to T, tolerating a
// pointer/non-pointer mismatch between the registered value and the
// requested type. Returns the zero value of T and false when no conversion
// applies.
func SafeTypeAssert[T any](unknown any) (T, bool) {
	typed, ok := unknown.(T)
	if ok {
		return typed, true
	}

	targetType := reflect.TypeOf((*T)(nil)).Elem()
	sourceType := reflect.TypeOf(unknown)
	if sourceType == nil {
		return typed, false
	}

	// *X registered, X requested
	if sourceType.Kind() == reflect.Ptr && targetType.Kind() != reflect.Ptr && sourceType.Elem() == targetType {
		typed, ok = reflect.ValueOf(unknown).Elem().Interface().(T)
		return typed, ok
	}

	// X registered, *X requested
	if targetType.Kind() == reflect.Ptr && sourceType.Kind() != reflect.Ptr && targetType.Elem() == sourceType {
		ptr := reflect.New(sourceType)
		ptr.Elem().Set(reflect.ValueOf(unknown))
		typed, ok = ptr.Interface().(T)
		return typed, ok
	}

	return typed, false
}
