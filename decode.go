package container

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pixie-sh/errors-go"
)

const timeEncodingFormat = time.RFC3339Nano

// DecodeStruct decodes a configuration node (usually map[string]any) into
// the struct pointed to by to, honouring json tags and RFC3339 time fields.
func DecodeStruct(from any, to any) error {
	if !isPointer(to) {
		return errors.New("destination must be pointer", StructMapMismatchErrorCode)
	}

	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToTimeHook,
				timeToStringHook,
			),
			TagName: "json",
			Result:  to,
		})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder", StructMapMismatchErrorCode)
	}

	err = decoder.Decode(from)
	if err != nil {
		return errors.Wrap(err, "failed to decode", StructMapMismatchErrorCode)
	}

	return nil
}

// Decode is the typed convenience wrapper over DecodeStruct.
func Decode[T any](from any) (T, error) {
	var to T
	return to, DecodeStruct(from, &to)
}

func isPointer(i any) bool {
	if i == nil {
		return false
	}

	return reflect.TypeOf(i).Kind() == reflect.Ptr
}

func stringToTimeHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f == reflect.TypeOf("") && t == reflect.TypeOf(time.Time{}) {
		parsedTime, err := time.Parse(timeEncodingFormat, data.(string))
		if err != nil {
			return nil, err
		}
		return parsedTime, nil
	}

	if f == reflect.TypeOf(map[string]any{}) && t == reflect.TypeOf(time.Time{}) {
		dataCasted, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("data is not a map")
		}

		timeStr, ok := dataCasted["RFC3339"].(string)
		if !ok {
			return nil, fmt.Errorf("RFC3339 key not found or not a string")
		}

		parsedTime, err := time.Parse(timeEncodingFormat, timeStr)
		if err != nil {
			return nil, err
		}
		return parsedTime, nil
	}

	return data, nil
}

func timeToStringHook(f reflect.Type, _ reflect.Type, data any) (any, error) {
	if f == reflect.TypeOf(&time.Time{}) {
		t := data.(*time.Time)
		return map[string]string{"RFC3339": t.UTC().Format(timeEncodingFormat)}, nil
	}

	return data, nil
}
