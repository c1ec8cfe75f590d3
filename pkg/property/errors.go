package property

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to property errors.
const (
	TextCodeNotFound     = "PROPERTY_NOT_FOUND"
	TextCodeUnsupported  = "PROPERTY_TARGET_UNSUPPORTED"
	TextCodeDecodeFailed = "PROPERTY_DECODE_FAILED"
	TextCodeInvokeFailed = "PROPERTY_INVOKE_FAILED"
)

var (
	// ErrNotFound reports a property or method the target does not expose.
	ErrNotFound = errors.New("property: not found")
	// ErrUnsupportedTarget reports a target that cannot hold named properties.
	ErrUnsupportedTarget = errors.New("property: unsupported target")
	// ErrNotCallable reports a named member that cannot be invoked without
	// arguments.
	ErrNotCallable = errors.New("property: not callable")
)

func notFound(name string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrNotFound, name), goerrors.CategoryValidation, "property not found").
		WithTextCode(TextCodeNotFound)
}

func unsupported(target any) error {
	return goerrors.Wrap(fmt.Errorf("%w: %T", ErrUnsupportedTarget, target), goerrors.CategoryValidation, "property target unsupported").
		WithTextCode(TextCodeUnsupported)
}

func decodeFailed(name string, err error) error {
	return goerrors.Wrap(fmt.Errorf("property: decode %q: %w", name, err), goerrors.CategoryValidation, "property value could not be decoded").
		WithTextCode(TextCodeDecodeFailed)
}

func invokeFailed(name string, err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(fmt.Errorf("property: invoke %q: %w", name, err), goerrors.CategoryCommand, "property invocation failed").
		WithTextCode(TextCodeInvokeFailed)
}
