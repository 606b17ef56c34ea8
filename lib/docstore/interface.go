package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IDocStore is the generic interface for performing document operations
// against a named file of a registered Type. All methods classify their
// failures through *Error (see RetCode); data-returning methods yield the
// affected item (or document) as raw JSON.
//
// Surface and main content are passed as the raw strings received on the
// wire; each must contain a single JSON object. They are validated before
// any filesystem access.
type IDocStore interface {
	// Create parses and merges the two content payloads, allocates the
	// next free integer id and appends the item to the Type's array.
	// It returns the stored item including its allocated id.
	Create(typeName, fileRef, surfaceContent, mainContent string) (item json.RawMessage, err error)
	// Get returns the single item with the given id, without mutating
	// the file.
	Get(typeName, fileRef string, id int64) (item json.RawMessage, err error)
	// GetAll returns the whole document in its native root shape,
	// without mutating the file.
	GetAll(typeName, fileRef string) (doc json.RawMessage, err error)
	// Update merges the existing item with both content payloads
	// (existing < surface < main) and forces the id back to the target
	// id. It returns the updated item.
	Update(typeName, fileRef string, id int64, surfaceContent, mainContent string) (item json.RawMessage, err error)
	// Delete removes the first item with the given id.
	Delete(typeName, fileRef string, id int64) (err error)
	// DeleteAll clears the Type's array, keeping the wrapping object
	// (if any) intact.
	DeleteAll(typeName, fileRef string) (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("DocStoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// Errorf creates a new Error with the given code and a formatted message.
func Errorf(code RetCode, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// CodeOf extracts the RetCode from an error. Errors that do not carry a
// code classify as internal.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return RetCInternalError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess         RetCode = iota // 0: Operation executed successfully.
	RetCClientError                    // 1: Bad or missing request field, malformed payload, unknown Type.
	RetCNotFound                       // 2: File, item or Type absent where required.
	RetCCorruptDocument                // 3: Stored file fails to parse or contradicts its declared shape.
	RetCIOFailure                      // 4: Reading or writing the backing file failed.
	RetCInternalError                  // 5: Operation failed due to an internal error.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCClientError:
		return "ClientError"
	case RetCNotFound:
		return "NotFound"
	case RetCCorruptDocument:
		return "CorruptDocument"
	case RetCIOFailure:
		return "IOFailure"
	case RetCInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// HTTPStatus maps a return code onto the status classification used at
// the request/response boundary.
func (c RetCode) HTTPStatus() int {
	switch c {
	case RetCSuccess:
		return 200
	case RetCClientError:
		return 400
	case RetCNotFound:
		return 404
	default:
		return 500
	}
}
