package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/flatdoc/fdoc/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Marker bytes distinguishing the two message kinds
const (
	markerRequest  byte = 0x01
	markerResponse byte = 0x02
)

// Bit flags to indicate which optional request fields are present
const (
	hasMethod         byte = 1 << 0
	hasType           byte = 1 << 1
	hasFile           byte = 1 << 2
	hasDataID         byte = 1 << 3
	hasSurfaceContent byte = 1 << 4
	hasMainContent    byte = 1 << 5
)

// Bit flags to indicate which optional response fields are present
const (
	hasStatus  byte = 1 << 0
	hasMessage byte = 1 << 1
	hasData    byte = 1 << 2
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) SerializeRequest(req common.Request) ([]byte, error) {
	// Header: marker + flags, fields appended behind it
	result := make([]byte, 2, 2+b.requestSize(req))
	result[0] = markerRequest

	var flags byte
	if req.Method != "" {
		flags |= hasMethod
		result = appendChunk(result, []byte(req.Method))
	}
	if req.Type != "" {
		flags |= hasType
		result = appendChunk(result, []byte(req.Type))
	}
	if req.File != nil {
		flags |= hasFile
		result = appendChunk(result, req.File)
	}
	if req.DataID != nil {
		flags |= hasDataID
		result = appendChunk(result, req.DataID)
	}
	if req.SurfaceContent != "" {
		flags |= hasSurfaceContent
		result = appendChunk(result, []byte(req.SurfaceContent))
	}
	if req.MainContent != "" {
		flags |= hasMainContent
		result = appendChunk(result, []byte(req.MainContent))
	}

	result[1] = flags
	return result, nil
}

func (b binarySerializerImpl) DeserializeRequest(data []byte, req *common.Request) error {
	flags, pos, err := readHeader(data, markerRequest)
	if err != nil {
		return err
	}

	var chunk []byte

	req.Method = ""
	if flags&hasMethod != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("request method: %w", err)
		}
		req.Method = string(chunk)
	}

	req.Type = ""
	if flags&hasType != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("request type: %w", err)
		}
		req.Type = string(chunk)
	}

	req.File = nil
	if flags&hasFile != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("request file: %w", err)
		}
		req.File = append([]byte(nil), chunk...)
	}

	req.DataID = nil
	if flags&hasDataID != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("request data id: %w", err)
		}
		req.DataID = append([]byte(nil), chunk...)
	}

	req.SurfaceContent = ""
	if flags&hasSurfaceContent != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("request surface content: %w", err)
		}
		req.SurfaceContent = string(chunk)
	}

	req.MainContent = ""
	if flags&hasMainContent != 0 {
		if chunk, _, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("request main content: %w", err)
		}
		req.MainContent = string(chunk)
	}

	return nil
}

func (b binarySerializerImpl) SerializeResponse(resp common.Response) ([]byte, error) {
	result := make([]byte, 2, 2+b.responseSize(resp))
	result[0] = markerResponse

	var flags byte
	if resp.Status != "" {
		flags |= hasStatus
		result = appendChunk(result, []byte(resp.Status))
	}
	if resp.Message != "" {
		flags |= hasMessage
		result = appendChunk(result, []byte(resp.Message))
	}
	if resp.Data != nil {
		flags |= hasData
		result = appendChunk(result, resp.Data)
	}

	result[1] = flags
	return result, nil
}

func (b binarySerializerImpl) DeserializeResponse(data []byte, resp *common.Response) error {
	flags, pos, err := readHeader(data, markerResponse)
	if err != nil {
		return err
	}

	var chunk []byte

	resp.Status = ""
	if flags&hasStatus != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("response status: %w", err)
		}
		resp.Status = string(chunk)
	}

	resp.Message = ""
	if flags&hasMessage != 0 {
		if chunk, pos, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("response message: %w", err)
		}
		resp.Message = string(chunk)
	}

	resp.Data = nil
	if flags&hasData != 0 {
		if chunk, _, err = readChunk(data, pos); err != nil {
			return fmt.Errorf("response data: %w", err)
		}
		resp.Data = append([]byte(nil), chunk...)
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// requestSize calculates the field bytes needed for serialization
func (b binarySerializerImpl) requestSize(req common.Request) int {
	size := 0
	for _, field := range [][]byte{
		[]byte(req.Method), []byte(req.Type), req.File, req.DataID,
		[]byte(req.SurfaceContent), []byte(req.MainContent),
	} {
		if len(field) > 0 {
			size += 4 + len(field)
		}
	}
	return size
}

// responseSize calculates the field bytes needed for serialization
func (b binarySerializerImpl) responseSize(resp common.Response) int {
	size := 0
	for _, field := range [][]byte{[]byte(resp.Status), []byte(resp.Message), resp.Data} {
		if len(field) > 0 {
			size += 4 + len(field)
		}
	}
	return size
}

// appendChunk appends a length-prefixed field
func appendChunk(buf, field []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(field)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, field...)
}

// readHeader validates the marker byte and returns the flags
func readHeader(data []byte, marker byte) (flags byte, pos int, err error) {
	if len(data) < 2 {
		return 0, 0, fmt.Errorf("data too short for message header")
	}
	if data[0] != marker {
		return 0, 0, fmt.Errorf("unexpected message marker: 0x%02x", data[0])
	}
	return data[1], 2, nil
}

// readChunk reads one length-prefixed field
func readChunk(data []byte, pos int) ([]byte, int, error) {
	if pos+4 > len(data) {
		return nil, pos, fmt.Errorf("data too short for field length")
	}
	fieldLen := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4
	if pos+fieldLen > len(data) {
		return nil, pos, fmt.Errorf("data too short for field data")
	}
	return data[pos : pos+fieldLen], pos + fieldLen, nil
}
