package base

import (
	"encoding/binary"
	"io"
	"net"
)

// frameHeaderSize is the fixed size of the frame header:
// - 8 bytes: requestID (uint64, big endian)
// - 4 bytes: status code (uint32, big endian, 0 on requests)
// - 4 bytes: data length (uint32, big endian)
const frameHeaderSize = 16

// writeFrame writes a frame to the connection
func writeFrame(conn net.Conn, requestID uint64, status uint32, data []byte) error {
	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint64(header[:8], requestID)
	binary.BigEndian.PutUint32(header[8:12], status)
	binary.BigEndian.PutUint32(header[12:16], uint32(len(data)))

	b := net.Buffers{header, data}
	_, err := b.WriteTo(conn)
	return err
}

// readFrame reads a frame from the connection using the provided buffer
// If the buffer is too small, it will allocate a new temporary buffer for the data
func readFrame(conn net.Conn, buf []byte) (uint64, uint32, []byte, error) {
	// Check if buffer is large enough for header
	if buf == nil || len(buf) < frameHeaderSize {
		buf = make([]byte, frameHeaderSize)
	}

	// Read header
	if _, err := io.ReadFull(conn, buf[:frameHeaderSize]); err != nil {
		return 0, 0, nil, err
	}

	// Parse header
	requestID := binary.BigEndian.Uint64(buf[:8])
	status := binary.BigEndian.Uint32(buf[8:12])
	contentLength := binary.BigEndian.Uint32(buf[12:16])

	// If no data, return empty slice
	if contentLength == 0 {
		return requestID, status, []byte{}, nil
	}

	// Check if buffer is large enough for data
	if len(buf) < int(contentLength) {
		buf = make([]byte, contentLength)
	}

	// Read data
	if _, err := io.ReadFull(conn, buf[:contentLength]); err != nil {
		return 0, 0, nil, err
	}

	return requestID, status, buf[:contentLength], nil
}
