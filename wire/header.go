/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package wire implements the fixed-size handshake header shared by every
// datagram of a multipath connection.
package wire

import (
	"crypto/rand"
	"encoding/binary"

	liberr "github.com/nabbar/multipath/errors"
)

// InitSize is the wire length of an Init record.
const InitSize = 16

// HeaderSize is the wire length of a full Header (Init + has_payload byte).
const HeaderSize = InitSize + 1

// Session is a 64-bit opaque connection identifier, minted by the initiator
// and used as the backlog's join key on the acceptor.
type Session uint64

// NewSession draws a cryptographically random Session, crossing the trust
// boundary between peers that do not otherwise authenticate each other.
func NewSession() (Session, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return Session(binary.BigEndian.Uint64(b[:])), nil
}

// Init is the 16-byte (session, path_count) prefix of every header.
type Init struct {
	Session   Session
	PathCount uint64
}

// Header is the 17-byte Init ‖ has_payload prefix every initiator datagram
// begins with.
type Header struct {
	Init       Init
	HasPayload bool
}

// EncodeInit writes the 16-byte big-endian representation of init.
func EncodeInit(init Init) []byte {
	buf := make([]byte, InitSize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(init.Session))
	binary.BigEndian.PutUint64(buf[8:16], init.PathCount)
	return buf
}

// DecodeInit parses a 16-byte buffer into an Init record. PathCount == 0 is
// a decode error.
func DecodeInit(buf []byte) (Init, error) {
	if len(buf) < InitSize {
		return Init{}, liberr.ReceiveBadPacket.Error()
	}

	pathCount := binary.BigEndian.Uint64(buf[8:16])
	if pathCount == 0 {
		return Init{}, liberr.ReceiveBadPacket.Error()
	}

	return Init{
		Session:   Session(binary.BigEndian.Uint64(buf[0:8])),
		PathCount: pathCount,
	}, nil
}

// EncodeHeader writes the 17-byte Header for init and hasPayload.
func EncodeHeader(init Init, hasPayload bool) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, EncodeInit(init))
	if hasPayload {
		buf[InitSize] = 1
	}
	return buf
}

// DecodeHeader parses a 17-byte buffer into a Header. It rejects buffers
// shorter than HeaderSize, a zero path_count, and any has_payload byte other
// than 0 or 1.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, liberr.ReceiveBadPacket.Error()
	}

	init, err := DecodeInit(buf[:InitSize])
	if err != nil {
		return Header{}, err
	}

	switch buf[InitSize] {
	case 0:
		return Header{Init: init, HasPayload: false}, nil
	case 1:
		return Header{Init: init, HasPayload: true}, nil
	default:
		return Header{}, liberr.ReceiveBadPacket.Error()
	}
}
