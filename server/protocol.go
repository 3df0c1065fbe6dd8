// Copyright 2024 The nitro-prover Authors
// This file is part of the nitro-prover library.
//
// The nitro-prover library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The nitro-prover library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the nitro-prover library. If not, see <http://www.gnu.org/licenses/>.

package server

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultPort is the well-known vsock port the prover listens on.
const DefaultPort uint32 = 26666

// MaxMessageSize bounds the declared payload length of one message. A guest
// input is dominated by one hex-encoded blob, well under this cap; anything
// larger is a broken or hostile peer.
const MaxMessageSize = 64 << 20

// Messages are framed as an 8-byte big-endian length prefix followed by
// exactly that many payload bytes.

// SendMessage writes one framed message.
func SendMessage(w io.Writer, payload []byte) error {
	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(payload)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// RecvMessage reads one framed message, requiring the full declared length
// before returning.
func RecvMessage(r io.Reader) ([]byte, error) {
	var prefix [8]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint64(prefix[:])
	if size > MaxMessageSize {
		return nil, fmt.Errorf("declared message length %d exceeds limit %d", size, uint64(MaxMessageSize))
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
