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

// Package server accepts proof requests over a vsock channel, one connection
// at a time, and answers each with an attestation proof.
package server

import (
	"encoding/json"
	"errors"
	"net"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mdlayher/vsock"
	"github.com/taikoxyz/nitro-prover/input"
	"github.com/taikoxyz/nitro-prover/prover"
)

// Server drives the prover from a point-to-point listener. Connections are
// served to completion in accept order; a failing or malicious client costs
// only its own connection.
type Server struct {
	prover *prover.Prover
}

// New returns a server answering requests with the given prover.
func New(p *prover.Prover) *Server {
	return &Server{prover: p}
}

// ListenAndServe binds the vsock port and runs the accept loop until the
// listener fails.
func (s *Server) ListenAndServe(port uint32) error {
	l, err := vsock.Listen(port, nil)
	if err != nil {
		return err
	}
	log.Info("Listener socket bound, starting main loop", "port", port)
	return s.Serve(l)
}

// Serve runs the sequential accept loop on l. Per-connection failures are
// logged and the connection abandoned; the loop keeps accepting. Serve
// returns nil once l is closed.
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("Accept failed", "err", err)
			continue
		}
		log.Info("Received new proof request")
		s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	data, err := RecvMessage(conn)
	if err != nil {
		log.Warn("Failed to read guest input from socket", "err", err)
		return
	}
	var guestInput input.GuestInput
	if err := json.Unmarshal(data, &guestInput); err != nil {
		log.Warn("Provided bytes are not a json serialized guest input", "err", err)
		return
	}

	proof, err := s.prover.Prove(&guestInput)
	if err != nil {
		log.Warn("Failed to generate nitro proof", "block", guestInput.BlockNumber, "err", err)
		return
	}
	payload, err := json.Marshal(proof)
	if err != nil {
		log.Warn("Failed to serialize proof", "block", guestInput.BlockNumber, "err", err)
		return
	}
	if err := SendMessage(conn, payload); err != nil {
		log.Warn("Failed to write proof back into socket, client disconnected?", "err", err)
	}
}
