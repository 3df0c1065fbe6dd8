// Copyright 2024 The nitro-prover Authors
// This file is part of nitro-prover.
//
// nitro-prover is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nitro-prover is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nitro-prover. If not, see <http://www.gnu.org/licenses/>.

// nitro-prover is the in-enclave proving service: it verifies EIP-4844 blob
// commitments for incoming blocks and answers each proof request with an NSM
// attestation document.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/taikoxyz/nitro-prover/crypto/eip4844"
	"github.com/taikoxyz/nitro-prover/internal/nsm"
	"github.com/taikoxyz/nitro-prover/pipeline"
	"github.com/taikoxyz/nitro-prover/prover"
	"github.com/taikoxyz/nitro-prover/server"
	"github.com/urfave/cli/v2"
)

var (
	portFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "vsock port to listen on",
		Value: uint(server.DefaultPort),
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity (0=crit, 5=trace)",
		Value: 3,
	}
	mockNSMFlag = &cli.BoolFlag{
		Name:  "mock-nsm",
		Usage: "use a mock attestation device (outside an enclave, for testing only)",
	}
)

func main() {
	app := &cli.App{
		Name:   "nitro-prover",
		Usage:  "Nitro enclave block proving service",
		Flags:  []cli.Flag{portFlag, verbosityFlag, mockNSMFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)), false)
	log.SetDefault(log.NewLogger(handler))
	log.Info("Initializing")

	// Without valid trust parameters no commitment check can ever succeed,
	// so a setup failure aborts the process here rather than on first use.
	if _, err := eip4844.MainnetKzgSettings(); err != nil {
		log.Crit("Failed to load kzg trusted setup", "err", err)
	}

	var device nsm.Device = nsm.NitroDevice{}
	if ctx.Bool(mockNSMFlag.Name) {
		log.Warn("Using mock attestation device, documents prove nothing")
		device = &nsm.MockDevice{}
	}

	pl := pipeline.New(eip4844.NewProofCache())
	srv := server.New(prover.New(device, pl, pl))
	return srv.ListenAndServe(uint32(ctx.Uint(portFlag.Name)))
}
