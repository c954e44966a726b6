package main

import (
	"log"
	"os"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "allocation-tree",
		Usage: "Registration allocation Merkle tree tooling",
		Description: `Builds the Merkle commitment to a registration round's allocations and serves proofs.

Each allocation is committed as keccak256(0x00 || index || address || amount) and
pairs of nodes as keccak256(0x01 || min(a,b) || max(a,b)). Only the root is published;
every account claims with its index, amount and sibling path.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvAllocVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build a round's allocation tree and write the proof artifact",
				Flags:  append(buildFlags(), persistenceFlags()...),
				Action: buildCommand,
			},
			{
				Name:  "root",
				Usage: "Print the root of an artifact or listing",
				Flags: []cli.Flag{
					artifactFlag(false),
					listingFlag(),
				},
				Action: rootCommand,
			},
			{
				Name:  "proof",
				Usage: "Print the proof of an (address, amount) allocation",
				Flags: []cli.Flag{
					artifactFlag(false),
					listingFlag(),
					&cli.StringFlag{
						Name:     "address",
						Usage:    "Account address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "amount",
						Usage:    "Allocation amount (base units, decimal)",
						Required: true,
					},
				},
				Action: proofCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify every record of an artifact, or a single claim against a root",
				Flags: []cli.Flag{
					artifactFlag(false),
					&cli.StringFlag{
						Name:  "root",
						Usage: "Root to verify a single claim against",
					},
					&cli.Uint64Flag{
						Name:  "index",
						Usage: "Index of the claimed entry",
					},
					&cli.StringFlag{
						Name:  "address",
						Usage: "Claimed account address",
					},
					&cli.StringFlag{
						Name:  "amount",
						Usage: "Claimed amount",
					},
					&cli.StringSliceFlag{
						Name:  "proof",
						Usage: "Proof element (repeat, bottom to top)",
					},
				},
				Action: verifyCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve proofs of one round over HTTP",
				Flags:  append(serveFlags(), persistenceFlags()...),
				Action: serveCommand,
			},
			{
				Name:   "rounds",
				Usage:  "List rounds kept in the round store",
				Flags:  persistenceFlags(),
				Action: roundsCommand,
			},
		},
	}
}
