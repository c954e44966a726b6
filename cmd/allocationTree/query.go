package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/allocation"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/listing"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence/factory"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/urfave/cli/v2"
)

// loadArtifact reads --artifact, or builds the artifact of --listing
func loadArtifact(c *cli.Context) (*exporter.Artifact, error) {
	if path := c.String("artifact"); path != "" {
		return exporter.LoadArtifactFile(path)
	}
	if path := c.String("listing"); path != "" {
		allocs, err := listing.LoadFile(path)
		if err != nil {
			return nil, err
		}
		tree, err := allocation.NewAllocationTree(allocs)
		if err != nil {
			return nil, err
		}
		return tree.Export()
	}
	return nil, fmt.Errorf("one of --artifact or --listing is required")
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rootCommand(c *cli.Context) error {
	artifact, err := loadArtifact(c)
	if err != nil {
		return err
	}
	fmt.Println(artifact.Root)
	return nil
}

func proofCommand(c *cli.Context) error {
	account, err := types.ParseAddress(c.String("address"))
	if err != nil {
		return err
	}
	amount, err := types.ParseAmount(c.String("amount"))
	if err != nil {
		return err
	}

	artifact, err := loadArtifact(c)
	if err != nil {
		return err
	}

	entry, ok := artifact.Find(account, amount.String())
	if !ok {
		return fmt.Errorf("%w: %s, %s", allocation.ErrEntryNotFound, account.Hex(), amount.String())
	}
	return printJSON(entry)
}

func verifyCommand(c *cli.Context) error {
	if c.String("root") == "" {
		artifact, err := loadArtifact(c)
		if err != nil {
			return err
		}
		if err := artifact.Verify(); err != nil {
			return err
		}
		fmt.Printf("ok: %d records verify against %s\n", len(artifact.Entries), artifact.Root)
		return nil
	}

	account, err := types.ParseAddress(c.String("address"))
	if err != nil {
		return err
	}
	amount, err := types.ParseAmount(c.String("amount"))
	if err != nil {
		return err
	}

	valid, err := allocation.VerifyHexAllocation(c.Uint64("index"), account, amount, c.StringSlice("proof"), c.String("root"))
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("claim of %s for %s at index %d does not verify", account.Hex(), amount.String(), c.Uint64("index"))
	}
	fmt.Println("ok")
	return nil
}

func roundsCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	cfg := parsePersistenceConfig(c)
	store, err := factory.NewRoundPersistence(&cfg, l)
	if err != nil {
		return fmt.Errorf("failed to open round store: %w", err)
	}
	if store == nil {
		return fmt.Errorf("--persistence-type is required")
	}
	defer func() { _ = store.Close() }()

	rounds, err := store.ListRounds()
	if err != nil {
		return err
	}

	for _, r := range rounds {
		entries := 0
		if r.Artifact != nil {
			entries = len(r.Artifact.Entries)
		}
		fmt.Printf("%d\t%s\t%d entries\t%s\t%s\n",
			r.RoundId, r.Root(), entries, time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339), r.Source)
	}
	return nil
}
