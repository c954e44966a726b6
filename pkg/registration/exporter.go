package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/allocation"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exporter turns a round's registrations into a verified artifact and,
// when a store is configured, records it.
type Exporter struct {
	source  AllocationSource
	store   persistence.IRoundPersistence
	logger  *zap.Logger
	workers int
	now     func() time.Time
}

type ExporterOption func(*Exporter)

// WithWorkers hashes tree levels across n goroutines
func WithWorkers(n int) ExporterOption {
	return func(e *Exporter) {
		e.workers = n
	}
}

// WithClock overrides the record timestamp source
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) {
		e.now = now
	}
}

// NewExporter creates an exporter. store may be nil.
func NewExporter(source AllocationSource, store persistence.IRoundPersistence, logger *zap.Logger, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		source: source,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportRound fetches, builds, exports and verifies the allocation tree of a round.
// A round without registrations fails with exporter.ErrEmptyTree.
func (e *Exporter) ExportRound(ctx context.Context, roundId uint64) (*persistence.RoundRecord, error) {
	runId := uuid.New().String()
	info := e.source.Info()
	sugar := e.logger.Sugar().With("roundId", roundId, "runId", runId)

	sugar.Infow("Exporting registration round", "source", info.Source)

	allocs, err := e.source.FetchAllocations(ctx, roundId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations for round %d: %w", roundId, err)
	}
	if len(allocs) == 0 {
		sugar.Warnw("No registrations for round")
		return nil, fmt.Errorf("round %d: %w", roundId, exporter.ErrEmptyTree)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	tree, err := allocation.NewAllocationTree(allocs, merkle.WithWorkers(e.workers))
	if err != nil {
		return nil, fmt.Errorf("failed to build allocation tree for round %d: %w", roundId, err)
	}
	sugar.Infow("Built allocation tree",
		"entries", tree.Len(),
		"depth", tree.Tree().Depth(),
		"root", tree.HexRoot(),
		"duration", time.Since(start),
	)

	artifact, err := tree.Export()
	if err != nil {
		return nil, fmt.Errorf("failed to export round %d: %w", roundId, err)
	}
	if err := artifact.Verify(); err != nil {
		return nil, fmt.Errorf("exported artifact for round %d does not verify: %w", roundId, err)
	}

	record := &persistence.RoundRecord{
		RoundId:             roundId,
		RunId:               runId,
		RegistrationAddress: info.RegistrationAddress,
		ChainId:             info.ChainId,
		Source:              info.Source,
		CreatedAt:           e.now().Unix(),
		Artifact:            artifact,
	}

	if e.store != nil {
		if err := e.store.SaveRound(record); err != nil {
			return nil, fmt.Errorf("failed to persist round %d: %w", roundId, err)
		}
		sugar.Infow("Persisted round record")
	}

	return record, nil
}
