package edgecache

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/controller/live"
	"github.com/swimfed-admin/swimfed-admin/internal/db/controller/record"
	"github.com/swimfed-admin/swimfed-admin/internal/db/controller/seminar"
)

// The republish helpers recompute the canonical public view of a partition
// and push a fresh snapshot. They are best-effort by contract: every error
// is logged and swallowed here so the database mutation that triggered the
// republish never fails because of the cache layer. A failed republish
// leaves the snapshot stale until the next mutation, which is acceptable
// for a public read cache.

// RepublishLive republishes the single global live-stream partition.
func RepublishLive(ctx context.Context, db *gorm.DB, p Publisher) {
	entries, err := live.PublicList(db)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute live snapshot")
		return
	}

	if err = p.Publish(ctx, LiveKey(), entries); err != nil {
		log.Error().Err(err).Msg("failed to republish live partition")
	}
}

// RepublishRecord republishes one (category, poolsize, sex) record table.
// A mutation that moves a record across partitions must call this for both
// the old and the new partition.
func RepublishRecord(ctx context.Context, db *gorm.DB, p Publisher, part record.Partition) {
	records, err := record.PublicList(db, part)
	if err != nil {
		log.Error().Err(err).
			Int("category", part.Category).Int("poolsize", part.Poolsize).Int("sex", part.Sex).
			Msg("failed to compute record snapshot")
		return
	}

	if err = p.Publish(ctx, RecordKey(part.Category, part.Poolsize, part.Sex), records); err != nil {
		log.Error().Err(err).
			Int("category", part.Category).Int("poolsize", part.Poolsize).Int("sex", part.Sex).
			Msg("failed to republish record partition")
	}
}

// RepublishSeminar republishes one fiscal year of seminars. A mutation that
// moves a seminar across year windows must call this for both years.
func RepublishSeminar(ctx context.Context, db *gorm.DB, p Publisher, fiscalYear int) {
	seminars, err := seminar.PublicList(db, fiscalYear)
	if err != nil {
		log.Error().Err(err).Int("fiscal_year", fiscalYear).
			Msg("failed to compute seminar snapshot")
		return
	}

	if err = p.Publish(ctx, SeminarKey(fiscalYear), seminars); err != nil {
		log.Error().Err(err).Int("fiscal_year", fiscalYear).
			Msg("failed to republish seminar partition")
	}
}
