// Package ledger persists decision audit events and wizard submissions in SQLite.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type auditEventModel struct {
	ID               uint   `gorm:"primaryKey"`
	Action           string `gorm:"size:64;index"`
	OfferReference   string `gorm:"size:64;index"`
	SliderPercent    int
	MarketValue      string `gorm:"size:32"`
	LumpSum          string `gorm:"size:32"`
	ContractDuration int
	RecordedAt       time.Time `gorm:"index"`
}

func (auditEventModel) TableName() string { return "audit_events" }

type submissionModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	OfferReference string `gorm:"size:64;index"`
	DecisionStatus string `gorm:"size:32"`
	AdvisorChoice  string `gorm:"size:16"`
	DeclineReason  string `gorm:"size:32"`
	DeclineDetails string `gorm:"type:text"`
	Payload        string `gorm:"type:text"`
	SubmittedAt    time.Time
}

func (submissionModel) TableName() string { return "submissions" }

// Ledger stores audit events and submissions through GORM
type Ledger struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite ledger at path
func Open(path string) (*Ledger, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("ledger: path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ledger: failed to create directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to open %s: %w", path, err)
	}
	return newLedger(db)
}

// newLedger migrates the schema on db. The connection is closed when the
// ledger cannot be set up.
func newLedger(db *gorm.DB) (*Ledger, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to access connection: %w", err)
	}
	if err := db.AutoMigrate(&auditEventModel{}, &submissionModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ledger: migration failed: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return &Ledger{db: db}, nil
}

// Close closes the underlying database connection
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores a decision audit event
func (l *Ledger) Record(ctx context.Context, event domain.AuditEvent) error {
	row := auditEventModel{
		Action:           string(event.Action),
		OfferReference:   event.OfferReference,
		SliderPercent:    event.Details.SliderPercent,
		MarketValue:      event.Details.MarketValue.String(),
		LumpSum:          event.Details.LumpSum.String(),
		ContractDuration: event.Details.ContractDuration,
		RecordedAt:       event.RecordedAt,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("ledger: failed to record audit event: %w", err)
	}
	return nil
}

// Submit stores a wizard submission. A duplicate ID is rejected.
func (l *Ledger) Submit(ctx context.Context, sub domain.Submission) error {
	raw, err := json.Marshal(sub.Payload)
	if err != nil {
		return fmt.Errorf("ledger: failed to encode payload: %w", err)
	}
	row := submissionModel{
		ID:             sub.ID,
		OfferReference: sub.OfferReference,
		DecisionStatus: string(sub.Payload.DecisionStatus),
		AdvisorChoice:  string(sub.Payload.AdvisorChoice),
		DeclineReason:  string(sub.Payload.DeclineReason),
		DeclineDetails: sub.Payload.DeclineDetails,
		Payload:        string(raw),
		SubmittedAt:    sub.SubmittedAt,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("ledger: failed to store submission %s: %w", sub.ID, err)
	}
	return nil
}

// AuditEvents lists recorded events, oldest first. An empty reference
// lists every offer; limit <= 0 means no limit.
func (l *Ledger) AuditEvents(ctx context.Context, offerReference string, limit int) ([]domain.AuditEvent, error) {
	q := l.db.WithContext(ctx).Order("recorded_at asc, id asc")
	if offerReference != "" {
		q = q.Where("offer_reference = ?", offerReference)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []auditEventModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("ledger: failed to list audit events: %w", err)
	}

	events := make([]domain.AuditEvent, 0, len(rows))
	for _, row := range rows {
		marketValue, err := decimal.NewFromString(row.MarketValue)
		if err != nil {
			return nil, fmt.Errorf("ledger: audit event %d has invalid market value: %w", row.ID, err)
		}
		lumpSum, err := decimal.NewFromString(row.LumpSum)
		if err != nil {
			return nil, fmt.Errorf("ledger: audit event %d has invalid lump sum: %w", row.ID, err)
		}
		events = append(events, domain.AuditEvent{
			Action:         domain.AuditAction(row.Action),
			OfferReference: row.OfferReference,
			Details: domain.BalanceAdjustmentDetails{
				SliderPercent:    row.SliderPercent,
				MarketValue:      marketValue,
				LumpSum:          lumpSum,
				ContractDuration: row.ContractDuration,
			},
			RecordedAt: row.RecordedAt,
		})
	}
	return events, nil
}

// Submissions lists stored submissions, oldest first
func (l *Ledger) Submissions(ctx context.Context, offerReference string) ([]domain.Submission, error) {
	q := l.db.WithContext(ctx).Order("submitted_at asc")
	if offerReference != "" {
		q = q.Where("offer_reference = ?", offerReference)
	}
	var rows []submissionModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("ledger: failed to list submissions: %w", err)
	}

	subs := make([]domain.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, domain.Submission{
			ID:             row.ID,
			OfferReference: row.OfferReference,
			Payload: domain.SubmissionPayload{
				DeclineReason:  domain.DeclineReason(row.DeclineReason),
				DeclineDetails: row.DeclineDetails,
				DecisionStatus: domain.DecisionStatus(row.DecisionStatus),
				AdvisorChoice:  domain.AdvisorChoice(row.AdvisorChoice),
			},
			SubmittedAt: row.SubmittedAt,
		})
	}
	return subs, nil
}
