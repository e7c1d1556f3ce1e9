package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"BarPulse/internal/domain/models"
	"BarPulse/internal/domain/repository"
	applogger "BarPulse/pkg/logger"
)

// JournalService persists trade-journal entries through the configured
// backend.
type JournalService struct {
	store  repository.JournalStore
	logger *applogger.Logger
	now    func() time.Time
}

// NewJournalService creates the journal usecase.
func NewJournalService(store repository.JournalStore, logger *applogger.Logger) *JournalService {
	return &JournalService{store: store, logger: logger, now: time.Now}
}

// Create persists a new journal entry and returns it with its generated ID.
func (s *JournalService) Create(ctx context.Context, req *models.JournalCreateRequest) (*models.JournalEntry, error) {
	id, err := newEntryID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	entry := &models.JournalEntry{
		ID:        id,
		Symbol:    req.Symbol,
		Side:      req.Side,
		Entry:     req.Entry,
		Stop:      req.Stop,
		Target:    req.Target,
		Notes:     req.Notes,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("journal entry recorded",
		applogger.String("id", entry.ID),
		applogger.String("symbol", entry.Symbol),
	)
	return entry, nil
}

func newEntryID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
