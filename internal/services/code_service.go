package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spinthreads/wheel-backend/internal/models"
	"github.com/spinthreads/wheel-backend/internal/repositories"
)

// CodeService manages purchase code generation and listing. Redemption
// itself lives on the entry ledger (EntryService.CreditCode) because it
// mutates entry weight.
type CodeService struct {
	codeRepo repositories.PurchaseCodeRepository
	newCode  func() string
}

// NewCodeService creates a new CodeService
func NewCodeService(codeRepo repositories.PurchaseCodeRepository) *CodeService {
	return &CodeService{codeRepo: codeRepo, newCode: newCodeString}
}

// GenerateCodes creates a batch of single-use codes awarding the given
// number of entries, valid for ttl from now.
func (s *CodeService) GenerateCodes(ctx context.Context, actor *models.User, count, entries int, ttl time.Duration) ([]*models.PurchaseCode, error) {
	if !Can(actor, CapManageCodes) {
		return nil, ErrForbidden
	}
	if count <= 0 || entries <= 0 {
		return nil, ErrInvalidQuantity
	}

	expiresAt := time.Now().Add(ttl)
	codes := make([]*models.PurchaseCode, 0, count)
	seen := make(map[string]bool, count)
	for len(codes) < count {
		// The short code is a truncated UUID; regenerate the rare in-batch
		// collision. The unique index on the collection backs uniqueness
		// across batches.
		code := s.newCode()
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, &models.PurchaseCode{
			Code:           code,
			EntriesAwarded: entries,
			ExpiresAt:      expiresAt,
		})
	}
	if err := s.codeRepo.CreateMany(ctx, codes); err != nil {
		return nil, fmt.Errorf("failed to store generated codes: %w", err)
	}
	return codes, nil
}

// ListCodes lists codes, newest first
func (s *CodeService) ListCodes(ctx context.Context, actor *models.User, page, limit int) ([]*models.PurchaseCode, error) {
	if !Can(actor, CapManageCodes) {
		return nil, ErrForbidden
	}
	return s.codeRepo.FindAll(ctx, page, limit)
}

// newCodeString derives a short human-typable code from a UUID,
// e.g. "SPIN-1A2B3C4D".
func newCodeString() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SPIN-" + raw[:8]
}
