package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
	"github.com/zhwei-dev/jizhang_backend/internal/utils"
)

// importErrorSampleLimit caps how many row errors are kept in the batch audit
// entry; the full error list still goes back to the caller.
const importErrorSampleLimit = 10

const transactionEntityType = "transaction"

// TransactionService is the posting engine. It owns validation, exchange rate
// resolution, the derived canonical amount, and the audit trail entries for
// every posting mutation.
type TransactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	rateResolver portssvc.RateLookupSvc
	auditor      portssvc.AuditRecorderSvc
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	rateResolver portssvc.RateLookupSvc,
	auditor portssvc.AuditRecorderSvc,
) *TransactionService {
	return &TransactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		rateResolver: rateResolver,
		auditor:      auditor,
	}
}

// CreateTransaction validates the request, resolves the exchange rate,
// derives the canonical amount and persists the transaction. The audit entry
// is recorded after the create succeeds; an audit failure is logged but never
// rolls the posting back.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.OriginalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	currency, ok := domain.ParseCurrency(req.Currency)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported currency: %s", apperrors.ErrValidation, req.Currency)
	}

	txnType, ok := domain.ParseTransactionType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: invalid transaction type: %s", apperrors.ErrValidation, req.Type)
	}

	if err := s.validateCategory(ctx, req.CategoryID, userID, txnType); err != nil {
		return nil, err
	}

	rate, err := s.rateResolver.ResolveRate(ctx, req.Date, currency, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OriginalAmount: req.OriginalAmount,
		Currency:       currency,
		ExchangeRate:   rate,
		AmountCNY:      req.OriginalAmount.Mul(rate),
		Type:           txnType,
		Date:           req.Date,
		Description:    strings.TrimSpace(req.Description),
		Notes:          strings.TrimSpace(req.Notes),
		CategoryID:     req.CategoryID,
		UserID:         userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.auditor.Record(ctx, portssvc.AuditRecordInput{
		Action:     domain.AuditCreateTransaction,
		UserID:     userID,
		EntityType: transactionEntityType,
		EntityID:   txn.TransactionID,
		Details: map[string]any{
			"type":           string(txn.Type),
			"originalAmount": txn.OriginalAmount.String(),
			"currency":       string(txn.Currency),
			"amountCNY":      txn.AmountCNY.String(),
			"categoryID":     txn.CategoryID,
		},
	}); err != nil {
		s.LogError(ctx, err, "failed to audit transaction create", "transaction_id", txn.TransactionID)
	}

	s.LogInfo(ctx, "transaction created",
		"transaction_id", txn.TransactionID,
		"amount", utils.FormatAmount(txn.AmountCNY, domain.CanonicalCurrency),
	)

	return &txn, nil
}

// GetTransaction retrieves one of the owner's transactions by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction belongs to another user", apperrors.ErrForbidden)
	}
	return txn, nil
}

// ListTransactions retrieves the owner's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction applies a partial update. When amount, currency, date or
// the manual rate change, the exchange rate is re-resolved and the canonical
// amount recomputed so the stored triple stays consistent.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID, userID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction for update: %w", err)
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction belongs to another user", apperrors.ErrForbidden)
	}

	needsReprice := false

	if req.OriginalAmount != nil {
		if req.OriginalAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		txn.OriginalAmount = *req.OriginalAmount
		needsReprice = true
	}
	if req.Currency != nil {
		currency, ok := domain.ParseCurrency(*req.Currency)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported currency: %s", apperrors.ErrValidation, *req.Currency)
		}
		txn.Currency = currency
		needsReprice = true
	}
	if req.Date != nil {
		txn.Date = *req.Date
		needsReprice = true
	}
	if strings.TrimSpace(req.ExchangeRate) != "" {
		needsReprice = true
	}
	if req.Type != nil {
		txnType, ok := domain.ParseTransactionType(*req.Type)
		if !ok {
			return nil, fmt.Errorf("%w: invalid transaction type: %s", apperrors.ErrValidation, *req.Type)
		}
		txn.Type = txnType
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.CategoryID != nil || req.Type != nil {
		if err := s.validateCategory(ctx, txn.CategoryID, userID, txn.Type); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.Notes != nil {
		txn.Notes = strings.TrimSpace(*req.Notes)
	}

	if needsReprice {
		rate, err := s.rateResolver.ResolveRate(ctx, txn.Date, txn.Currency, req.ExchangeRate)
		if err != nil {
			return nil, err
		}
		txn.ExchangeRate = rate
		txn.AmountCNY = txn.OriginalAmount.Mul(rate)
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// DeleteTransaction records a full pre-delete snapshot in the audit trail and
// then hard-deletes the transaction. When the audit entry cannot be written
// the delete is aborted; a vanished row with no trace is worse than a failed
// delete.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID, userID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction for delete: %w", err)
	}
	if txn.UserID != userID {
		return fmt.Errorf("%w: transaction belongs to another user", apperrors.ErrForbidden)
	}

	if err := s.auditor.Record(ctx, portssvc.AuditRecordInput{
		Action:     domain.AuditDeleteTransaction,
		UserID:     userID,
		EntityType: transactionEntityType,
		EntityID:   txn.TransactionID,
		Details: map[string]any{
			"type":           string(txn.Type),
			"originalAmount": txn.OriginalAmount.String(),
			"currency":       string(txn.Currency),
			"exchangeRate":   txn.ExchangeRate.String(),
			"amountCNY":      txn.AmountCNY.String(),
			"date":           txn.Date.Format("2006-01-02"),
			"description":    txn.Description,
			"notes":          txn.Notes,
			"categoryID":     txn.CategoryID,
		},
	}); err != nil {
		return fmt.Errorf("failed to audit transaction delete, aborting: %w", err)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// ImportTransactions posts rows independently; a bad row is reported and
// skipped, never aborting the batch. Row numbers in errors count the header
// as row 1, so the first data row is row 2. One audit entry summarizes the
// whole batch with up to 10 sampled errors.
func (s *TransactionService) ImportTransactions(ctx context.Context, userID string, rows []dto.TransactionRow) (*dto.ImportResult, error) {
	categories, err := s.categoryRepo.FindCategoriesByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for import: %w", err)
	}

	prefetched := s.prefetchImportRates(ctx, rows)

	result := &dto.ImportResult{Errors: []dto.ImportRowError{}}

	for i, row := range rows {
		rowNumber := i + 2

		if err := s.importRow(ctx, userID, row, categories, prefetched); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row:   rowNumber,
				Error: err.Error(),
				Data:  row,
			})
			continue
		}
		result.Success++
	}

	errorSummary := make([]string, 0, importErrorSampleLimit)
	for _, rowErr := range result.Errors {
		if len(errorSummary) == importErrorSampleLimit {
			break
		}
		errorSummary = append(errorSummary, fmt.Sprintf("row %d: %s", rowErr.Row, rowErr.Error))
	}

	if err := s.auditor.Record(ctx, portssvc.AuditRecordInput{
		Action: domain.AuditImportTransactions,
		UserID: userID,
		Details: map[string]any{
			"totalRows":    len(rows),
			"successCount": result.Success,
			"failedCount":  result.Failed,
			"errorSummary": errorSummary,
		},
	}); err != nil {
		s.LogError(ctx, err, "failed to audit transaction import", "user_id", userID)
	}

	return result, nil
}

// importRateKey identifies one (day, currency) rate lookup within a batch.
func importRateKey(date time.Time, currency domain.Currency) string {
	return date.Format("2006-01-02") + "-" + string(currency)
}

// prefetchImportRates batch-loads the cached rates for every distinct
// (day, currency) key in the batch, so rows sharing a key don't trigger one
// lookup each. Rows with a manual rate, an unparseable date/currency, or the
// canonical currency need no lookup and are skipped; a failed prefetch is not
// fatal since every row can still resolve its rate individually.
func (s *TransactionService) prefetchImportRates(ctx context.Context, rows []dto.TransactionRow) map[string]decimal.Decimal {
	seen := make(map[string]domain.RateQuery)
	for _, row := range rows {
		if strings.TrimSpace(row.ExchangeRate) != "" {
			continue
		}
		currency, ok := domain.ParseCurrency(row.Currency)
		if !ok || currency.IsCanonical() {
			continue
		}
		date, err := parseImportDate(strings.TrimSpace(row.Date))
		if err != nil {
			continue
		}
		query := domain.RateQuery{
			Date:         domain.NormalizeRateDate(date),
			FromCurrency: currency,
			ToCurrency:   domain.CanonicalCurrency,
		}
		seen[importRateKey(query.Date, currency)] = query
	}
	if len(seen) == 0 {
		return nil
	}

	queries := make([]domain.RateQuery, 0, len(seen))
	for _, query := range seen {
		queries = append(queries, query)
	}

	rates, err := s.rateResolver.GetRates(ctx, queries)
	if err != nil {
		s.LogError(ctx, err, "failed to prefetch rates for import")
		return nil
	}

	prefetched := make(map[string]decimal.Decimal, len(rates))
	for _, cached := range rates {
		prefetched[importRateKey(cached.Date, cached.FromCurrency)] = cached.Rate
	}
	return prefetched
}

// importRow validates and posts a single import row.
func (s *TransactionService) importRow(ctx context.Context, userID string, row dto.TransactionRow, categories []domain.Category, prefetched map[string]decimal.Decimal) error {
	dateStr := strings.TrimSpace(row.Date)
	if dateStr == "" {
		return fmt.Errorf("date cannot be empty")
	}
	date, err := parseImportDate(dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %s", dateStr)
	}

	txnType, ok := domain.ParseTransactionType(row.Type)
	if !ok {
		return fmt.Errorf("invalid type: %s, expected INCOME or EXPENSE", row.Type)
	}

	categoryID, err := resolveImportCategory(categories, row.ParentCategory, row.ChildCategory, txnType)
	if err != nil {
		return err
	}

	amountStr := strings.TrimSpace(row.Amount)
	if amountStr == "" {
		return fmt.Errorf("amount cannot be empty")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount: %s", amountStr)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive")
	}

	currency, ok := domain.ParseCurrency(row.Currency)
	if !ok {
		return fmt.Errorf("unsupported currency: %s", strings.TrimSpace(row.Currency))
	}

	var rate decimal.Decimal
	cached, hit := prefetched[importRateKey(domain.NormalizeRateDate(date), currency)]
	if hit && strings.TrimSpace(row.ExchangeRate) == "" && !currency.IsCanonical() {
		rate = cached
	} else {
		rate, err = s.rateResolver.ResolveRate(ctx, date, currency, row.ExchangeRate)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OriginalAmount: amount,
		Currency:       currency,
		ExchangeRate:   rate,
		AmountCNY:      amount.Mul(rate),
		Type:           txnType,
		Date:           date,
		Description:    strings.TrimSpace(row.Description),
		Notes:          strings.TrimSpace(row.Notes),
		CategoryID:     categoryID,
		UserID:         userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}
	return nil
}

// ExportTransactions emits all of the owner's transactions as structured rows
// with category names resolved, and audits the export.
func (s *TransactionService) ExportTransactions(ctx context.Context, userID string) ([]dto.TransactionRow, error) {
	txns, err := s.txnRepo.FindTransactionsByUser(ctx, userID, domain.TransactionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for export: %w", err)
	}

	categories, err := s.categoryRepo.FindCategoriesByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for export: %w", err)
	}
	catByID := make(map[string]domain.Category, len(categories))
	for _, cat := range categories {
		catByID[cat.CategoryID] = cat
	}

	rows := make([]dto.TransactionRow, 0, len(txns))
	for _, txn := range txns {
		var parentName, childName string
		if cat, ok := catByID[txn.CategoryID]; ok {
			if cat.IsTopLevel() {
				parentName = cat.Name
			} else {
				childName = cat.Name
				if parent, ok := catByID[*cat.ParentID]; ok {
					parentName = parent.Name
				}
			}
		}

		rows = append(rows, dto.TransactionRow{
			Date:           txn.Date.Format("2006-01-02"),
			Type:           string(txn.Type),
			ParentCategory: parentName,
			ChildCategory:  childName,
			Description:    txn.Description,
			Amount:         txn.OriginalAmount.String(),
			Currency:       string(txn.Currency),
			ExchangeRate:   utils.FormatRate(txn.ExchangeRate),
			AmountCNY:      txn.AmountCNY.String(),
			Notes:          txn.Notes,
		})
	}

	if err := s.auditor.Record(ctx, portssvc.AuditRecordInput{
		Action: domain.AuditExportTransactions,
		UserID: userID,
		Details: map[string]any{
			"transactionCount": len(txns),
			"exportDate":       time.Now().Format(time.RFC3339),
		},
	}); err != nil {
		s.LogError(ctx, err, "failed to audit transaction export", "user_id", userID)
	}

	return rows, nil
}

// validateCategory checks that the category exists, is owned by the user and
// matches the transaction type.
func (s *TransactionService) validateCategory(ctx context.Context, categoryID, userID string, txnType domain.TransactionType) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
	}
	if category.UserID != userID {
		return fmt.Errorf("%w: category belongs to another user", apperrors.ErrForbidden)
	}
	if category.Type != txnType {
		return fmt.Errorf("%w: category type %s does not match transaction type %s", apperrors.ErrValidation, category.Type, txnType)
	}
	return nil
}

// resolveImportCategory maps the (parent, child) name pair of an import row
// to a category ID. A named child must exist under the named parent with the
// matching type; with no child name the parent itself is used.
func resolveImportCategory(categories []domain.Category, parentName, childName string, txnType domain.TransactionType) (string, error) {
	parentName = strings.TrimSpace(parentName)
	childName = strings.TrimSpace(childName)

	if parentName == "" {
		return "", fmt.Errorf("parent category cannot be empty")
	}

	var parent *domain.Category
	for i := range categories {
		cat := &categories[i]
		if cat.IsTopLevel() && cat.Name == parentName && cat.Type == txnType {
			parent = cat
			break
		}
	}

	if childName == "" {
		if parent == nil {
			return "", fmt.Errorf("category not found: %s", parentName)
		}
		return parent.CategoryID, nil
	}

	if parent != nil {
		for i := range categories {
			cat := &categories[i]
			if !cat.IsTopLevel() && cat.Name == childName && cat.Type == txnType && *cat.ParentID == parent.CategoryID {
				return cat.CategoryID, nil
			}
		}
	}
	return "", fmt.Errorf("category not found: %s > %s", parentName, childName)
}

// parseImportDate accepts the date layouts seen in exported files.
func parseImportDate(s string) (time.Time, error) {
	layouts := []string{"2006-01-02", "2006/01/02", time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %s", s)
}
