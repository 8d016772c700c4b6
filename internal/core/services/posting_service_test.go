package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/finledger/posting_engine/internal/core/ports/services"
	"github.com/finledger/posting_engine/internal/core/services"
	"github.com/finledger/posting_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingRuleRepository ---
type MockPostingRuleRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRuleRepositoryFacade = (*MockPostingRuleRepository)(nil)

func (m *MockPostingRuleRepository) FindPostingRule(ctx context.Context, tenantID, modelCode string, scope domain.RuleScope) (*domain.PostingRule, error) {
	args := m.Called(ctx, tenantID, modelCode, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleRepository) FindRuleByID(ctx context.Context, tenantID, ruleID string) (*domain.PostingRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleRepository) ListRulesByTenant(ctx context.Context, tenantID string, modelCode *string) ([]domain.PostingRule, error) {
	args := m.Called(ctx, tenantID, modelCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingRule), args.Error(1)
}

func (m *MockPostingRuleRepository) SavePostingRule(ctx context.Context, rule domain.PostingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockPostingRuleRepository) DeactivateRule(ctx context.Context, tenantID, ruleID string, updatedBy string) error {
	args := m.Called(ctx, tenantID, ruleID, updatedBy)
	return args.Error(0)
}

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) CreateReversalEntry(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string) error {
	args := m.Called(ctx, reversing, lines, originalEntryID)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindEntryBySourceEventID(ctx context.Context, tenantID, sourceEventID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, sourceEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodReader = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) FindPeriodFor(ctx context.Context, tenantID, legalEntityID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, legalEntityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditRecords(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AuditRecord), returnedNextToken, args.Error(2)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyReader = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockRuleRepo     *MockPostingRuleRepository
	mockJournalRepo  *MockJournalEntryRepository
	mockPeriodRepo   *MockFiscalPeriodRepository
	mockAuditRepo    *MockAuditRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.PostingSvcFacade
	tenantID         string
	actorID          string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockPostingRuleRepository)
	suite.mockJournalRepo = new(MockJournalEntryRepository)
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewPostingService(
		suite.mockRuleRepo,
		suite.mockJournalRepo,
		suite.mockPeriodRepo,
		suite.mockAuditRepo,
		suite.mockCurrencyRepo,
	)
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *PostingServiceTestSuite) validRequest() dto.PostRequest {
	return dto.PostRequest{
		LegalEntityID: "le-1",
		ModelCode:     "invoice.paid",
		Amount:        decimal.NewFromInt(110),
		CurrencyCode:  "USD",
		EntryDate:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Description:   "Invoice INV-42 paid",
		Reference:     "INV-42",
		SourceEventID: uuid.NewString(),
		FallbackLines: []dto.FallbackLineRequest{
			{AccountID: "acct-bank", Side: domain.Debit, Amount: decimal.NewFromInt(110)},
			{AccountID: "acct-revenue", Side: domain.Credit, Amount: decimal.NewFromInt(110)},
		},
	}
}

func (suite *PostingServiceTestSuite) matchingRule() *domain.PostingRule {
	bankAcct := "acct-bank"
	revenueAcct := "acct-revenue"
	return &domain.PostingRule{
		RuleID:    uuid.NewString(),
		TenantID:  suite.tenantID,
		ModelCode: "invoice.paid",
		IsActive:  true,
		Lines: []domain.PostingLineTemplate{
			{
				LineID:        uuid.NewString(),
				Side:          domain.Debit,
				AccountSource: domain.AccountFixed,
				AccountID:     &bankAcct,
				AmountSource:  domain.AmountFull,
				AmountFactor:  decimal.NewFromInt(1),
				SortOrder:     0,
			},
			{
				LineID:        uuid.NewString(),
				Side:          domain.Credit,
				AccountSource: domain.AccountFixed,
				AccountID:     &revenueAcct,
				AmountSource:  domain.AmountFull,
				AmountFactor:  decimal.NewFromInt(1),
				SortOrder:     1,
			},
		},
	}
}

func (suite *PostingServiceTestSuite) usd() *domain.Currency {
	return &domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
}

// --- Post ---

func (suite *PostingServiceTestSuite) TestPost_SuccessViaRule() {
	ctx := context.Background()
	req := suite.validRequest()
	rule := suite.matchingRule()

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(rule, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Posted, entry.Status)
	suite.Require().NotNil(entry.RuleID)
	suite.Equal(rule.RuleID, *entry.RuleID)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(110)))
	suite.True(entry.TotalDebit.Equal(entry.TotalCredit))
	suite.Len(entry.Lines, 2)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_PeriodLockedIsFatal() {
	ctx := context.Background()
	req := suite.validRequest()
	period := &domain.FiscalPeriod{
		PeriodID:      uuid.NewString(),
		TenantID:      suite.tenantID,
		LegalEntityID: req.LegalEntityID,
		Year:          2025,
		Month:         6,
		IsLocked:      true,
	}

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(period, nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveAuditRecord", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_PeriodLookupFailureIsFatal() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, errors.New("db down")).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_NoRuleUsesFallback() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Nil(entry.RuleID)
	suite.Len(entry.Lines, 2)
	suite.Equal("acct-bank", entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(110)))
}

func (suite *PostingServiceTestSuite) TestPost_RuleResolutionFailureUsesFallback() {
	ctx := context.Background()
	req := suite.validRequest()

	// Rule needs a dynamic account that the caller's context never supplies.
	rule := suite.matchingRule()
	missingKey := "partner_account"
	rule.Lines[1].AccountSource = domain.AccountDynamic
	rule.Lines[1].AccountID = nil
	rule.Lines[1].DynamicAccountKey = &missingKey

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(rule, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Nil(entry.RuleID, "fallback entries carry no rule id")
}

func (suite *PostingServiceTestSuite) TestPost_UnbalancedRuleUsesFallback() {
	ctx := context.Background()
	req := suite.validRequest()

	// Credit side at factor 0.5 expands unbalanced.
	rule := suite.matchingRule()
	rule.Lines[1].AmountFactor = decimal.RequireFromString("0.5")

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(rule, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Nil(entry.RuleID)
	suite.True(entry.TotalDebit.Equal(entry.TotalCredit))
}

func (suite *PostingServiceTestSuite) TestPost_UnbalancedFallbackIsRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.FallbackLines[1].Amount = decimal.NewFromInt(90)

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(nil, nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_DuplicateSourceEventReturnsExisting() {
	ctx := context.Background()
	req := suite.validRequest()
	existing := &domain.JournalEntry{
		EntryID:       uuid.NewString(),
		TenantID:      suite.tenantID,
		SourceEventID: req.SourceEventID,
		Status:        domain.Posted,
	}

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(apperrors.ErrDuplicate).Once()
	suite.mockJournalRepo.On("FindEntryBySourceEventID", ctx, suite.tenantID, req.SourceEventID).Return(existing, nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(existing.EntryID, entry.EntryID)
	// No second audit row for an idempotent replay.
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveAuditRecord", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_PersistenceFailureIsFatal() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(errors.New("insert failed")).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "SaveAuditRecord", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_AuditFailureIsSwallowed() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(errors.New("audit sink down")).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err, "a failed audit write must not fail the posting")
	suite.Require().NotNil(entry)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_UnknownCurrencyDefaultsPrecision() {
	ctx := context.Background()
	req := suite.validRequest()
	rule := suite.matchingRule()

	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, req.LegalEntityID, req.EntryDate).Return(nil, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRuleRepo.On("FindPostingRule", ctx, suite.tenantID, req.ModelCode, mock.AnythingOfType("domain.RuleScope")).Return(rule, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
}

func (suite *PostingServiceTestSuite) TestPost_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.Zero

	entry, err := suite.service.Post(ctx, suite.tenantID, suite.actorID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindPeriodFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ReverseEntry ---

func (suite *PostingServiceTestSuite) postedEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:       uuid.NewString(),
		TenantID:      suite.tenantID,
		LegalEntityID: "le-1",
		EntryNumber:   7,
		EntryDate:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Description:   "Invoice INV-42 paid",
		ModelCode:     "invoice.paid",
		CurrencyCode:  "USD",
		Status:        domain.Posted,
		TotalDebit:    decimal.NewFromInt(110),
		TotalCredit:   decimal.NewFromInt(110),
	}
}

func (suite *PostingServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original := suite.postedEntry()
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: original.EntryID, AccountID: "acct-bank", Debit: decimal.NewFromInt(110), Credit: decimal.Zero, SortOrder: 0},
		{LineID: uuid.NewString(), EntryID: original.EntryID, AccountID: "acct-revenue", Debit: decimal.Zero, Credit: decimal.NewFromInt(110), SortOrder: 1},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, original.LegalEntityID, original.EntryDate).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("CreateReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), original.EntryID).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditRecord", ctx, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	reversing, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.EntryID, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Require().NotNil(reversing.OriginalEntryID)
	suite.Equal(original.EntryID, *reversing.OriginalEntryID)
	suite.Require().Len(reversing.Lines, 2)
	// Sides are mirrored line by line.
	suite.True(reversing.Lines[0].Credit.Equal(decimal.NewFromInt(110)))
	suite.True(reversing.Lines[0].Debit.IsZero())
	suite.True(reversing.Lines[1].Debit.Equal(decimal.NewFromInt(110)))
}

func (suite *PostingServiceTestSuite) TestReverseEntry_WrongTenantIsNotFound() {
	ctx := context.Background()
	original := suite.postedEntry()
	original.TenantID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	reversing, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(reversing)
}

func (suite *PostingServiceTestSuite) TestReverseEntry_AlreadyReversedIsConflict() {
	ctx := context.Background()
	original := suite.postedEntry()
	original.Status = domain.Reversed

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	reversing, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(reversing)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestReverseEntry_LockedPeriodBlocksReversal() {
	ctx := context.Background()
	original := suite.postedEntry()
	period := &domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		TenantID: suite.tenantID,
		Year:     2025,
		Month:    6,
		IsLocked: true,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodFor", ctx, suite.tenantID, original.LegalEntityID, original.EntryDate).Return(period, nil).Once()

	reversing, err := suite.service.ReverseEntry(ctx, suite.tenantID, original.EntryID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.Nil(reversing)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
