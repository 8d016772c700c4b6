package services_test

import (
	"context"
	"testing"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portssvc "github.com/finledger/posting_engine/internal/core/ports/services"
	"github.com/finledger/posting_engine/internal/core/services"
	"github.com/finledger/posting_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo *MockPostingRuleRepository
	service      portssvc.RuleSvcFacade
	tenantID     string
	actorID      string
}

func (suite *RuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockPostingRuleRepository)
	suite.service = services.NewRuleService(suite.mockRuleRepo)
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *RuleServiceTestSuite) validCreateRequest() dto.CreateRuleRequest {
	bank := "acct-bank"
	revenue := "acct-revenue"
	return dto.CreateRuleRequest{
		ModelCode: "invoice.paid",
		Lines: []dto.CreateRuleLineRequest{
			{Side: domain.Debit, AccountSource: domain.AccountFixed, AccountID: &bank, AmountSource: domain.AmountFull, SortOrder: 0},
			{Side: domain.Credit, AccountSource: domain.AccountFixed, AccountID: &revenue, AmountSource: domain.AmountFull, SortOrder: 1},
		},
	}
}

func (suite *RuleServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockRuleRepo.On("SavePostingRule", ctx, mock.AnythingOfType("domain.PostingRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rule)
	suite.NotEmpty(rule.RuleID)
	suite.Equal(suite.tenantID, rule.TenantID)
	suite.True(rule.IsActive)
	suite.Require().Len(rule.Lines, 2)
	// Omitted factor defaults to 1.
	suite.True(rule.Lines[0].AmountFactor.Equal(decimal.NewFromInt(1)))
	suite.Equal(suite.actorID, rule.CreatedBy)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestCreateRule_InvalidLineRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Lines[0].AccountID = nil // FIXED source without an account id

	rule, err := suite.service.CreateRule(ctx, suite.tenantID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rule)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SavePostingRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestDeactivateRule_NotFound() {
	ctx := context.Background()
	ruleID := uuid.NewString()

	suite.mockRuleRepo.On("DeactivateRule", ctx, suite.tenantID, ruleID, suite.actorID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateRule(ctx, suite.tenantID, ruleID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RuleServiceTestSuite) TestListRules_PassesModelCodeFilter() {
	ctx := context.Background()
	modelCode := "invoice.paid"
	expected := []domain.PostingRule{{RuleID: uuid.NewString(), ModelCode: modelCode}}

	suite.mockRuleRepo.On("ListRulesByTenant", ctx, suite.tenantID, &modelCode).Return(expected, nil).Once()

	rules, err := suite.service.ListRules(ctx, suite.tenantID, &modelCode)

	suite.Require().NoError(err)
	suite.Len(rules, 1)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}
