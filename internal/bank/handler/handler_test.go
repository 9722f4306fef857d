package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"harborbank/internal/bank/handler/mocks"
	"harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/testutil"
)

const johnID = "22222222-2222-4222-8222-222222222222"

type BankHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	userID  id.UserID
}

func TestBankHandlerSuite(t *testing.T) {
	suite.Run(t, new(BankHandlerSuite))
}

func (s *BankHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)

	var err error
	s.userID, err = id.ParseUserID(johnID)
	s.Require().NoError(err)
}

func (s *BankHandlerSuite) asJohn(req *http.Request) *http.Request {
	return testutil.AsCustomer(req, s.userID, "john@example.com")
}

func (s *BankHandlerSuite) TestGetProfile() {
	s.Run("returns the caller's profile", func() {
		s.service.EXPECT().GetProfile(gomock.Any(), s.userID).Return(&models.Profile{
			ID: s.userID, FullName: "John Doe", Balance: decimal.RequireFromString("15750.50"),
		}, nil)

		rr := testutil.DoRequest(s.router, s.asJohn(testutil.NewRequest(s.T(), http.MethodGet, "/me/profile")))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ProfileResponse](s.T(), rr)
		s.Equal("John Doe", resp.Profile.FullName)
		s.True(resp.Profile.Balance.Equal(decimal.RequireFromString("15750.50")))
	})

	s.Run("no principal is 401", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/me/profile"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, dErrors.CodeUnauthorized)
	})
}

func (s *BankHandlerSuite) TestUpdateProfile() {
	s.Run("contact details are accepted", func() {
		name := "Johnny"
		s.service.EXPECT().UpdateProfile(gomock.Any(), s.userID, models.ProfileUpdate{FullName: &name}).
			Return(&models.Profile{ID: s.userID, FullName: name}, nil)
		s.service.EXPECT().LogActivity(gomock.Any(), gomock.Any()).Return(&models.ActivityLog{}, nil)

		req := testutil.NewRequestWithBody(s.T(), http.MethodPatch, "/me/profile", `{"full_name":"Johnny"}`)
		rr := testutil.DoRequest(s.router, s.asJohn(req))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("balance changes are forbidden for customers", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPatch, "/me/profile", `{"balance":"1000000"}`)
		rr := testutil.DoRequest(s.router, s.asJohn(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, dErrors.CodeForbidden)
	})

	s.Run("missing profile is 404", func() {
		s.service.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "profile not found"))

		req := testutil.NewRequestWithBody(s.T(), http.MethodPatch, "/me/profile", `{"phone":"+1"}`)
		rr := testutil.DoRequest(s.router, s.asJohn(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, dErrors.CodeNotFound)
	})
}

func (s *BankHandlerSuite) TestCreateTransaction() {
	s.Run("uses the caller as sender and records activity", func() {
		created := &models.Transaction{
			ID:              id.NewTransactionID(),
			UserID:          s.userID,
			Type:            models.TransactionWire,
			Amount:          decimal.RequireFromString("100"),
			Fee:             decimal.RequireFromString("2.5"),
			Status:          models.TransactionPending,
			ReferenceNumber: "WIRE-20240305-00042",
			CreatedAt:       time.Now(),
		}
		s.service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req models.CreateTransactionRequest) (*models.Transaction, error) {
				s.Equal(s.userID, req.UserID)
				s.True(req.Amount.Equal(decimal.RequireFromString("100")))
				return created, nil
			})
		s.service.EXPECT().LogActivity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req models.LogActivityRequest) (*models.ActivityLog, error) {
				s.Equal(models.ActionTransactionCreated, req.Action)
				s.Equal(created.ID.String(), req.ResourceID)
				return &models.ActivityLog{}, nil
			})

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/me/transactions",
			`{"transaction_type":"wire","recipient_name":"Acme","amount":"100","fee":"2.5"}`)
		rr := testutil.DoRequest(s.router, s.asJohn(req))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[TransactionResponse](s.T(), rr)
		s.Equal("WIRE-20240305-00042", resp.Transaction.ReferenceNumber)
	})

	s.Run("validation errors are 400", func() {
		s.service.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "amount must be positive"))

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/me/transactions",
			`{"transaction_type":"wire","recipient_name":"Acme","amount":"0"}`)
		rr := testutil.DoRequest(s.router, s.asJohn(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, dErrors.CodeValidation)
	})

	s.Run("unknown fields are rejected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/me/transactions", `{"user_id":"someone-else"}`)
		rr := testutil.DoRequest(s.router, s.asJohn(req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, dErrors.CodeBadRequest)
	})
}

func (s *BankHandlerSuite) TestLists() {
	s.service.EXPECT().GetTransactions(gomock.Any(), s.userID).Return([]*models.Transaction{{ID: id.NewTransactionID()}}, nil)
	rr := testutil.DoRequest(s.router, s.asJohn(testutil.NewRequest(s.T(), http.MethodGet, "/me/transactions")))
	testutil.AssertStatusOK(s.T(), rr)
	s.Len(testutil.UnmarshalResponse[TransactionsResponse](s.T(), rr).Transactions, 1)

	s.service.EXPECT().GetActivityLogs(gomock.Any(), s.userID).Return(nil, dErrors.New(dErrors.CodeInternal, "boom"))
	rr = testutil.DoRequest(s.router, s.asJohn(testutil.NewRequest(s.T(), http.MethodGet, "/me/activity")))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, dErrors.CodeInternal)
}
