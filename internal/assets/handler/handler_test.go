package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"govassets/internal/assets/handler/mocks"
	"govassets/internal/assets/models"
	"govassets/internal/chain"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
	dErrors "govassets/pkg/domain-errors"
	"govassets/pkg/testutil"
)

const adminToken = "s3cret"

var (
	realmKey = id.MustParsePublicKey("DPiH3H3c7t47BMxqTxLsuPQpEC6Kne8GA9VXbxpnZxFE")
	govKey   = id.MustParsePublicKey("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	tokenKey = id.MustParsePublicKey("MangoCzJ36AjZyKwVj3VnYU4GTonjfVEnJmvvWaxLac")
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	state   *models.State
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, adminToken, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)

	gov := governance.Governance{Pubkey: govKey, AccountType: governance.AccountTypeProgramGovernanceV2, GovernedAccount: tokenKey}
	token := chain.TokenAccount{Mint: chain.WrappedSOLMint, Owner: govKey, Amount: 3}
	s.state = &models.State{
		Realm:       governance.Realm{Pubkey: realmKey, Name: "dao"},
		Governances: []governance.Governance{gov},
		AssetAccounts: []models.AssetAccount{
			models.NewProgramAccount(gov),
			models.NewTokenAccount(tokenKey, token, nil, gov),
		},
		GovernedTokenAccounts: []models.AssetAccount{models.NewTokenAccount(tokenKey, token, nil, gov)},
		UpdatedAt:             time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) TestGetAssets() {
	s.Run("returns the snapshot", func() {
		s.service.EXPECT().State(gomock.Any(), realmKey).Return(s.state, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/realms/"+realmKey.String()+"/assets"))
		s.Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[StateResponse](s.T(), rr)
		s.Equal(realmKey.String(), resp.Realm)
		s.Equal("dao", resp.Name)
		s.Equal(1, resp.Governances)
		s.Len(resp.AssetAccounts, 2)
		s.Len(resp.GovernedTokenAccounts, 1)
		s.Equal(tokenKey, resp.AssetAccounts[1].Pubkey)
	})

	s.Run("filters by type", func() {
		s.service.EXPECT().State(gomock.Any(), realmKey).Return(s.state, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/realms/"+realmKey.String()+"/assets?type=program"))
		s.Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[StateResponse](s.T(), rr)
		s.Require().Len(resp.AssetAccounts, 1)
		s.Equal(models.AccountTypeProgram, resp.AssetAccounts[0].Type)
		s.NotNil(resp.GovernedTokenAccounts)
		s.Empty(resp.GovernedTokenAccounts)
	})

	s.Run("unknown type is rejected", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/realms/"+realmKey.String()+"/assets?type=stake"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("invalid realm key", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/realms/not-a-key/assets"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("realm not loaded", func() {
		s.service.EXPECT().State(gomock.Any(), realmKey).Return(nil, dErrors.New(dErrors.CodeNotFound, "realm not loaded"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/realms/"+realmKey.String()+"/assets"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}

func (s *HandlerSuite) TestLoadRealm() {
	path := "/realms/" + realmKey.String() + "/load"

	s.Run("requires the admin token", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, path))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("refused when no admin token is configured", func() {
		router := chi.NewRouter()
		New(s.service, "", slog.New(slog.NewTextHandler(io.Discard, nil))).Register(router)

		rr := testutil.DoRequest(router, testutil.NewAdminRequest(s.T(), http.MethodPost, path, ""))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("loads with the admin token", func() {
		s.service.EXPECT().LoadRealm(gomock.Any(), realmKey).Return(s.state, nil)

		rr := testutil.DoRequest(s.router, testutil.NewAdminRequest(s.T(), http.MethodPost, path, adminToken))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("chain outage maps to 503", func() {
		s.service.EXPECT().LoadRealm(gomock.Any(), realmKey).Return(nil, dErrors.New(dErrors.CodeUnavailable, "chain endpoint unavailable"))

		rr := testutil.DoRequest(s.router, testutil.NewAdminRequest(s.T(), http.MethodPost, path, adminToken))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, string(dErrors.CodeUnavailable))
	})
}

func (s *HandlerSuite) TestRefetch() {
	path := "/realms/" + realmKey.String() + "/governances/" + govKey.String() + "/refetch"

	s.Run("refetches one governance", func() {
		s.service.EXPECT().RefetchGovernanceAccounts(gomock.Any(), realmKey, govKey).Return(s.state, nil)

		rr := testutil.DoRequest(s.router, testutil.NewAdminRequest(s.T(), http.MethodPost, path, adminToken))
		s.Equal(http.StatusOK, rr.Code)
	})

	s.Run("invalid governance key", func() {
		bad := "/realms/" + realmKey.String() + "/governances/0OIl/refetch"
		rr := testutil.DoRequest(s.router, testutil.NewAdminRequest(s.T(), http.MethodPost, bad, adminToken))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("internal errors hide their message", func() {
		s.service.EXPECT().RefetchGovernanceAccounts(gomock.Any(), realmKey, govKey).Return(nil, dErrors.New(dErrors.CodeInternal, "secret detail"))

		rr := testutil.DoRequest(s.router, testutil.NewAdminRequest(s.T(), http.MethodPost, path, adminToken))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, string(dErrors.CodeInternal))
		s.NotContains(rr.Body.String(), "secret detail")
	})
}
