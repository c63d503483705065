package governance

//go:generate mockgen -source=loader.go -destination=mocks/mocks.go -package=mocks AccountReader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"govassets/internal/chain/rpc"
	"govassets/internal/governance/mocks"
	id "govassets/pkg/domain"
	"govassets/pkg/platform/sentinel"
)

type LoaderSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	reader *mocks.MockAccountReader
	loader *Loader
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reader = mocks.NewMockAccountReader(s.ctrl)
	loader, err := NewLoader(s.reader, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
	s.loader = loader
}

func (s *LoaderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LoaderSuite) TestNewLoader() {
	_, err := NewLoader(nil)
	s.Error(err)
}

func (s *LoaderSuite) TestLoadRealm() {
	ctx := context.Background()

	s.Run("decodes the realm with its owning program", func() {
		s.reader.EXPECT().GetAccountInfoBatch(ctx, []id.PublicKey{testRealm}).Return([]*rpc.AccountInfo{
			{Owner: testProgram, Data: realmBytes(testCommunity, &testCouncil, nil, "Realm")},
		}, nil)

		realm, err := s.loader.LoadRealm(ctx, testRealm)
		s.Require().NoError(err)
		s.Equal(testProgram, realm.Owner)
		s.Equal("Realm", realm.Name)
	})

	s.Run("missing realm is not found", func() {
		s.reader.EXPECT().GetAccountInfoBatch(ctx, gomock.Any()).Return([]*rpc.AccountInfo{nil}, nil)

		_, err := s.loader.LoadRealm(ctx, testRealm)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rpc failure propagates", func() {
		rpcErr := rpc.NewError(rpc.ErrorOutage, "getAccountInfo", "down", nil)
		s.reader.EXPECT().GetAccountInfoBatch(ctx, gomock.Any()).Return(nil, rpcErr)

		_, err := s.loader.LoadRealm(ctx, testRealm)
		s.ErrorIs(err, rpcErr)
	})
}

func (s *LoaderSuite) TestLoadGovernances() {
	ctx := context.Background()
	mintGov := id.MustParsePublicKey("MangoCzJ36AjZyKwVj3VnYU4GTonjfVEnJmvvWaxLac")

	s.Run("one filter set per governance tag", func() {
		s.reader.EXPECT().GetProgramAccountsBatch(ctx, testProgram, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ id.PublicKey, sets [][]rpc.Filter) ([][]rpc.KeyedAccount, error) {
				s.Len(sets, len(governanceTypes))
				for _, set := range sets {
					s.Require().Len(set, 2)
					s.Equal(uint64(0), set[0].Memcmp.Offset)
					s.Equal(uint64(1), set[1].Memcmp.Offset)
					s.Equal(testRealm.String(), set[1].Memcmp.Bytes)
				}
				out := make([][]rpc.KeyedAccount, len(sets))
				out[4] = []rpc.KeyedAccount{{
					Pubkey: mintGov,
					Account: &rpc.AccountInfo{
						Owner: testProgram,
						Data:  governanceBytes(AccountTypeMintGovernanceV1, testRealm, testCommunity, 1, 1),
					},
				}}
				return out, nil
			})

		govs, err := s.loader.LoadGovernances(ctx, testProgram, testRealm)
		s.Require().NoError(err)
		s.Require().Len(govs, 1)
		g := govs[mintGov.String()]
		s.Equal(AccountTypeMintGovernanceV1, g.AccountType)
		s.Equal(testCommunity, g.GovernedAccount)
	})

	s.Run("undecodable governance fails the load", func() {
		s.reader.EXPECT().GetProgramAccountsBatch(ctx, testProgram, gomock.Any()).Return([][]rpc.KeyedAccount{
			{{Pubkey: mintGov, Account: &rpc.AccountInfo{Data: []byte{byte(AccountTypeGovernanceV2)}}}},
		}, nil)

		_, err := s.loader.LoadGovernances(ctx, testProgram, testRealm)
		s.ErrorIs(err, ErrShortBuffer)
	})
}

func (s *LoaderSuite) TestLoadRealmConfig() {
	ctx := context.Background()
	realm := Realm{Pubkey: testRealm, Owner: testProgram}
	addr, err := RealmConfigAddress(testProgram, testRealm)
	s.Require().NoError(err)

	s.Run("absent config account is nil", func() {
		s.reader.EXPECT().GetAccountInfoBatch(ctx, []id.PublicKey{addr}).Return([]*rpc.AccountInfo{nil}, nil)

		cfg, err := s.loader.LoadRealmConfig(ctx, realm)
		s.NoError(err)
		s.Nil(cfg)
	})

	s.Run("decodes the plugin addresses", func() {
		b := new(borsh)
		b.u8(uint8(AccountTypeRealmConfig)).key(testRealm).opt(&testAuthority).opt(nil)
		s.reader.EXPECT().GetAccountInfoBatch(ctx, []id.PublicKey{addr}).Return([]*rpc.AccountInfo{{Data: b.Bytes()}}, nil)

		cfg, err := s.loader.LoadRealmConfig(ctx, realm)
		s.Require().NoError(err)
		s.Require().NotNil(cfg.CommunityVoterWeightAddin)
		s.Equal(testAuthority, *cfg.CommunityVoterWeightAddin)
	})
}

func (s *LoaderSuite) TestLoadTokenOwnerRecords() {
	ctx := context.Background()
	wallet := testAuthority
	realm := Realm{Pubkey: testRealm, Owner: testProgram, CommunityMint: testCommunity}
	realm.Config.CouncilMint = &testCouncil

	communityAddr, err := TokenOwnerRecordAddress(testProgram, testRealm, testCommunity, wallet)
	s.Require().NoError(err)
	councilAddr, err := TokenOwnerRecordAddress(testProgram, testRealm, testCouncil, wallet)
	s.Require().NoError(err)

	s.Run("council only deposit", func() {
		s.reader.EXPECT().GetAccountInfoBatch(ctx, []id.PublicKey{communityAddr, councilAddr}).Return([]*rpc.AccountInfo{
			nil,
			{Data: tokenOwnerRecordBytes(testRealm, testCouncil, wallet, 3)},
		}, nil)

		records, err := s.loader.LoadTokenOwnerRecords(ctx, realm, wallet)
		s.Require().NoError(err)
		s.Nil(records.Community)
		s.Require().NotNil(records.Council)
		s.Equal(uint64(3), records.Council.GoverningTokenDepositAmount)
	})

	s.Run("realm without council asks for one record", func() {
		noCouncil := realm
		noCouncil.Config.CouncilMint = nil
		s.reader.EXPECT().GetAccountInfoBatch(ctx, []id.PublicKey{communityAddr}).Return(nil, errors.New("boom"))

		_, err := s.loader.LoadTokenOwnerRecords(ctx, noCouncil, wallet)
		s.Error(err)
	})
}
