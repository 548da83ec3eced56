package service

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/service/tokens"
)

func (s *ServiceTestSuite) TestConnect_SeedsOnce() {
	ctx := context.Background()

	first, err := s.services.Identity.Connect(ctx, "")
	s.Require().NoError(err)
	s.True(first.Seeded)
	s.Regexp(`^0x[0-9A-F]{32}$`, first.Account)
	s.True(testSeed.Equal(first.Balance))

	claims, err := tokens.ValidateAccountJWT(first.Token, []byte("secret"))
	s.Require().NoError(err)
	s.Equal(first.Account, claims.Account)

	second, err := s.services.Identity.Connect(ctx, first.Account)
	s.Require().NoError(err)
	s.False(second.Seeded)
	s.True(testSeed.Equal(second.Balance))
	s.requireBalance(first.Account, 100)
}

func (s *ServiceTestSuite) TestRegister_PreservesKyc() {
	ctx := context.Background()
	account := s.verifiedAccount(domain.RoleSeller)

	profile, err := s.services.Identity.Register(ctx, account, RegisterProfileArgs{
		Name:  "Renamed",
		Email: gofakeit.Email(),
		Role:  domain.RoleUser,
	})
	s.Require().NoError(err)
	s.Equal("Renamed", profile.Name)
	s.Equal(domain.RoleUser, profile.Role)
	s.Equal(domain.KycVerified, profile.KycStatus)

	stored, err := s.services.Identity.Lookup(ctx, account)
	s.Require().NoError(err)
	s.Equal(domain.KycVerified, stored.KycStatus)
}

func (s *ServiceTestSuite) TestRegister_AdminRoleGate() {
	_, err := s.services.Identity.Register(context.Background(), s.account(), RegisterProfileArgs{
		Name: gofakeit.Name(),
		Role: domain.RoleAdmin,
	})
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *ServiceTestSuite) TestSetKyc() {
	ctx := context.Background()
	account := s.account()
	other := s.verifiedAccount(domain.RoleUser)
	_, err := s.services.Identity.Register(ctx, account, RegisterProfileArgs{Name: gofakeit.Name(), Role: domain.RoleUser})
	s.Require().NoError(err)

	s.Run("non admin caller", func() {
		_, setErr := s.services.Identity.SetKyc(ctx, other, account, domain.KycVerified)
		s.ErrorIs(setErr, domain.ErrForbidden)
	})
	s.Run("unknown account", func() {
		_, setErr := s.services.Identity.SetKyc(ctx, testAdmin, "0xUNKNOWN", domain.KycVerified)
		s.ErrorIs(setErr, domain.ErrRecordNotFound)
	})
	s.Run("unknown status", func() {
		_, setErr := s.services.Identity.SetKyc(ctx, testAdmin, account, domain.KycStatus("MAYBE"))
		s.ErrorIs(setErr, domain.ErrInvalidTransition)
	})
	s.Run("rejected", func() {
		profile, setErr := s.services.Identity.SetKyc(ctx, testAdmin, account, domain.KycRejected)
		s.Require().NoError(setErr)
		s.Equal(domain.KycRejected, profile.KycStatus)

		notifications, listErr := s.services.Notifications.ListFor(ctx, account)
		s.Require().NoError(listErr)
		s.Require().NotEmpty(notifications)
		s.Equal("KYC Status Update", notifications[0].Title)
		s.Equal(domain.SeverityError, notifications[0].Severity)
	})
}

func (s *ServiceTestSuite) TestSubmitKyc() {
	ctx := context.Background()
	account := s.account()
	_, err := s.services.Identity.Register(ctx, account, RegisterProfileArgs{Name: gofakeit.Name(), Role: domain.RoleBuyer})
	s.Require().NoError(err)

	docs := domain.KycDocuments{IDDocument: "passport.png", AddressProof: "bill.pdf"}
	profile, err := s.services.Identity.SubmitKyc(ctx, account, docs)
	s.Require().NoError(err)
	s.Equal(domain.KycPending, profile.KycStatus)
	s.Require().NotNil(profile.KycDocuments)
	s.Equal("passport.png", profile.KycDocuments.IDDocument)

	_, err = s.services.Identity.SubmitKyc(ctx, account, docs)
	s.ErrorIs(err, domain.ErrInvalidTransition)

	pending, err := s.services.Identity.ListProfiles(ctx, testAdmin, domain.KycPending)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(account, pending[0].Account)

	_, err = s.services.Identity.ListProfiles(ctx, account, "")
	s.ErrorIs(err, domain.ErrForbidden)
}
