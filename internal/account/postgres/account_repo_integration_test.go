// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

//go:build integration

package postgres_test

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/quizcard/credcheck/internal/account"
	"github.com/quizcard/credcheck/internal/account/postgres"
)

var _ = Describe("AccountRepository", func() {
	var (
		ctx  context.Context
		repo *postgres.AccountRepository
	)

	newAccount := func(email string) *account.Account {
		a, err := account.NewAccount("Ana Souza", email, "$argon2id$hash", time.Now().UTC().Truncate(time.Microsecond))
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = postgres.NewAccountRepository(testPool)
		_, err := testPool.Exec(ctx, `DELETE FROM accounts`)
		Expect(err).NotTo(HaveOccurred())
	})

	It("round-trips an account", func() {
		a := newAccount("ana@example.com")
		Expect(repo.Create(ctx, a)).To(Succeed())

		byID, err := repo.GetByID(ctx, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(byID.Email).To(Equal("ana@example.com"))
		Expect(byID.Role).To(Equal(account.RoleStudent))
		Expect(byID.Plan).To(Equal(account.PlanFreemium))
		Expect(byID.LockedUntil).To(BeNil())
		Expect(byID.CreatedAt).To(BeTemporally("==", a.CreatedAt))
	})

	It("finds accounts by email case-insensitively", func() {
		a := newAccount("ana@example.com")
		Expect(repo.Create(ctx, a)).To(Succeed())

		found, err := repo.GetByEmail(ctx, "ANA@Example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(a.ID))
	})

	It("rejects a duplicate email regardless of case", func() {
		Expect(repo.Create(ctx, newAccount("ana@example.com"))).To(Succeed())

		err := repo.Create(ctx, newAccount("Ana@Example.com"))
		Expect(err).To(MatchError(account.ErrEmailTaken))
	})

	It("persists lockout state", func() {
		a := newAccount("ana@example.com")
		Expect(repo.Create(ctx, a)).To(Succeed())

		now := time.Now().UTC().Truncate(time.Microsecond)
		for range account.LockoutThreshold {
			a.RecordFailure(now)
		}
		Expect(repo.Update(ctx, a)).To(Succeed())

		stored, err := repo.GetByID(ctx, a.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.FailedAttempts).To(Equal(account.LockoutThreshold))
		Expect(stored.LockedUntil).NotTo(BeNil())
		Expect(stored.IsLocked(now)).To(BeTrue())
	})

	It("reports missing accounts", func() {
		_, err := repo.GetByID(ctx, ulid.Make())
		Expect(err).To(MatchError(account.ErrNotFound))

		err = repo.Update(ctx, newAccount("ghost@example.com"))
		Expect(err).To(MatchError(account.ErrNotFound))
	})
})
