package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"

	"studentbuy/internal/models"
)

func registration() models.UserRegistration {
	return models.UserRegistration{
		Name:     "Asha",
		Email:    "  Asha@College.edu ",
		Password: "secret123",
		College:  "IIT Delhi",
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create hashes password", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.Create(ctx, registration())
		require.NoError(mt, err)

		assert.Equal(mt, "asha@college.edu", user.Email)
		assert.Equal(mt, models.RoleUser, user.Role)
		assert.Len(mt, user.ReferralCode, 8)
		assert.Empty(mt, user.ReferredBy)
		assert.NotNil(mt, user.Wishlist)
		assert.Equal(mt, models.DefaultPreferences(), user.Preferences)
		assert.NotEqual(mt, "secret123", user.PasswordHash)
		assert.NoError(mt, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	})

	mt.Run("create resolves referral code", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		referrer := models.User{ID: "ref-1", Name: "Ravi", ReferralCode: "ABCD1234"}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, toDoc(mt, referrer)),
			mtest.CreateSuccessResponse(),
		)

		reg := registration()
		reg.ReferredBy = "abcd1234"
		user, err := repo.Create(ctx, reg)
		require.NoError(mt, err)
		assert.Equal(mt, "ref-1", user.ReferredBy)
	})

	mt.Run("create ignores unknown referral code", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		reg := registration()
		reg.ReferredBy = "NOPE0000"
		user, err := repo.Create(ctx, reg)
		require.NoError(mt, err)
		assert.Empty(mt, user.ReferredBy)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: email_1",
		}))

		_, err := repo.Create(ctx, registration())
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		stored := models.User{ID: "u1", Name: "Asha", Wishlist: []string{"1", "3"}}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, toDoc(mt, stored)))

		user, err := repo.FindByID(ctx, "u1")
		require.NoError(mt, err)
		assert.Equal(mt, []string{"1", "3"}, user.Wishlist)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := repo.FindByID(ctx, "ghost")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("wishlist updates", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		matched := mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1})
		mt.AddMockResponses(matched, matched, matched)

		require.NoError(mt, repo.AddToWishlist(ctx, "u1", "3"))
		require.NoError(mt, repo.RemoveFromWishlist(ctx, "u1", "3"))
		require.NoError(mt, repo.ClearWishlist(ctx, "u1"))
	})

	mt.Run("wishlist unknown user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		assert.ErrorIs(mt, repo.AddToWishlist(ctx, "ghost", "3"), ErrNotFound)
	})
}

func TestNewReferralCode(t *testing.T) {
	a, b := NewReferralCode(), NewReferralCode()
	assert.Len(t, a, 8)
	assert.Regexp(t, "^[0-9A-F]{8}$", a)
	assert.NotEqual(t, a, b)
}
