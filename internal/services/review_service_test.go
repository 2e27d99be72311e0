package services

import (
	"testing"

	"souqly/internal/models"
	"souqly/internal/testutil"
)

func TestCreateReview(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)

		review, err := svc.Create(user.ID, item.ID, 5, "flawless delivery")
		testutil.AssertNoError(t, err)

		if review.UserName != user.Name {
			t.Errorf("expected denormalized name %q, got %q", user.Name, review.UserName)
		}
		if review.Rating != 5 {
			t.Errorf("expected rating 5, got %d", review.Rating)
		}
	})

	t.Run("falls_back_to_email_when_nameless", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)
		testutil.AssertNoError(t, db.Model(user).Update("name", "").Error)

		review, err := svc.Create(user.ID, item.ID, 3, "")
		testutil.AssertNoError(t, err)

		if review.UserName != user.Email {
			t.Errorf("expected email fallback %q, got %q", user.Email, review.UserName)
		}
	})

	t.Run("rating_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)

		for _, rating := range []int{0, -1, 6} {
			_, err := svc.Create(user.ID, item.ID, rating, "")
			testutil.AssertAppError(t, err, "INVALID_RATING")
		}
	})

	t.Run("repeat_reviews_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, item.ID, 2, "meh")
		testutil.AssertNoError(t, err)
		_, err = svc.Create(user.ID, item.ID, 5, "much better now")
		testutil.AssertNoError(t, err)

		reviews, err := svc.ListForService(item.ID)
		testutil.AssertNoError(t, err)
		if len(reviews) != 2 {
			t.Errorf("expected 2 reviews from the same user, got %d", len(reviews))
		}
	})

	t.Run("unknown_service", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, "missing", 4, "")
		testutil.AssertAppError(t, err, "SERVICE_NOT_FOUND")
	})
}

func TestReviewAggregate(t *testing.T) {
	t.Run("mean_rounded_to_one_decimal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestReview(t, db, user.ID, item.ID, 4)
		testutil.CreateTestReview(t, db, user.ID, item.ID, 4)
		testutil.CreateTestReview(t, db, user.ID, item.ID, 5)

		agg, err := svc.Aggregate(item.ID)
		testutil.AssertNoError(t, err)

		// (4+4+5)/3 = 4.333..., rounded to 4.3
		if agg.Average != 4.3 {
			t.Errorf("expected average 4.3, got %v", agg.Average)
		}
		if agg.Count != 3 {
			t.Errorf("expected count 3, got %d", agg.Count)
		}
	})

	t.Run("no_reviews_means_no_badge", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)

		agg, err := svc.Aggregate(item.ID)
		testutil.AssertNoError(t, err)

		if agg.Count != 0 || agg.Average != 0 {
			t.Errorf("expected zero aggregate, got %+v", agg)
		}
	})

	t.Run("aggregate_many", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		rated := testutil.CreateTestService(t, db, cat.ID)
		unrated := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestReview(t, db, user.ID, rated.ID, 5)

		aggs, err := svc.AggregateMany([]string{rated.ID, unrated.ID})
		testutil.AssertNoError(t, err)

		if _, ok := aggs[unrated.ID]; ok {
			t.Error("expected unrated service to be absent from the map")
		}
		if agg, ok := aggs[rated.ID]; !ok || agg.Count != 1 || agg.Average != 5.0 {
			t.Errorf("expected 5.0 x1 for rated service, got %+v", agg)
		}
	})
}

func TestDeleteReview(t *testing.T) {
	t.Run("author_deletes_own", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)
		review := testutil.CreateTestReview(t, db, user.ID, item.ID, 1)

		testutil.AssertNoError(t, svc.Delete(review.ID, user.ID, models.RoleUser))
	})

	t.Run("admin_deletes_any", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)
		review := testutil.CreateTestReview(t, db, user.ID, item.ID, 1)

		testutil.AssertNoError(t, svc.Delete(review.ID, admin.ID, models.RoleAdmin))
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		author := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		review := testutil.CreateTestReview(t, db, author.ID, item.ID, 1)

		err := svc.Delete(review.ID, stranger.ID, models.RoleUser)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReviewService(db)

		err := svc.Delete("missing", "anyone", models.RoleAdmin)
		testutil.AssertAppError(t, err, "REVIEW_NOT_FOUND")
	})
}
