package services

import (
	"testing"
	"time"

	"madrasa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Sara", Email: email, Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPaidOrder(t *testing.T, db *gorm.DB, product models.Product, userID *uint) models.Order {
	t.Helper()
	order := models.Order{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: product.Price,
		Status:    models.OrderStatusPaid,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestActivateGuestOrderIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Algebra I", "100.00")
	order := createPaidOrder(t, db, product, nil)

	result, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.Nil(t, result)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestActivateAutoCreatesCourseAndEnrollment(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Algebra I", "100.00")
	product.MeetingLink = "https://meet.example.com/algebra"
	require.NoError(t, db.Save(&product).Error)

	user := createUser(t, db, "sara@example.com")
	order := createPaidOrder(t, db, product, &user.ID)

	result, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.CreatedCourse)
	assert.True(t, result.CreatedEnrollment)

	var course models.Course
	require.NoError(t, db.First(&course, result.CourseID).Error)
	assert.Equal(t, "Algebra I", course.Title)
	assert.Equal(t, "algebra-i", course.Slug)
	assert.Equal(t, 30, course.DurationDays)
	assert.Equal(t, "https://meet.example.com/algebra", course.MeetingLink)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, result.EnrollmentID).Error)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	require.NotNil(t, enrollment.StartsAt)
	require.NotNil(t, enrollment.EndsAt)
	assert.Equal(t, enrollment.StartsAt.AddDate(0, 0, 30).Unix(), enrollment.EndsAt.Unix())
	assert.Equal(t, "https://meet.example.com/algebra", enrollment.MeetingLink)
}

func TestActivateResolvesCourseByDirectLink(t *testing.T) {
	db := setupTestDB(t)
	course := models.Course{Title: "Advanced Calculus", DurationDays: 60}
	require.NoError(t, db.Create(&course).Error)

	product := createProduct(t, db, "Calculus Bundle", "200.00")
	product.CourseID = &course.ID
	require.NoError(t, db.Save(&product).Error)

	user := createUser(t, db, "sara@example.com")
	order := createPaidOrder(t, db, product, &user.ID)

	result, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.False(t, result.CreatedCourse)
	assert.Equal(t, course.ID, result.CourseID)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, result.EnrollmentID).Error)
	require.NotNil(t, enrollment.EndsAt)
	assert.Equal(t, enrollment.StartsAt.AddDate(0, 0, 60).Unix(), enrollment.EndsAt.Unix())
}

func TestActivateResolvesCourseByTitle(t *testing.T) {
	db := setupTestDB(t)
	course := models.Course{Title: "Algebra I"}
	require.NoError(t, db.Create(&course).Error)

	product := createProduct(t, db, "Algebra I", "100.00")
	user := createUser(t, db, "sara@example.com")
	order := createPaidOrder(t, db, product, &user.ID)

	result, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.False(t, result.CreatedCourse)
	assert.Equal(t, course.ID, result.CourseID)
}

func TestActivateResolvesCourseBySlug(t *testing.T) {
	db := setupTestDB(t)
	course := models.Course{Title: "Algebra level one", Slug: "algebra-i"}
	require.NoError(t, db.Create(&course).Error)

	product := createProduct(t, db, "Algebra I", "100.00")
	user := createUser(t, db, "sara@example.com")
	order := createPaidOrder(t, db, product, &user.ID)

	result, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.False(t, result.CreatedCourse)
	assert.Equal(t, course.ID, result.CourseID)
}

func TestActivateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Algebra I", "100.00")
	user := createUser(t, db, "sara@example.com")
	order := createPaidOrder(t, db, product, &user.ID)

	first, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.True(t, first.CreatedEnrollment)

	var before models.Enrollment
	require.NoError(t, db.First(&before, first.EnrollmentID).Error)

	second, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.True(t, second.NothingNew())
	assert.Equal(t, first.EnrollmentID, second.EnrollmentID)

	var after models.Enrollment
	require.NoError(t, db.First(&after, second.EnrollmentID).Error)
	assert.Equal(t, before.StartsAt.Unix(), after.StartsAt.Unix())
	assert.Equal(t, before.EndsAt.Unix(), after.EndsAt.Unix())

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestActivateReactivatesExpiredStatusOnly(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Algebra I", "100.00")
	user := createUser(t, db, "sara@example.com")
	order := createPaidOrder(t, db, product, &user.ID)

	first, err := ActivateForOrder(db, &order)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("id = ?", first.EnrollmentID).
		Update("status", models.EnrollmentPending).Error)

	second, err := ActivateForOrder(db, &order)
	require.NoError(t, err)
	assert.True(t, second.Updated)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, first.EnrollmentID).Error)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
}

func TestReconcilePaidOrdersRepairsMissingEnrollments(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Algebra I", "100.00")
	user := createUser(t, db, "sara@example.com")
	createPaidOrder(t, db, product, &user.ID)
	createPaidOrder(t, db, product, nil) // guest order, never activated

	created, err := ReconcilePaidOrders(db)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Second sweep finds nothing to repair.
	created, err = ReconcilePaidOrders(db)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestExpireEnrollmentsFlipsOnlyLapsed(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "sara@example.com")
	student := models.Student{UserID: user.ID}
	require.NoError(t, db.Create(&student).Error)

	courseA := models.Course{Title: "Algebra I"}
	courseB := models.Course{Title: "Physics"}
	require.NoError(t, db.Create(&courseA).Error)
	require.NoError(t, db.Create(&courseB).Error)

	now := time.Now()
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 10)

	lapsed := models.Enrollment{StudentID: student.ID, CourseID: courseA.ID, Status: models.EnrollmentActive, EndsAt: &past}
	current := models.Enrollment{StudentID: student.ID, CourseID: courseB.ID, Status: models.EnrollmentActive, EndsAt: &future}
	require.NoError(t, db.Create(&lapsed).Error)
	require.NoError(t, db.Create(&current).Error)

	flipped, err := ExpireEnrollments(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, flipped)

	var freshLapsed models.Enrollment
	require.NoError(t, db.First(&freshLapsed, lapsed.ID).Error)
	assert.Equal(t, models.EnrollmentExpired, freshLapsed.Status)

	var freshCurrent models.Enrollment
	require.NoError(t, db.First(&freshCurrent, current.ID).Error)
	assert.Equal(t, models.EnrollmentActive, freshCurrent.Status)
}
