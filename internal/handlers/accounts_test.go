package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (e *testEnv) accountRouter() {
	authed := e.router.Group("/", testAuth())
	authed.DELETE("/customers/remove", RemoveCustomer(e.db))
	authed.DELETE("/drivers/remove", RemoveDriver(e.db))
	authed.DELETE("/partners/remove", RemovePartner(e.db))
}

func (e *testEnv) removeAccount(t *testing.T, path string, linkedID, userID uint, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("X-Linked-Id", fmt.Sprintf("%d", linkedID))
	req.Header.Set("X-User-Id", fmt.Sprintf("%d", userID))
	req.Header.Set("X-Role", role)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, linkedID uint) models.User {
	t.Helper()
	user := models.User{
		FullName:     "Account Holder",
		Email:        fmt.Sprintf("%s-%d@example.com", role, linkedID),
		PasswordHash: "x",
		Role:         role,
		LinkedID:     linkedID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestRemoveCustomerCascadesToBookings(t *testing.T) {
	env := setupTestEnv(t)
	env.accountRouter()
	f := createFixtures(t, env.db)
	seedBooking(t, env, f)
	user := seedUser(t, env.db, models.RoleCustomer, f.customer.ID)

	w := env.removeAccount(t, "/customers/remove", f.customer.ID, user.ID, "customer")
	require.Equal(t, 200, w.Code)

	assert.Equal(t, int64(0), countRows(t, env.db, &models.Booking{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Customer{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.User{}))
	// The fleet is untouched
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Car{}))
}

func TestRemoveDriverCascadesToBookings(t *testing.T) {
	env := setupTestEnv(t)
	env.accountRouter()
	f := createFixtures(t, env.db)
	booking := seedBooking(t, env, f)
	booking.DriverID = &f.driver.ID
	require.NoError(t, env.db.Save(&booking).Error)
	user := seedUser(t, env.db, models.RoleDriver, f.driver.ID)

	w := env.removeAccount(t, "/drivers/remove", f.driver.ID, user.ID, "driver")
	require.Equal(t, 200, w.Code)

	assert.Equal(t, int64(0), countRows(t, env.db, &models.Booking{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Driver{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.User{}))
	// A driver leaving does not take the customer with them
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Customer{}))
}

func TestRemovePartnerCascadesToBookingsAndCars(t *testing.T) {
	env := setupTestEnv(t)
	env.accountRouter()
	f := createFixtures(t, env.db)
	seedBooking(t, env, f)
	user := seedUser(t, env.db, models.RolePartner, f.partner.ID)

	w := env.removeAccount(t, "/partners/remove", f.partner.ID, user.ID, "partner")
	require.Equal(t, 200, w.Code)

	assert.Equal(t, int64(0), countRows(t, env.db, &models.Booking{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Car{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Partner{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.User{}))
}
