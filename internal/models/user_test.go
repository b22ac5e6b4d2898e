package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUserPersistsThroughMigratedSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	user := User{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: "secret-pass",
		Role:     RoleCustomer,
		LinkedID: 7,
	}
	require.NoError(t, user.HashPassword())

	// The transient Password field must not reach the INSERT; the migrated
	// table only carries password_hash.
	require.NoError(t, db.Create(&user).Error)

	var stored User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NoError(t, stored.CheckPassword("secret-pass"))
	assert.Error(t, stored.CheckPassword("wrong-pass"))

	// Updates go through the same column set
	stored.Mobile = "9000000001"
	require.NoError(t, db.Save(&stored).Error)
}
