package database_test

import (
	"testing"

	"github.com/culina/backend/config"
	"github.com/culina/backend/internal/database"
	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationFiles(t *testing.T) {
	files, err := database.MigrationFiles(testhelpers.MigrationsDir())
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_init.sql", files[0])
	for _, f := range files {
		assert.NotContains(t, f, "_rollback")
	}

	assert.Equal(t, "0001", database.MigrationVersion("0001_init.sql"))
}

func TestSQLiteSchema(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	for _, table := range []string{"users", "user_profiles", "ingredients", "saved_recipes", "shared_recipes", "profile_history"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.SavedRecipe{}, "idx_saved_recipes_user_hash"))
	assert.True(t, db.Migrator().HasIndex(&models.SharedRecipe{}, "idx_shared_recipes_origin"))
}

func TestIngredientCompositeKey(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	u1 := testhelpers.CreateTestUser(t, db, "u1")
	u2 := testhelpers.CreateTestUser(t, db, "u2")

	// The same client id may be used by different users.
	require.NoError(t, db.Create(&models.Ingredient{UserID: u1, ID: "egg", Name: "Egg"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{UserID: u2, ID: "egg", Name: "Egg"}).Error)
	assert.Error(t, db.Create(&models.Ingredient{UserID: u1, ID: "egg", Name: "Egg"}).Error)
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	// Running again is a no-op.
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir(), zap.NewNop()))

	var count int64
	require.NoError(t, db.Table("schema_migrations").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	u := testhelpers.CreateTestUser(t, db, "pg")
	assert.NotEqual(t, uuid.Nil, u)
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := testhelpers.SetupRedis(t)

	client, err := database.NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	_, err = database.NewRedisClient(&config.Config{RedisURL: "://bad"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}
