package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFilterTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Customer{}, &Order{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestListFilterSearchCaseInsensitive(t *testing.T) {
	db := setupFilterTestDB(t)

	db.Create(&Customer{Name: "Acme Corp", Email: "info@acme.com", Status: "active"})
	db.Create(&Customer{Name: "Globex", Email: "info@globex.com", Status: "active"})

	filter := ListFilter{Search: "ACME"}
	var got []Customer
	err := db.Scopes(filter.Scope("name", "email", "company")).Find(&got).Error
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Acme Corp", got[0].Name)
}

func TestListFilterStatusEquality(t *testing.T) {
	db := setupFilterTestDB(t)

	db.Create(&Customer{Name: "A", Email: "a@x.com", Status: "active"})
	db.Create(&Customer{Name: "B", Email: "b@x.com", Status: "inactive"})

	filter := ListFilter{Status: "inactive"}
	var got []Customer
	err := db.Scopes(filter.Scope("name")).Find(&got).Error
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestListFilterAbsentMeansNoConstraint(t *testing.T) {
	db := setupFilterTestDB(t)

	db.Create(&Customer{Name: "A", Email: "a@x.com", Status: "active"})
	db.Create(&Customer{Name: "B", Email: "b@x.com", Status: "inactive"})

	// Zero-value filter must match everything, not "status = ''"
	var got []Customer
	err := db.Scopes(ListFilter{}.Scope("name")).Find(&got).Error
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, ClampProgress(-10))
	assert.Equal(t, 100, ClampProgress(250))
	assert.Equal(t, 55, ClampProgress(55))
}
