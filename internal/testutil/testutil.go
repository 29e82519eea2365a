// Package testutil provides the shared postgres test harness. Each test
// gets its own schema so tests can run in parallel against one database.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freshport/freshport/internal/entity"
)

const testSchema = "test_freshport"

// projectRoot walks up from this file until it finds go.mod.
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	if root := projectRoot(); root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// SetupTestDB opens a connection bound to a fresh schema, migrates the
// full model set into it, and drops the schema when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "freshport")
	password := getEnv("DB_PASSWORD", "freshport123")
	dbname := getEnv("DB_NAME", "freshport")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", testSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so every pooled connection lands in the
	// test schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a quiet gin engine with the actor middleware the
// handlers depend on.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		actorID := c.Request.Header.Get("X-Actor-ID")
		if actorID == "" {
			actorID = "test-user"
		}
		c.Set("actor_id", actorID)
		c.Next()
	})
	return r
}

// DoRequest executes one HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the JSON envelope into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// --- Seed helpers ---

func SeedWarehouse(t *testing.T, db *gorm.DB, id, code, name string) *entity.Warehouse {
	t.Helper()
	warehouse := &entity.Warehouse{
		ID:       id,
		Code:     code,
		Name:     name,
		IsActive: true,
	}
	if err := db.Create(warehouse).Error; err != nil {
		t.Fatalf("Failed to seed warehouse: %v", err)
	}
	return warehouse
}

func SeedProduct(t *testing.T, db *gorm.DB, id, code, name string, sellingPrice decimal.Decimal) *entity.Product {
	t.Helper()
	product := &entity.Product{
		ID:           id,
		Code:         code,
		Name:         name,
		Origin:       entity.OriginDomestic,
		SellingPrice: sellingPrice,
		IsActive:     true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

func SeedFarmer(t *testing.T, db *gorm.DB, id, code, name string) *entity.Farmer {
	t.Helper()
	farmer := &entity.Farmer{
		ID:         id,
		FarmerCode: code,
		Name:       name,
		FarmerType: entity.FarmerIndividual,
		IsActive:   true,
	}
	if err := db.Create(farmer).Error; err != nil {
		t.Fatalf("Failed to seed farmer: %v", err)
	}
	return farmer
}

func SeedCustomer(t *testing.T, db *gorm.DB, id, code, name string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{
		ID:           id,
		CustomerCode: code,
		Name:         name,
		CustomerType: entity.CustomerWholesale,
		IsActive:     true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}
