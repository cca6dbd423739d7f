package database

import (
	"fmt"
	"os"

	"shuttle-tracker/logger"
	boardingModel "shuttle-tracker/models/boarding"
	employeeModel "shuttle-tracker/models/employee"
	vehicleModel "shuttle-tracker/models/vehicle"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// Stage 1: entity tables
	stage1Models := []interface{}{
		&employeeModel.Employee{},
		&vehicleModel.Vehicle{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: tables referencing stage 1
	stage2Models := []interface{}{
		&boardingModel.BoardingRecord{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Employee indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_employees_status ON employees(status)").Error; err != nil {
		return fmt.Errorf("failed to create employee status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_employees_created_at ON employees(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create employee created_at index: %w", err)
	}

	// Vehicle indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles(status)").Error; err != nil {
		return fmt.Errorf("failed to create vehicle status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create vehicle created_at index: %w", err)
	}

	// Boarding record indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_boarding_records_boarding_date ON boarding_records(boarding_date)").Error; err != nil {
		return fmt.Errorf("failed to create boarding_record boarding_date index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_boarding_records_boarding_time ON boarding_records(boarding_time)").Error; err != nil {
		return fmt.Errorf("failed to create boarding_record boarding_time index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration.
// The vehicle reference is SET NULL on delete: a deleted vehicle's records
// survive as external-style rows. Employee references are validated at
// insert time by the registration workflow instead of a constraint, so
// employee deletion stays unguarded as documented.
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_boarding_records_vehicle",
			sql: `ALTER TABLE boarding_records ADD CONSTRAINT fk_boarding_records_vehicle
				  FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
