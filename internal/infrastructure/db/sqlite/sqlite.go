// Package sqlite implements the relational store on a single database file.
// One *gorm.DB is opened at process start and shared by every repository; no
// per-call open/close.
package sqlite

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config captures the settings for opening the database file.
type Config struct {
	Path string
}

// Connect opens (creating if needed) the database file and migrates the four
// tables. The returned handle is safe for concurrent use.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}, &companyRecord{}, &investorCompanyRecord{}, &companyDataRecord{}); err != nil {
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return db, nil
}

// userRecord is the users table.
type userRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	OrgName      string
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

// companyRecord is the companies table. OwnerID references the investee user.
type companyRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;not null"`
	OwnerID   int64  `gorm:"index;not null"`
	CreatedAt time.Time
}

func (companyRecord) TableName() string { return "companies" }

// investorCompanyRecord is the subscription join table, unique per pair.
type investorCompanyRecord struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	InvestorID int64 `gorm:"uniqueIndex:idx_investor_company;not null"`
	CompanyID  int64 `gorm:"uniqueIndex:idx_investor_company;not null"`
	CreatedAt  time.Time
}

func (investorCompanyRecord) TableName() string { return "investor_companies" }

// companyDataRecord is the company_data table: one serialized row-set per
// (company, category). The composite unique index backs the replace-on-upload
// invariant even under concurrent saves.
type companyDataRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CompanyID   int64  `gorm:"uniqueIndex:idx_company_category;not null"`
	DataType    string `gorm:"uniqueIndex:idx_company_category;not null"`
	DataContent string `gorm:"not null"`
	UploadedAt  time.Time
}

func (companyDataRecord) TableName() string { return "company_data" }
