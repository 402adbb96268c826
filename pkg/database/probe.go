// FILE: pkg/database/probe.go
package database

import (
	"context"
	"fmt"
	"time"

	"rag-admin-be/internal/entity"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const probeTimeout = 5 * time.Second

// TestConnection opens a short-lived connection to a registered external
// database and pings it. Used by the connection "test" endpoint; nothing
// is pooled or kept.
func TestConnection(ctx context.Context, conn *entity.DatabaseConnection, password string) error {
	dialector, err := dialectorFor(conn, password)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap connection: %w", err)
	}
	defer sqlDB.Close()

	pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func dialectorFor(conn *entity.DatabaseConnection, password string) (gorm.Dialector, error) {
	switch conn.Engine {
	case entity.DatabaseEnginePostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=prefer",
			conn.Host, conn.Username, password, conn.Database, conn.Port)
		return postgres.Open(dsn), nil
	case entity.DatabaseEngineMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&timeout=5s",
			conn.Username, password, conn.Host, conn.Port, conn.Database)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", conn.Engine)
	}
}

