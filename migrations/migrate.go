package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed *.sql
var files embed.FS

// Up 按文件名顺序执行尚未执行过的迁移
func Up(db *sql.DB) error {
	if db == nil {
		return errors.New("数据库连接不能为空")
	}

	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return fmt.Errorf("列出迁移文件失败: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		sqlBytes, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("读取迁移 %s 失败: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("开始迁移 %s 的事务失败: %w", name, err)
		}

		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			if !isIgnorableMigrationError(err) {
				return fmt.Errorf("执行迁移 %s 失败: %w", name, err)
			}
			// 对象已经存在，说明之前手动建过表，只需要记录即可
			if _, err := db.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1) ON CONFLICT (filename) DO NOTHING`, name); err != nil {
				return fmt.Errorf("记录迁移 %s 失败: %w", name, err)
			}
			continue
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("记录迁移 %s 失败: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("提交迁移 %s 失败: %w", name, err)
		}
	}

	return nil
}

func ensureMigrationsTable(db *sql.DB) error {
	const query = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	filename text PRIMARY KEY,
	applied_at timestamptz NOT NULL DEFAULT now()
)
`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("创建迁移记录表失败: %w", err)
	}
	return nil
}

func isApplied(db *sql.DB, name string) (bool, error) {
	var exists bool
	if err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`,
		name,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("检查迁移 %s 失败: %w", name, err)
	}
	return exists, nil
}

func isIgnorableMigrationError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case "42P07", // duplicate_table
		"42710": // duplicate_object
		return true
	default:
		return false
	}
}
