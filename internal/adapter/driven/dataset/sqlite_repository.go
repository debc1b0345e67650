package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	// Driver SQLite (registra "sqlite3").
	_ "github.com/mattn/go-sqlite3"

	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/domain/repository"
)

// SQLiteRepositoryImpl carrega o dataset de um banco SQLite com uma tabela por coleção.
type SQLiteRepositoryImpl struct {
	path string
}

// NewSQLiteRepository cria um DatasetRepository que lê o banco em path (somente leitura).
func NewSQLiteRepository(path string) repository.DatasetRepository {
	return &SQLiteRepositoryImpl{path: path}
}

// Describe returns a human readable name of the source.
func (r *SQLiteRepositoryImpl) Describe() string {
	return fmt.Sprintf("SQLite database %s", r.path)
}

// LoadDataset lê as tabelas clients, tasks, meetings e communications.
// Todas devem existir; colunas extras são ignoradas.
func (r *SQLiteRepositoryImpl) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	db, err := sql.Open("sqlite3", readOnlyDSN(r.path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	tables := make(map[string][]rawRow)
	for _, name := range tableNames() {
		rows, err := queryTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables[name] = rows
	}

	return buildDataset(tables), nil
}

// readOnlyDSN monta a URI "file:" do SQLite com o caminho escapado, de modo que
// "?" e "#" no nome do arquivo não sejam lidos como query ou fragmento.
// Caminhos relativos viram absolutos para não serem lidos como autoridade da URI.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String()
}

// queryTable lê todas as linhas de uma tabela, preservando a ordem de inserção.
func queryTable(ctx context.Context, db *sql.DB, table string) ([]rawRow, error) {
	// table vem de tableNames(), nunca da entrada do usuário
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	for i, c := range columns {
		columns[i] = normalizeHeader(table, c)
	}

	var out []rawRow
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		row := make(rawRow, len(columns))
		for i, v := range values {
			if v.Valid {
				row[columns[i]] = v.String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
