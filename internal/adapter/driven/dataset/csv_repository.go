package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/domain/repository"
)

// CSVRepositoryImpl carrega o dataset de um diretório com um CSV por coleção
// (clients.csv, tasks.csv, meetings.csv, communications.csv).
type CSVRepositoryImpl struct {
	dir string
}

// NewCSVRepository cria um DatasetRepository baseado em arquivos CSV.
func NewCSVRepository(dir string) repository.DatasetRepository {
	return &CSVRepositoryImpl{dir: dir}
}

// Describe returns a human readable name of the source.
func (r *CSVRepositoryImpl) Describe() string {
	return fmt.Sprintf("CSV directory %s", r.dir)
}

// LoadDataset lê todos os arquivos. clients.csv é obrigatório; as demais coleções
// ficam vazias quando o arquivo não existe.
func (r *CSVRepositoryImpl) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	fileInfo, err := os.Stat(r.dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing data directory: %w", err)
	}
	if !fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", r.dir)
	}

	tables := make(map[string][]rawRow)
	for _, name := range tableNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(r.dir, name+".csv")
		rows, err := readCSV(path, name)
		if errors.Is(err, os.ErrNotExist) && name != entity.ClientSchema.Name {
			continue
		}
		if err != nil {
			return nil, err
		}
		tables[name] = rows
	}

	return buildDataset(tables), nil
}

func readCSV(path, collection string) ([]rawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header of %s: %w", filepath.Base(path), err)
	}
	for i, h := range headers {
		headers[i] = normalizeHeader(collection, h)
	}

	var rows []rawRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s line %d: %w", filepath.Base(path), line, err)
		}
		row := make(rawRow, len(headers))
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
