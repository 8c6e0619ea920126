package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Generator writes and lists migration files.
type Generator struct {
	migrationsDir string
}

// NewGenerator creates a new migration file generator.
func NewGenerator(migrationsDir string) *Generator {
	return &Generator{migrationsDir: migrationsDir}
}

// Generate writes a migration file pair from up and down SQL.
func (g *Generator) Generate(name, upSQL, downSQL string) (*File, error) {
	if err := os.MkdirAll(g.migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := GenerateVersion()
	file := &File{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(g.migrationsDir, GenerateFileName(version, name, "up")),
		DownPath: filepath.Join(g.migrationsDir, GenerateFileName(version, name, "down")),
	}

	if err := os.WriteFile(file.UpPath, []byte(upSQL), 0644); err != nil {
		return nil, fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(file.DownPath, []byte(downSQL), 0644); err != nil {
		return nil, fmt.Errorf("failed to write down migration: %w", err)
	}

	return file, nil
}

// ListMigrations lists all complete migration file pairs, sorted by version.
func (g *Generator) ListMigrations() ([]File, error) {
	entries, err := os.ReadDir(g.migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []File{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	fileMap := make(map[string]*File)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()

		// {version}_{name}.{direction}.sql
		version, rest, ok := strings.Cut(fileName, "_")
		if !ok {
			continue
		}
		if name, ok := strings.CutSuffix(rest, ".up.sql"); ok {
			if _, exists := fileMap[version]; !exists {
				fileMap[version] = &File{Version: version, Name: name}
			}
			fileMap[version].UpPath = filepath.Join(g.migrationsDir, fileName)
		} else if name, ok := strings.CutSuffix(rest, ".down.sql"); ok {
			if _, exists := fileMap[version]; !exists {
				fileMap[version] = &File{Version: version, Name: name}
			}
			fileMap[version].DownPath = filepath.Join(g.migrationsDir, fileName)
		}
	}

	var migrations []File
	for _, f := range fileMap {
		if f.UpPath != "" && f.DownPath != "" {
			migrations = append(migrations, *f)
		}
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// ReadMigration reads the SQL content of a migration file pair.
func (g *Generator) ReadMigration(file File) (*Migration, error) {
	upSQL, err := os.ReadFile(file.UpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read up migration: %w", err)
	}
	downSQL, err := os.ReadFile(file.DownPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read down migration: %w", err)
	}

	return &Migration{
		Version: file.Version,
		Name:    file.Name,
		UpSQL:   string(upSQL),
		DownSQL: string(downSQL),
	}, nil
}
