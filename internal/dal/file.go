package dal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// FileDAL implements RosterSource by reading a YAML or JSON roster file.
// The file is re-read on every load so edits show up on the next reload.
//
// Accepted shapes:
//
//	players:
//	  - name: SirAlexius
//	    tiers: [HT1, HT1]
//
// or a bare top-level list of players. JSON files use the same keys.
type FileDAL struct {
	path string
}

type rosterFile struct {
	Players []models.Player `yaml:"players"`
}

// NewFileDAL creates a file-backed roster source
func NewFileDAL(path string) (*FileDAL, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: unsupported roster file extension %q", ErrUnknownSource, filepath.Ext(path))
	}
	return &FileDAL{path: path}, nil
}

func (f *FileDAL) Name() string { return "file:" + f.path }

func (f *FileDAL) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	players, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", f.path, err)
	}
	return players, nil
}

// ParseRoster decodes a YAML or JSON roster document.
func ParseRoster(data []byte) ([]models.Player, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return []models.Player{}, nil
	}

	root := doc.Content[0]
	var players []models.Player
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&players); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var rf rosterFile
		if err := root.Decode(&rf); err != nil {
			return nil, err
		}
		players = rf.Players
	default:
		return nil, fmt.Errorf("%w: roster must be a list or a mapping with a players key", ErrInvalidRoster)
	}

	return clonePlayers(players), nil
}
