package parser

import (
	"path"
	"strings"

	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/pkg/errors"
)

var ErrFormat = errors.New("unsupported chart format")

type Parser interface {
	Parse(file string) (*game.Chart, error)
}

// ForFile picks a parser by file extension.
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	case ".sm":
		return &SMParser{}, nil
	}
	return nil, errors.Wrap(ErrFormat, file)
}
