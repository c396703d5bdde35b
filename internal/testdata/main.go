package testdata

import (
	_ "embed"

	"git.lost.host/meutraa/eotb/internal/game"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed chart.yaml
	ChartYAML []byte

	//go:embed song.sm
	SM []byte
)

// GetChart returns a fresh copy of the tutorial chart.
func GetChart() (*game.Chart, error) {
	var chart game.Chart
	if err := yaml.Unmarshal(ChartYAML, &chart); nil != err {
		return nil, err
	}
	return &chart, nil
}
