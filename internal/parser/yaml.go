package parser

import (
	"io/ioutil"

	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAMLParser reads charts written by hand:
//
//	name: tutorial
//	bpm: 120
//	loop_length: 8
//	notes:
//	  - {lane: up, beat: 4}
//	  - {lane: left, beat: 6, owner: player}
type YAMLParser struct{}

func (p *YAMLParser) Parse(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseBytes(data)
}

func (p *YAMLParser) ParseBytes(data []byte) (*game.Chart, error) {
	var chart game.Chart
	if err := yaml.Unmarshal(data, &chart); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal chart")
	}
	if err := chart.Validate(); nil != err {
		return nil, err
	}
	return &chart, nil
}

// Write saves a chart in the format Parse reads.
func (p *YAMLParser) Write(file string, chart *game.Chart) error {
	data, err := yaml.Marshal(chart)
	if nil != err {
		return errors.Wrap(err, "unable to marshal chart")
	}
	return ioutil.WriteFile(file, data, 0644)
}
