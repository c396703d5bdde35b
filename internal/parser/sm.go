package parser

import (
	"io/ioutil"
	"math"
	"math/big"
	"strconv"
	"strings"

	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/pkg/errors"
)

// StepMania column order for dance-single
var smLanes = [...]game.Lane{game.Left, game.Down, game.Up, game.Right}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

// SMParser imports a dance-single chart from a StepMania file. The battle
// loops the whole chart at the first listed tempo, holds become taps, and
// mines are dropped.
type SMParser struct {
	Difficulty string // name of the chart to import, first one when empty
}

func (p *SMParser) mapToNote(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4'
}

type smDifficulty struct {
	Name    string
	Section string
}

func (p *SMParser) Parse(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseBytes(data)
}

func (p *SMParser) ParseBytes(data []byte) (*game.Chart, error) {
	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	var selected *smDifficulty
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		if chartType != "dance-single" {
			continue
		}
		d := &smDifficulty{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Section: lines[6],
		}
		if p.Difficulty == "" || strings.EqualFold(p.Difficulty, d.Name) {
			selected = d
			break
		}
	}
	if nil == selected {
		return nil, errors.Errorf("no dance-single chart %q", p.Difficulty)
	}

	title, bpms := "", ""
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if strings.HasPrefix(mdl, "TITLE:") {
			title = strings.TrimSuffix(strings.TrimPrefix(mdl, "TITLE:"), ";")
		} else if strings.HasPrefix(mdl, "BPMS:") {
			bpms = strings.TrimSuffix(strings.TrimPrefix(mdl, "BPMS:"), ";")
		}
	}
	bpm, err := p.firstBPM(bpms)
	if nil != err {
		return nil, err
	}
	return p.parseNotes(title, bpm, selected)
}

// Only the opening tempo is kept, a battle song has one tempo.
func (p *SMParser) firstBPM(bpms string) (float64, error) {
	bpms = strings.ReplaceAll(bpms, "\n", "")
	if strings.TrimSpace(bpms) == "" {
		return 0, errors.New("chart has no #BPMS")
	}
	first := strings.Split(bpms, ",")[0]
	as := strings.Split(first, "=")
	if len(as) != 2 {
		return 0, errors.Errorf("malformed bpm %q", first)
	}
	bpm, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
	if nil != err {
		return 0, errors.Wrap(err, "unable to parse bpm")
	}
	if bpm <= 0 {
		return 0, errors.Wrapf(game.ErrInvalidSong, "bpm %v", bpm)
	}
	return bpm, nil
}

func (p *SMParser) parseNotes(title string, bpm float64, d *smDifficulty) (*game.Chart, error) {
	notes := []game.ChartNote{}
	blocks := strings.Split(strings.Split(d.Section, ";")[0], "\n,")

	measures := 0
	for _, block := range blocks {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			if strings.HasPrefix(l, " ") || strings.HasPrefix(l, "//") || strings.Contains(l, "-") {
				continue
			}
			l = strings.TrimSpace(strings.TrimPrefix(l, ","))
			if len(l) > 3 {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}

		// Beat count is 4 per block
		lineCount := int64(len(lines))
		for i, line := range lines {
			r := big.NewRat(int64(i*4), lineCount)
			beat, _ := r.Float64()
			beat += float64(measures * 4)
			for c := 0; c < len(smLanes) && c < len(line); c++ {
				if !p.mapToNote(line[c]) {
					continue
				}
				notes = append(notes, game.ChartNote{
					Lane: smLanes[c],
					Beat: beat,
					Icon: strconv.FormatInt(r.Denom().Int64(), 10),
				})
			}
		}
		measures++
	}
	if measures == 0 {
		return nil, errors.New("chart has no measures")
	}

	loop := float64(measures * 4)
	chart := &game.Chart{
		Name: strings.TrimSpace(title + " " + d.Name),
		Song: game.Song{
			BPM:        bpm,
			LoopLength: loop,
			Duration:   math.Round(loop*60/bpm*1000) / 1000,
		},
		Notes: notes,
	}
	if err := chart.Validate(); nil != err {
		return nil, err
	}
	return chart, nil
}
