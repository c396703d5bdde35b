// Package input turns key presses into lane inputs.
package input

import (
	"context"

	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

var ErrKeymap = errors.New("keymap needs one distinct key per lane")

// Keymap maps runes to lanes. The arrow keys always map to their lane.
type Keymap map[rune]game.Lane

// ParseKeymap reads one key per lane, in lane order.
func ParseKeymap(keys string) (Keymap, error) {
	runes := []rune(keys)
	if len(runes) != game.LaneCount {
		return nil, errors.Wrapf(ErrKeymap, "%q", keys)
	}
	k := make(Keymap, game.LaneCount)
	for i, r := range runes {
		if _, ok := k[r]; ok {
			return nil, errors.Wrapf(ErrKeymap, "%q repeats %q", keys, r)
		}
		k[r] = game.Lanes[i]
	}
	return k, nil
}

var arrows = map[keyboard.Key]game.Lane{
	keyboard.KeyArrowUp:    game.Up,
	keyboard.KeyArrowDown:  game.Down,
	keyboard.KeyArrowLeft:  game.Left,
	keyboard.KeyArrowRight: game.Right,
}

// Lane resolves a key event. Space arrives as a key with no rune.
func (k Keymap) Lane(ev keyboard.KeyEvent) (game.Lane, bool) {
	if l, ok := arrows[ev.Key]; ok {
		return l, true
	}
	r := ev.Rune
	if r == 0 && ev.Key == keyboard.KeySpace {
		r = ' '
	}
	l, ok := k[r]
	return l, ok
}

// FromKeyboard forwards lane presses until Esc or Ctrl-C is pressed, the
// events close, or the context is done. Keys not in the map are ignored.
// The terminal only reports presses, so no releases are produced.
func FromKeyboard(ctx context.Context, events <-chan keyboard.KeyEvent, keys Keymap, push func(game.Input)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if nil != ev.Err {
				return errors.Wrap(ev.Err, "keyboard")
			}
			if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
				return nil
			}
			if l, ok := keys.Lane(ev); ok {
				push(game.Input{Lane: l})
			}
		}
	}
}
