package theme

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/maflot/diceplot/pkg/errors"
)

// themeFile is the TOML representation of a theme:
//
//	group_alpha = 0.6
//	background = "#FFFFFF"
//
//	[catc]
//	Amyloid = "#d5cccd"
//	NFT = "#cb9992"
//
//	[group]
//	"BBB-linked" = "#333333"
//
// Key order inside [catc] is significant: it fixes the pip positions.
type themeFile struct {
	GroupAlpha *float64          `toml:"group_alpha"`
	Background string            `toml:"background"`
	CatC       map[string]string `toml:"catc"`
	Group      map[string]string `toml:"group"`
}

// Load reads a theme from a TOML file. Palette entries keep the order in
// which they appear in the file. Missing settings fall back to [Default].
func Load(path string) (*Theme, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "theme not found: %s", path)
	}

	var tf themeFile
	md, err := toml.DecodeFile(path, &tf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme %s", path)
	}

	th := Default()
	if tf.GroupAlpha != nil {
		if *tf.GroupAlpha < 0 || *tf.GroupAlpha > 1 {
			return nil, errors.New(errors.ErrCodeInvalidTheme, "group_alpha must be in [0,1], got %v", *tf.GroupAlpha)
		}
		th.GroupAlpha = *tf.GroupAlpha
	}
	if tf.Background != "" {
		if err := errors.ValidateColor(tf.Background); err != nil {
			return nil, err
		}
		th.Background = tf.Background
	}

	// md.Keys preserves file order, which map iteration would lose.
	if len(tf.CatC) > 0 {
		th.CatC = NewPalette()
		if err := fillPalette(th.CatC, md, "catc", tf.CatC); err != nil {
			return nil, err
		}
	}
	if len(tf.Group) > 0 {
		th.Group = NewPalette()
		if err := fillPalette(th.Group, md, "group", tf.Group); err != nil {
			return nil, err
		}
	}

	return th, nil
}

func fillPalette(p *Palette, md toml.MetaData, table string, colors map[string]string) error {
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != table {
			continue
		}
		name := key[1]
		if err := p.Set(name, colors[name]); err != nil {
			return err
		}
	}
	return nil
}
