package panel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/clusterpanel/pkg/errors"
)

// Defaults applied by [Options.SetDefaults].
const (
	DefaultColor  = "green"
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultText   = "Default value of text input option"
)

// Options configures how a panel is drawn.
type Options struct {
	Color           string  `json:"color" toml:"color" validate:"required"`
	ShowSeriesCount bool    `json:"show_series_count" toml:"show_series_count"`
	Text            string  `json:"text" toml:"text" validate:"max=1024"`
	Width           float64 `json:"width" toml:"width" validate:"gt=0,lte=20000"`
	Height          float64 `json:"height" toml:"height" validate:"gt=0,lte=20000"`
	ShowEdges       bool    `json:"show_edges,omitempty" toml:"show_edges"`
	Labels          bool    `json:"labels,omitempty" toml:"labels"`
}

// DefaultOptions returns the options of a freshly added panel.
func DefaultOptions() Options {
	o := Options{Text: DefaultText, ShowSeriesCount: false}
	o.SetDefaults()
	return o
}

// SetDefaults fills unset color and dimensions.
func (o *Options) SetDefaults() {
	if o.Color == "" {
		o.Color = DefaultColor
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

var validate = validator.New()

// Validate checks o against its declared constraints.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "%s", formatValidationError(err))
	}
	return nil
}

// formatValidationError condenses validator errors into one line.
func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// LoadOptions reads options from a TOML file. Keys missing from the file
// keep the values already present in base.
func LoadOptions(path string, base Options) (Options, error) {
	opts := base
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "read options %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "unknown option %q in %s", undecoded[0].String(), path)
	}
	return opts, nil
}

// TextLines returns the lines of the panel's text box, top to bottom.
func (o Options) TextLines(seriesCount int) []string {
	lines := make([]string, 0, 2)
	if o.ShowSeriesCount {
		lines = append(lines, "Number of series: "+strconv.Itoa(seriesCount))
	}
	return append(lines, "Text option value: "+o.Text)
}
