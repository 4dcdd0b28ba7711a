package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Keep modem settings in a YAML file between runs.
 *
 * Description:	The file looks like this:
 *
 *			sample_rate: 8000
 *			baud_rate: 300
 *			mark_freq: 1270
 *			space_freq: 1070
 *			debug: false
 *
 *		Anything left out keeps its default.  Command line
 *		options override whatever the file says.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DEFAULT_SETTINGS_FILE = "bell103.yaml"

type Settings struct {
	Config `yaml:",inline"`

	Debug bool `yaml:"debug"`
}

func DefaultSettings() Settings {
	return Settings{Config: DefaultConfig()}
}

// LoadSettings reads and validates a settings file.  If the file does not
// exist the defaults come back along with an error satisfying
// errors.Is(err, fs.ErrNotExist).
func LoadSettings(path string) (Settings, error) {
	var settings = DefaultSettings()

	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		return settings, fmt.Errorf("reading settings file %s: %w", path, readErr)
	}

	var unmarshalErr = yaml.Unmarshal(data, &settings)
	if unmarshalErr != nil {
		return DefaultSettings(), fmt.Errorf("parsing settings file %s: %w", path, unmarshalErr)
	}

	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("settings file %s: %w", path, err)
	}

	return settings, nil
}

func SaveSettings(path string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	var data, marshalErr = yaml.Marshal(settings)
	if marshalErr != nil {
		return fmt.Errorf("encoding settings: %w", marshalErr)
	}

	var writeErr = os.WriteFile(path, data, 0o644) //nolint:gosec
	if writeErr != nil {
		return fmt.Errorf("writing settings file %s: %w", path, writeErr)
	}

	return nil
}
