package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LegacyXsecsEnv is the environment variable the analysis scripts have
// always used to point at the cross-section tables.
const LegacyXsecsEnv = "PANDA_XSECS"

// Config holds the application configuration
type Config struct {
	XsecsDir      string `mapstructure:"xsecs"`
	Output        string `mapstructure:"output"`
	ModuleWidth   int    `mapstructure:"module_width"`
	ColorInfo     string `mapstructure:"color_info"`
	ColorWarning  string `mapstructure:"color_warning"`
	ColorDebug    string `mapstructure:"color_debug"`
	ColorError    string `mapstructure:"color_error"`
	ColorHeader   string `mapstructure:"color_header"`
	ColorSelected string `mapstructure:"color_selected"`
	ColorDim      string `mapstructure:"color_dim"`
	ColorBorder   string `mapstructure:"color_border"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	// .env only fills variables that are not already set
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	viper.SetDefault("xsecs", "")
	viper.SetDefault("output", "print")
	viper.SetDefault("module_width", 40)
	viper.SetDefault("color_info", "32")    // Green
	viper.SetDefault("color_warning", "91") // Bright red
	viper.SetDefault("color_debug", "36")   // Cyan
	viper.SetDefault("color_error", "31")   // Red, used as background
	viper.SetDefault("color_header", "36")
	viper.SetDefault("color_selected", "236")
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("color_border", "240")

	viper.SetConfigName("pandatools")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "pandatools"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("PANDATOOLS")
	viper.AutomaticEnv()
	if err := viper.BindEnv("xsecs", "PANDATOOLS_XSECS", LegacyXsecsEnv); err != nil {
		return err
	}

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// GetXsecsDir returns the cross-section table directory with tilde expansion
func GetXsecsDir() string {
	return expandTilde(viper.GetString("xsecs"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetModuleWidth returns the width of the module column in log lines
func GetModuleWidth() int {
	return viper.GetInt("module_width")
}

// GetColorInfo returns ANSI color code for INFO tags
func GetColorInfo() string {
	return viper.GetString("color_info")
}

// GetColorWarning returns ANSI color code for WARNING tags
func GetColorWarning() string {
	return viper.GetString("color_warning")
}

// GetColorDebug returns ANSI color code for DEBUG tags
func GetColorDebug() string {
	return viper.GetString("color_debug")
}

// GetColorError returns ANSI color code for the ERROR tag background
func GetColorError() string {
	return viper.GetString("color_error")
}

// GetColorHeader returns ANSI color code for the browser header
func GetColorHeader() string {
	return viper.GetString("color_header")
}

// GetColorSelected returns the 256-color code of the selected row background
func GetColorSelected() string {
	return viper.GetString("color_selected")
}

// GetColorDim returns the 256-color code for dimmed text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorBorder returns the 256-color code for borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetXsecsDir sets the table directory at runtime
func SetXsecsDir(dir string) {
	viper.Set("xsecs", dir)
	C.XsecsDir = dir
}
