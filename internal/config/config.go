package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avstrong/hotel/internal/hotel"
)

var ErrUnknownOutput = errors.New("unknown log output")

type Config struct {
	Hotel HotelConfig `yaml:"hotel"`
	Log   LogConfig   `yaml:"log"`
}

type HotelConfig struct {
	Name  string      `yaml:"name"`
	Rooms []RoomBlock `yaml:"rooms"`
}

type RoomBlock struct {
	From     int    `yaml:"from"`
	To       int    `yaml:"to"`
	Category string `yaml:"category"`
	Rate     int64  `yaml:"rate"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"` // stderr or discard
}

func Default() *Config {
	cfg := &Config{
		Hotel: HotelConfig{Name: "SHARAD Hotel"},
		Log:   LogConfig{Level: "info", Output: "stderr"},
	}

	for _, block := range hotel.DefaultLayout() {
		cfg.Hotel.Rooms = append(cfg.Hotel.Rooms, RoomBlock{
			From:     block.From,
			To:       block.To,
			Category: string(block.Category),
			Rate:     int64(block.Rate),
		})
	}

	return cfg
}

// LoadConfig reads path over the defaults. An empty path yields Default().
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.Hotel.Name != "" {
		cfg.Hotel.Name = file.Hotel.Name
	}

	if len(file.Hotel.Rooms) > 0 {
		cfg.Hotel.Rooms = file.Hotel.Rooms
	}

	if file.Log.Level != "" {
		cfg.Log.Level = file.Log.Level
	}

	if file.Log.Output != "" {
		cfg.Log.Output = file.Log.Output
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Log.Output {
	case "stderr", "discard":
	default:
		return fmt.Errorf("log.output %q: %w", c.Log.Output, ErrUnknownOutput)
	}

	layout, err := c.Layout()
	if err != nil {
		return err
	}

	if err := hotel.ValidateLayout(layout); err != nil {
		return fmt.Errorf("hotel.rooms: %w", err)
	}

	return nil
}

func (c *Config) Layout() ([]hotel.RoomLayout, error) {
	layout := make([]hotel.RoomLayout, 0, len(c.Hotel.Rooms))

	for _, block := range c.Hotel.Rooms {
		category, err := hotel.ParseCategory(block.Category)
		if err != nil {
			return nil, fmt.Errorf("hotel.rooms: %w", err)
		}

		layout = append(layout, hotel.RoomLayout{
			From:     block.From,
			To:       block.To,
			Category: category,
			Rate:     hotel.Money(block.Rate),
		})
	}

	return layout, nil
}
