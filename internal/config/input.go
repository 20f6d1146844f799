package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of offer input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads offers from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Offers) == 0 {
		return fmt.Errorf("no offers provided")
	}

	seen := make(map[string]bool)
	for i := range config.Offers {
		offer := &config.Offers[i]
		if err := ip.ValidateOffer(offer); err != nil {
			return fmt.Errorf("offer %d (%s) validation failed: %w", i, offer.Reference, err)
		}
		if seen[offer.Reference] {
			return fmt.Errorf("duplicate offer reference: %s", offer.Reference)
		}
		seen[offer.Reference] = true
	}
	return nil
}

// ValidateOffer validates a single offer
func (ip *InputParser) ValidateOffer(offer *domain.Offer) error {
	if offer.Reference == "" {
		return fmt.Errorf("reference is required")
	}
	if err := ip.ValidateParameters(offer.Parameters(offer.SliderPercent)); err != nil {
		return err
	}
	return nil
}

// ValidateParameters checks the calculator preconditions
func (ip *InputParser) ValidateParameters(params domain.OfferParameters) error {
	if params.MarketValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("market value must be positive")
	}
	if params.ContractDuration < 1 {
		return fmt.Errorf("contract duration must be at least 1 year")
	}
	if params.SliderPercent < 0 || params.SliderPercent > 100 {
		return fmt.Errorf("slider percent must be between 0 and 100")
	}
	return nil
}

// SaveConfiguration writes a configuration as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// CreateExampleConfiguration returns a small offer file for documentation and tests
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Offers: []domain.Offer{
			{
				Reference:        "VG-2031",
				Address:          "12 rue des Lilas, 69003 Lyon",
				MarketValue:      decimal.NewFromInt(500000),
				ContractDuration: 20,
				SliderPercent:    50,
				AdvisorPhone:     "+33 4 72 00 00 00",
			},
			{
				Reference:        "VG-2032",
				Address:          "4 impasse du Port, 17000 La Rochelle",
				MarketValue:      decimal.NewFromInt(320000),
				ContractDuration: 15,
				SliderPercent:    0,
				AdvisorPhone:     "+33 5 46 00 00 00",
			},
		},
	}
}
