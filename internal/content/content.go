// Package content loads the fixed copy the assistant speaks: the booking
// reply, the chat system prompt, relay error texts and the qualification
// dialogue messages. The catalogue is embedded and parsed once at startup.
package content

import (
	_ "embed"
	"fmt"
	"strings"

	"homeloans_backend/internal/qualification"
	"homeloans_backend/platform/phone"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultCatalogue []byte

type catalogueYAML struct {
	BookingReply string `yaml:"booking_reply"`
	SystemPrompt struct {
		Identity       string   `yaml:"identity"`
		KeyInformation []string `yaml:"key_information"`
		Guidelines     []string `yaml:"guidelines"`
		Closing        string   `yaml:"closing"`
	} `yaml:"system_prompt"`
	Relay struct {
		Unavailable   string `yaml:"unavailable"`
		Failed        string `yaml:"failed"`
		NotConfigured string `yaml:"not_configured"`
	} `yaml:"relay"`
	Qualification struct {
		Intro            string            `yaml:"intro"`
		Decline          string            `yaml:"decline"`
		NumericGuidance  string            `yaml:"numeric_guidance"`
		ChoiceGuidance   string            `yaml:"choice_guidance"`
		EstimateSummary  string            `yaml:"estimate_summary"`
		MissingIncome    string            `yaml:"missing_income"`
		Tiers            map[string]string `yaml:"tiers"`
		ResourcesHeading string            `yaml:"resources_heading"`
		Resources        []struct {
			Title string `yaml:"title"`
			URL   string `yaml:"url"`
		} `yaml:"resources"`
	} `yaml:"qualification"`
}

// Catalogue is the immutable copy used at runtime.
type Catalogue struct {
	BookingReply          string
	SystemPrompt          string
	RelayUnavailable      string
	RelayFailed           string
	LLMNotConfigured      string
	QualificationMessages qualification.Messages
}

// Load parses the embedded catalogue, filling {broker_phone} with the
// formatted brokerage number.
func Load(brokerPhone string) (*Catalogue, error) {
	return Parse(defaultCatalogue, brokerPhone)
}

// Parse builds a Catalogue from YAML bytes.
func Parse(data []byte, brokerPhone string) (*Catalogue, error) {
	var raw catalogueYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse content catalogue: %w", err)
	}

	fill := strings.NewReplacer("{broker_phone}", phone.FormatNational(brokerPhone)).Replace
	q := raw.Qualification

	tiers := make(map[qualification.Tier]string, len(q.Tiers))
	for name, text := range q.Tiers {
		tier := qualification.Tier(name)
		if !tier.Valid() {
			return nil, fmt.Errorf("parse content catalogue: unknown tier %q", name)
		}
		tiers[tier] = fill(strings.TrimSpace(text))
	}

	resources := make([]qualification.Resource, 0, len(q.Resources))
	for _, r := range q.Resources {
		resources = append(resources, qualification.Resource{Title: r.Title, URL: r.URL})
	}

	cat := &Catalogue{
		BookingReply:     strings.TrimSpace(raw.BookingReply),
		SystemPrompt:     compileSystemPrompt(raw),
		RelayUnavailable: fill(strings.TrimSpace(raw.Relay.Unavailable)),
		RelayFailed:      fill(strings.TrimSpace(raw.Relay.Failed)),
		LLMNotConfigured: strings.TrimSpace(raw.Relay.NotConfigured),
		QualificationMessages: qualification.Messages{
			Intro:            fill(strings.TrimSpace(q.Intro)),
			Decline:          fill(strings.TrimSpace(q.Decline)),
			NumericGuidance:  strings.TrimSpace(q.NumericGuidance),
			ChoiceGuidance:   strings.TrimSpace(q.ChoiceGuidance),
			EstimateSummary:  strings.TrimSpace(q.EstimateSummary),
			MissingIncome:    fill(strings.TrimSpace(q.MissingIncome)),
			Tiers:            tiers,
			ResourcesHeading: strings.TrimSpace(q.ResourcesHeading),
			Resources:        resources,
		},
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func compileSystemPrompt(raw catalogueYAML) string {
	sp := raw.SystemPrompt
	var b strings.Builder
	b.WriteString(strings.TrimSpace(sp.Identity))
	writeList(&b, "Key Information:", sp.KeyInformation)
	writeList(&b, "Guidelines:", sp.Guidelines)
	if closing := strings.TrimSpace(sp.Closing); closing != "" {
		b.WriteString("\n\n")
		b.WriteString(closing)
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n\n")
	b.WriteString(heading)
	for _, item := range items {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
}

func (c *Catalogue) validate() error {
	required := map[string]string{
		"booking_reply":                  c.BookingReply,
		"system_prompt":                  c.SystemPrompt,
		"relay.unavailable":              c.RelayUnavailable,
		"relay.failed":                   c.RelayFailed,
		"relay.not_configured":           c.LLMNotConfigured,
		"qualification.decline":          c.QualificationMessages.Decline,
		"qualification.estimate_summary": c.QualificationMessages.EstimateSummary,
		"qualification.missing_income":   c.QualificationMessages.MissingIncome,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("content catalogue: %s is required", key)
		}
	}
	for _, tier := range []qualification.Tier{qualification.TierHot, qualification.TierWarm, qualification.TierCold} {
		if c.QualificationMessages.Tiers[tier] == "" {
			return fmt.Errorf("content catalogue: qualification.tiers.%s is required", tier)
		}
	}
	return nil
}
