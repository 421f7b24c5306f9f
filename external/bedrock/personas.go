package bedrock

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml
var defaultPersonaCatalogue []byte

type personaFile struct {
	Default  string            `yaml:"default"`
	Personas map[string]string `yaml:"personas"`
}

// PersonaCatalogue maps each persona to its system prompt.
type PersonaCatalogue struct {
	fallback recommendation.Persona
	prompts  map[recommendation.Persona]string
}

func DefaultPersonaCatalogue() (PersonaCatalogue, error) {
	return ParsePersonaCatalogue(defaultPersonaCatalogue)
}

func ParsePersonaCatalogue(raw []byte) (PersonaCatalogue, error) {
	var file personaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return PersonaCatalogue{}, fmt.Errorf("decode persona catalogue: %w", err)
	}

	catalogue := PersonaCatalogue{
		fallback: recommendation.Persona(strings.TrimSpace(file.Default)),
		prompts:  make(map[recommendation.Persona]string, len(file.Personas)),
	}
	for name, prompt := range file.Personas {
		persona, err := recommendation.ParsePersona(name)
		if err != nil {
			return PersonaCatalogue{}, fmt.Errorf("persona catalogue: %w", err)
		}
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			return PersonaCatalogue{}, fmt.Errorf("persona catalogue: empty prompt for %s", persona)
		}
		catalogue.prompts[persona] = prompt
	}
	if _, ok := catalogue.prompts[catalogue.fallback]; !ok {
		return PersonaCatalogue{}, fmt.Errorf("persona catalogue: default persona %q has no prompt", file.Default)
	}
	return catalogue, nil
}

// SystemPrompt returns the persona prompt, falling back to the default persona.
func (c PersonaCatalogue) SystemPrompt(persona recommendation.Persona) string {
	if prompt, ok := c.prompts[persona]; ok {
		return prompt
	}
	return c.prompts[c.fallback]
}
