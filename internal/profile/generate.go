// Package profile expands a short career description into ready-to-use
// headline and "about" texts for a professional networking profile.
//
// Generation is plain template substitution: no network calls, no
// randomness, no state beyond the input record.
package profile

import (
	"fmt"
	"strings"
)

// HeadlineCount and AboutCount are the fixed sizes of a Generated profile.
const (
	HeadlineCount = 3
	AboutCount    = 2
)

// Inputs is the structured form a candidate fills in. Every field may be empty.
type Inputs struct {
	Name              string `json:"name"`
	Role              string `json:"role"`
	Area              string `json:"area"`
	YearsOfExperience string `json:"years_of_experience"`
	Skills            string `json:"skills"`
	Achievement       string `json:"achievement"`
}

// Generated holds the candidate texts in their fixed order.
type Generated struct {
	Headlines []string `json:"headlines"`
	Abouts    []string `json:"abouts"`
}

// Templates is one localized set of copy. Each field is a fmt format whose
// verbs are filled in the order documented on the field.
type Templates struct {
	Locale string

	FallbackPrimary   string
	FallbackSecondary string

	// role, primary, secondary, area
	Headline1 string
	// area, primary
	Headline2 string
	// role, years, area
	Headline3 string
	// name, years, area, role, raw skills, achievement
	About1 string
	// area, role, primary, secondary, achievement
	About2 string
}

// English is the default copy.
var English = Templates{
	Locale:            "en",
	FallbackPrimary:   "Specialist",
	FallbackSecondary: "Results-Focused",
	Headline1:         "%s | %s | %s | %s",
	Headline2:         "Specialist in %s | Helping companies through %s",
	Headline3:         "%s, Senior | %s+ years of experience in %s",
	About1: "Hi, I'm %s.\n\n" +
		"With more than %s years of experience in %s, I have built a solid career as %s.\n\n" +
		"My core expertise covers %s, which lets me deliver consistent and innovative results.\n\n" +
		"Recently, I stood out by %s.\n\n" +
		"I am always looking for new challenges and connections that value mutual growth.",
	About2: "Passionate about %s and focused on results.\n\n" +
		"I work as %s, combining strategic vision with technical execution. " +
		"My main competencies include %s and %s.\n\n" +
		"Throughout my career, I had the opportunity to %s, which strengthened my ability to solve complex problems.\n\n" +
		"Let's connect!",
}

// Portuguese is the consultancy's Brazilian Portuguese copy.
var Portuguese = Templates{
	Locale:            "pt-BR",
	FallbackPrimary:   "Especialista",
	FallbackSecondary: "Focado em Resultados",
	Headline1:         "%s | %s | %s | %s",
	Headline2:         "Especialista em %s | Ajudando empresas através de %s",
	Headline3:         "%s Sênior | %s+ anos de experiência em %s",
	About1: "Olá, sou %s.\n\n" +
		"Com mais de %s anos de atuação em %s, construí uma carreira sólida como %s.\n\n" +
		"Minha expertise principal envolve %s, o que me permite entregar resultados consistentes e inovadores.\n\n" +
		"Recentemente, destaquei-me por %s.\n\n" +
		"Estou sempre em busca de novos desafios e conexões que valorizem o crescimento mútuo.",
	About2: "Apaixonado por %s e focado em resultados.\n\n" +
		"Atuo como %s combinando visão estratégica com execução técnica. " +
		"Minhas principais competências incluem %s e %s.\n\n" +
		"Ao longo da minha trajetória, tive a oportunidade de %s, o que reforçou minha capacidade de resolver problemas complexos.\n\n" +
		"Vamos nos conectar!",
}

// TemplatesFor resolves a locale tag. Unknown or empty tags get English.
func TemplatesFor(locale string) Templates {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "pt", "pt-br", "pt_br":
		return Portuguese
	default:
		return English
	}
}

// Generate expands in with the default English templates.
func Generate(in Inputs) Generated {
	return English.Generate(in)
}

// Generate expands in with t. It never fails: blank fields become empty
// slots, blank skills fall back to t's fixed defaults.
func (t Templates) Generate(in Inputs) Generated {
	primary, secondary := t.keySkills(ParseSkills(in.Skills))

	return Generated{
		Headlines: []string{
			fmt.Sprintf(t.Headline1, in.Role, primary, secondary, in.Area),
			fmt.Sprintf(t.Headline2, in.Area, primary),
			fmt.Sprintf(t.Headline3, in.Role, in.YearsOfExperience, in.Area),
		},
		Abouts: []string{
			fmt.Sprintf(t.About1, in.Name, in.YearsOfExperience, in.Area, in.Role, in.Skills, in.Achievement),
			fmt.Sprintf(t.About2, in.Area, in.Role, primary, secondary, in.Achievement),
		},
	}
}

// keySkills picks the first two tokens, substituting the fallbacks for
// missing or empty positions.
func (t Templates) keySkills(tokens []string) (primary, secondary string) {
	primary, secondary = t.FallbackPrimary, t.FallbackSecondary
	if len(tokens) > 0 && tokens[0] != "" {
		primary = tokens[0]
	}
	if len(tokens) > 1 && tokens[1] != "" {
		secondary = tokens[1]
	}
	return primary, secondary
}

// ParseSkills splits a comma-separated list and trims every piece, keeping
// order. Interior empty pieces are kept so positions stay stable; a blank
// list yields no tokens.
func ParseSkills(skills string) []string {
	if strings.TrimSpace(skills) == "" {
		return nil
	}
	parts := strings.Split(skills, ",")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}
