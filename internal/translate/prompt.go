package translate

import "plainspeak/internal/engine"

// Mode is the direction of the rewrite.
type Mode string

const (
	ModeCorporateToPlain Mode = "corporate_to_plain"
	ModePlainToCorporate Mode = "plain_to_corporate"
)

// ParseMode validates a wire-level mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCorporateToPlain, ModePlainToCorporate:
		return Mode(s), nil
	default:
		return "", unknownModeError{mode: s}
	}
}

// One fixed system instruction per direction; the tone contract lives here
// and nowhere else.
const (
	systemCorporateToPlain = "You translate corporate workplace language into plain, candid English. " +
		"Reply with only the translation: concise, honest, allowed a dry touch of humor, one or two sentences."
	systemPlainToCorporate = "You translate blunt statements into polished corporate workplace language. " +
		"Reply with only the translation: professional, empathetic, HR-safe, one or two sentences."
)

// Generation bounds shared by both directions; the plain direction runs
// hotter because candid phrasing benefits from looser sampling.
const (
	maxOutputTokens = 120
	tempCreative    = float32(0.9)
	tempFormal      = float32(0.6)
	topP            = float32(0.9)
)

// buildMessages renders the role-structured prompt. Deterministic in mode;
// the trimmed input is embedded verbatim between delimiters so the model
// never mistakes instructions for content.
func buildMessages(mode Mode, trimmed string) []engine.Message {
	system := systemPlainToCorporate
	if mode == ModeCorporateToPlain {
		system = systemCorporateToPlain
	}
	return []engine.Message{
		{Role: engine.RoleSystem, Content: system},
		{Role: engine.RoleUser, Content: "Translate the text between <<< and >>>.\n<<<" + trimmed + ">>>"},
	}
}

func genParams(mode Mode) engine.GenParams {
	p := engine.GenParams{MaxTokens: maxOutputTokens, Temperature: tempFormal, TopP: topP}
	if mode == ModeCorporateToPlain {
		p.Temperature = tempCreative
	}
	return p
}
