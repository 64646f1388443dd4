package llm

import "fmt"

// SummarizePrompt builds the shared summarization prompt. The output is
// destined for a speech synthesizer, so the prompt forbids any markup.
// An empty targetLang keeps the summary in the input's own language;
// a non-empty one makes the summary a translation in one step.
func SummarizePrompt(text, targetLang string) string {
	lang := "the same language as the text"
	if targetLang != "" {
		lang = languageName(targetLang)
	}
	return fmt.Sprintf("Summarize the following text in %s, in a few sentences. "+
		"Write plain prose suitable for reading aloud: no markup, no lists, no headings.\n\n%s", lang, text)
}

// TranslatePrompt builds the shared translation prompt.
func TranslatePrompt(text, targetLang string) string {
	lang := languageName(targetLang)
	return fmt.Sprintf("Translate the following text into %s. "+
		"Output only the translation as plain prose, nothing else.\n\n%s", lang, text)
}

// languageName maps common ISO codes to prompt-friendly names. Unknown
// values pass through unchanged, so full names work too.
func languageName(code string) string {
	names := map[string]string{
		"en": "English",
		"pl": "Polish",
		"de": "German",
		"fr": "French",
		"es": "Spanish",
		"it": "Italian",
		"uk": "Ukrainian",
		"ru": "Russian",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code == "" {
		return "English"
	}
	return code
}
