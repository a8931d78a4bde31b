package utils

import (
	"regexp"
	"strings"
)

// Language codes
const (
	LangEnglish  = "en"
	LangHebrew   = "he"
	LangArabic   = "ar"
	LangRussian  = "ru"
	LangChinese  = "zh"
	LangJapanese = "ja"
	LangKorean   = "ko"
)

// Language represents a detected language
type Language struct {
	Code       string
	Name       string
	Confidence float64
}

type scriptRange struct {
	code    string
	name    string
	pattern *regexp.Regexp
}

var scriptRanges = []scriptRange{
	{LangHebrew, "Hebrew", regexp.MustCompile(`[\x{0590}-\x{05FF}]`)},
	{LangArabic, "Arabic", regexp.MustCompile(`[\x{0600}-\x{06FF}]`)},
	{LangRussian, "Russian", regexp.MustCompile(`[\x{0400}-\x{04FF}]`)},
	{LangChinese, "Chinese", regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)},
	{LangJapanese, "Japanese", regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)},
	{LangKorean, "Korean", regexp.MustCompile(`[\x{AC00}-\x{D7AF}]`)},
}

// DetectLanguage detects the dominant language of the input text based
// on script character ratios. Latin-script text resolves to English.
func DetectLanguage(text string) Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return Language{Code: LangEnglish, Name: "English", Confidence: 0.0}
	}

	total := float64(len([]rune(text)))
	best := Language{Code: LangEnglish, Name: "English", Confidence: 0.0}

	for _, script := range scriptRanges {
		matches := script.pattern.FindAllString(text, -1)
		ratio := float64(len(matches)) / total
		if ratio > 0.1 && ratio > best.Confidence {
			best = Language{Code: script.code, Name: script.name, Confidence: ratio}
		}
	}

	// Kanji alone is ambiguous between Chinese and Japanese; any
	// significant kana presence resolves it to Japanese.
	if best.Code == LangChinese {
		kana := scriptRanges[4].pattern.FindAllString(text, -1)
		if float64(len(kana))/total > 0.05 {
			best = Language{Code: LangJapanese, Name: "Japanese", Confidence: best.Confidence}
		}
	}

	return best
}

// GetLanguageInstruction returns the reply-language instruction for the
// detected language of an incoming email.
func GetLanguageInstruction(lang Language) string {
	switch lang.Code {
	case LangHebrew:
		return "Please respond in Hebrew (עברית)."
	case LangArabic:
		return "Please respond in Arabic (العربية)."
	case LangRussian:
		return "Please respond in Russian (Русский)."
	case LangChinese:
		return "Please respond in Chinese (中文)."
	case LangJapanese:
		return "Please respond in Japanese (日本語)."
	case LangKorean:
		return "Please respond in Korean (한국어)."
	default:
		return "Please respond in English."
	}
}
